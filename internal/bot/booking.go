package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbodj/fablab-bot/internal/dialog"
	"github.com/mbodj/fablab-bot/internal/domain/reservations"
	"github.com/mbodj/fablab-bot/internal/domain/schedule"
	"github.com/mbodj/fablab-bot/internal/domain/subscriptions"
	"github.com/mbodj/fablab-bot/internal/infra/metrics"
)

// loadUsage fetches the member's subscription and current-month hours
// and derives the usage view. Both lookups degrade gracefully: no
// subscription falls back to defaults, no history counts as zero.
func (b *Bot) loadUsage(ctx context.Context, userID int64) (*subscriptions.Subscription, subscriptions.Usage) {
	sub, err := b.subs.GetActive(ctx, userID, b.now())
	if err != nil {
		b.log.Error("subscription lookup failed", "user_id", userID, "err", err)
		sub = nil
	}
	var report *subscriptions.UsageReport
	hours, err := b.resv.ConfirmedHoursInMonth(ctx, userID, b.now())
	if err != nil {
		b.log.Error("usage lookup failed", "user_id", userID, "err", err)
	} else {
		report = &subscriptions.UsageReport{TotalHours: hours}
	}
	return sub, subscriptions.ComputeUsage(sub, report)
}

// startBooking opens the machine list, unless the quota is exhausted.
func (b *Bot) startBooking(ctx context.Context, chatID, userID int64) {
	sub, usage := b.loadUsage(ctx, userID)
	if sub == nil || !usage.IsActive {
		b.send(tgbotapi.NewMessage(chatID, "Aucun abonnement actif. Contactez l'équipe du FabLab."))
		return
	}

	warn := subscriptions.WarningFor(usage.HoursLeft)
	if warn.Tier == subscriptions.TierBlocked {
		metrics.QuotaBlocked.Inc()
		b.sendBlockedWarning(chatID, userID, warn)
		return
	}

	list, err := b.machines.ListBookable(ctx)
	if err != nil || len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Aucune machine disponible pour le moment."))
		return
	}

	text := "Choisissez une machine :"
	if warn.Tier != subscriptions.TierNone {
		text = warn.Message + "\n\n" + text
	}
	b.sendStep(ctx, chatID, text, machinesKeyboard(list),
		dialog.StateBookPickMachine, dialog.Payload{"user_id": float64(userID)})
}

// sendBlockedWarning tells an exhausted member why booking is closed.
// Only this tier exposes the renew action.
func (b *Bot) sendBlockedWarning(chatID, userID int64, warn subscriptions.Warning) {
	m := tgbotapi.NewMessage(chatID, warn.Message)
	if warn.AllowsRenewal() {
		m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("💳 Renouveler l'abonnement", b.payments.RenewalURL(userID)),
			),
		)
	}
	b.send(m)
}

func (b *Bot) pickMachine(ctx context.Context, cb *tgbotapi.CallbackQuery, machineID string) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)

	m, err := b.machines.GetByID(ctx, machineID)
	if err != nil || m == nil {
		_ = b.answerCallback(cb, "Machine introuvable", true)
		return
	}
	if !m.Bookable() {
		_ = b.answerCallback(cb, "Machine indisponible", true)
		return
	}

	holidaySet, err := b.holidays.Set(ctx)
	if err != nil {
		b.log.Error("holiday load failed", "err", err)
		holidaySet = schedule.Holidays{}
	}

	payload := st.Payload
	payload["machine_id"] = m.ID
	payload["machine_name"] = m.Name
	payload["hourly_rate"] = m.HourlyRate

	kb := b.datesKeyboard(holidaySet, 12)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		fmt.Sprintf("%s — %.0f FCFA/h\nChoisissez une date :", m.Name, m.HourlyRate), kb))
	_ = b.states.Set(ctx, chatID, dialog.StateBookPickDate, payload)
}

func (b *Bot) pickDate(ctx context.Context, cb *tgbotapi.CallbackQuery, isoDate string) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)

	day, err := time.ParseInLocation(schedule.ISODate, isoDate, b.now().Location())
	if err != nil {
		_ = b.answerCallback(cb, "Date invalide", true)
		return
	}
	holidaySet, _ := b.holidays.Set(ctx)
	// Re-check at the end of day: the keyboard was built earlier and
	// the calendar may have moved under it.
	endOfDay := day.Add(time.Duration(schedule.CloseHour) * time.Hour)
	if !schedule.DateSelectable(b.now(), endOfDay, holidaySet) {
		_ = b.answerCallback(cb, "Cette date n'est plus disponible", true)
		return
	}

	payload := st.Payload
	payload["date"] = isoDate
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		fmt.Sprintf("Date : %s\nHeure de début :", isoDate), startHoursKeyboard()))
	_ = b.states.Set(ctx, chatID, dialog.StateBookPickStart, payload)
}

func (b *Bot) pickStartHour(ctx context.Context, cb *tgbotapi.CallbackQuery, startHour int) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)

	payload := st.Payload
	payload["start_hour"] = float64(startHour)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		fmt.Sprintf("Début : %02d:00\nHeure de fin :", startHour), endHoursKeyboard(startHour)))
	_ = b.states.Set(ctx, chatID, dialog.StateBookPickEnd, payload)
}

func (b *Bot) pickEndHour(ctx context.Context, cb *tgbotapi.CallbackQuery, endHour int) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)

	startHour, _ := dialog.GetInt(st.Payload, "start_hour")
	rate, _ := dialog.GetFloat(st.Payload, "hourly_rate")
	userID, _ := dialog.GetInt64(st.Payload, "user_id")

	cost, err := schedule.Cost(startHour, endHour, rate)
	if err != nil {
		// never a negative cost: the pick is simply rejected
		_ = b.answerCallback(cb, "Plage horaire invalide", true)
		return
	}
	hours := endHour - startHour

	_, usage := b.loadUsage(ctx, userID)
	if !schedule.CanSubmit(startHour, endHour, usage.CanReserve(hours)) {
		metrics.QuotaBlocked.Inc()
		// distinct label per the booking contract: quota failure, not
		// the default call-to-action
		b.editTextAndClear(chatID, cb.Message.MessageID,
			fmt.Sprintf("Heures insuffisantes : il vous reste %.0fh ce mois-ci, la réservation en demande %d.",
				usage.HoursLeft, hours))
		_ = b.states.Reset(ctx, chatID)
		return
	}

	payload := st.Payload
	payload["end_hour"] = float64(endHour)
	payload["cost"] = cost

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Passer", "book:skipnotes"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		"Remarque pour l'équipe (optionnelle) :", kb))
	_ = b.states.Set(ctx, chatID, dialog.StateBookNotes, payload)
}

func (b *Bot) handleBookNotes(ctx context.Context, chatID int64, text string) {
	st, _ := b.states.Get(ctx, chatID)
	payload := st.Payload
	payload["notes"] = strings.TrimSpace(text)
	b.showBookingSummary(ctx, chatID, nil, payload)
}

func (b *Bot) skipBookNotes(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)
	payload := st.Payload
	payload["notes"] = ""
	mid := cb.Message.MessageID
	b.showBookingSummary(ctx, chatID, &mid, payload)
}

// showBookingSummary renders the recap with the confirm button.
func (b *Bot) showBookingSummary(ctx context.Context, chatID int64, editMsgID *int, payload dialog.Payload) {
	userID, _ := dialog.GetInt64(payload, "user_id")
	name, _ := dialog.GetString(payload, "machine_name")
	date, _ := dialog.GetString(payload, "date")
	startHour, _ := dialog.GetInt(payload, "start_hour")
	endHour, _ := dialog.GetInt(payload, "end_hour")
	cost, _ := dialog.GetFloat(payload, "cost")
	notes, _ := dialog.GetString(payload, "notes")
	hours := endHour - startHour

	_, usage := b.loadUsage(ctx, userID)
	summary := fmt.Sprintf(
		"Récapitulatif :\n%s\n%s, %02d:00–%02d:00 (%dh)\nCoût : %.0f FCFA\nIl vous restera %.0fh ce mois-ci.",
		name, date, startHour, endHour, hours, cost, usage.HoursLeft-float64(hours))
	if notes != "" {
		summary += "\nRemarque : " + notes
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Réserver", "book:ok"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, summary, kb))
		_ = b.states.Set(ctx, chatID, dialog.StateBookConfirm, payload)
		return
	}
	b.sendStep(ctx, chatID, summary, kb, dialog.StateBookConfirm, payload)
}

func (b *Bot) confirmBooking(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)

	userID, _ := dialog.GetInt64(st.Payload, "user_id")
	machineID, _ := dialog.GetString(st.Payload, "machine_id")
	machineName, _ := dialog.GetString(st.Payload, "machine_name")
	rate, _ := dialog.GetFloat(st.Payload, "hourly_rate")
	date, _ := dialog.GetString(st.Payload, "date")
	startHour, _ := dialog.GetInt(st.Payload, "start_hour")
	endHour, _ := dialog.GetInt(st.Payload, "end_hour")
	notes, _ := dialog.GetString(st.Payload, "notes")

	day, err := time.ParseInLocation(schedule.ISODate, date, b.now().Location())
	if err != nil {
		_ = b.answerCallback(cb, "Réservation expirée, recommencez", true)
		return
	}
	start := day.Add(time.Duration(startHour) * time.Hour)
	end := day.Add(time.Duration(endHour) * time.Hour)

	busy, err := b.resv.MachineBusy(ctx, machineID, start, end)
	if err == nil && busy {
		b.editTextAndClear(chatID, cb.Message.MessageID,
			"Ce créneau vient d'être pris sur cette machine. Choisissez-en un autre.")
		_ = b.states.Reset(ctx, chatID)
		return
	}

	m, err := b.machines.GetByID(ctx, machineID)
	if err != nil || m == nil {
		_ = b.answerCallback(cb, "Machine introuvable", true)
		return
	}
	status := reservations.StatusConfirmed
	if m.RequiresTraining {
		// needs an admin sign-off before it counts against the quota
		status = reservations.StatusPending
	}

	res, err := reservations.New(userID, machineID, machineName, start, end, rate, status, notes)
	if err != nil {
		_ = b.answerCallback(cb, "Plage horaire invalide", true)
		return
	}
	created, err := b.resv.Create(ctx, res)
	if err != nil {
		b.log.Error("reservation create failed", "user_id", userID, "err", err)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Erreur : réservation non enregistrée.")
		return
	}
	metrics.ReservationsCreated.WithLabelValues(string(created.Status)).Inc()

	msg := fmt.Sprintf("Réservation #%d enregistrée : %s, %s %02d:00–%02d:00, %.0f FCFA.",
		created.ID, machineName, date, startHour, endHour, created.TotalCost)
	if created.Status == reservations.StatusPending {
		msg += "\nCette machine demande une formation : en attente de validation par l'équipe."
		b.send(tgbotapi.NewMessage(b.adminChat,
			fmt.Sprintf("Réservation #%d à valider (%s, %s).", created.ID, machineName, date)))
	}

	_, usage := b.loadUsage(ctx, userID)
	if w := subscriptions.WarningFor(usage.HoursLeft); w.Tier != subscriptions.TierNone {
		msg += "\n\n" + w.Message
	}

	b.editTextAndClear(chatID, cb.Message.MessageID, msg)
	_ = b.states.Reset(ctx, chatID)
}

// showMyReservations lists the member's reservations with a cancel
// button on each confirmed one.
func (b *Bot) showMyReservations(ctx context.Context, chatID, userID int64) {
	list, err := b.resv.ListByUser(ctx, userID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Erreur de chargement des réservations."))
		return
	}
	if len(list) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Aucune réservation."))
		return
	}

	var sb strings.Builder
	sb.WriteString("Vos réservations :\n")
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, r := range list {
		sb.WriteString(fmt.Sprintf("#%d %s — %s %02d:00–%02d:00, %.0f FCFA [%s]\n",
			r.ID, r.MachineName, r.StartTime.Format(schedule.ISODate),
			r.StartTime.Hour(), r.EndTime.Hour(), r.TotalCost, r.Status))
		if r.Status == reservations.StatusConfirmed {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("✖️ Annuler #%d", r.ID), fmt.Sprintf("res:cancel:%d", r.ID)),
			))
		}
	}

	if len(rows) > 0 {
		b.sendStep(ctx, chatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...),
			dialog.StateResList, dialog.Payload{})
		return
	}
	b.send(tgbotapi.NewMessage(chatID, sb.String()))
	_ = b.states.Set(ctx, chatID, dialog.StateResList, dialog.Payload{})
}

func (b *Bot) cancelReservation(ctx context.Context, cb *tgbotapi.CallbackQuery, resID, userID int64) {
	err := b.resv.Cancel(ctx, resID, userID)
	switch {
	case err == nil:
		metrics.ReservationsCancelled.Inc()
		_ = b.answerCallback(cb, "Réservation annulée", false)
		b.showMyReservations(ctx, cb.Message.Chat.ID, userID)
	case err == reservations.ErrInvalidStateTransition:
		_ = b.answerCallback(cb, "Cette réservation ne peut pas être annulée", true)
	case err == reservations.ErrNotFound:
		_ = b.answerCallback(cb, "Réservation introuvable", true)
	default:
		b.log.Error("cancel failed", "reservation_id", resID, "err", err)
		_ = b.answerCallback(cb, "Erreur d'annulation", true)
	}
}

// showMySubscription renders the quota card with the usage bar.
func (b *Bot) showMySubscription(ctx context.Context, chatID, userID int64) {
	sub, usage := b.loadUsage(ctx, userID)

	var sb strings.Builder
	if sub == nil {
		sb.WriteString("Aucun abonnement enregistré.\n")
	} else {
		plan := "Professionnel"
		if usage.IsStudent {
			plan = "Étudiant"
		}
		sb.WriteString(fmt.Sprintf("Abonnement %s — valable jusqu'au %s\n",
			plan, sub.EndDate.Format("02/01/2006")))
	}
	sb.WriteString(fmt.Sprintf("Utilisé : %.1fh / %dh (%.0f%%)\n",
		usage.UsageHours, usage.HourLimit, usage.DisplayPercentage()))
	sb.WriteString(usageBar(usage) + "\n")

	warn := subscriptions.WarningFor(usage.HoursLeft)
	if warn.Tier != subscriptions.TierNone {
		sb.WriteString("\n" + warn.Message + "\n")
	}

	m := tgbotapi.NewMessage(chatID, sb.String())
	if warn.AllowsRenewal() {
		m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("💳 Renouveler l'abonnement", b.payments.RenewalURL(userID)),
			),
		)
	}
	b.send(m)
}

// usageBar renders the ten-segment progress bar with the severity
// color. Width uses the clamped percentage, color the raw one.
func usageBar(u subscriptions.Usage) string {
	filled := int(u.DisplayPercentage() / 10)
	var dot string
	switch u.Severity() {
	case subscriptions.SeverityCritical:
		dot = "🔴"
	case subscriptions.SeverityElevated:
		dot = "🟠"
	default:
		dot = "🟢"
	}
	return dot + " " + strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled)
}
