package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbodj/fablab-bot/internal/dialog"
	"github.com/mbodj/fablab-bot/internal/domain/users"
)

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleText(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := msg.From.ID
	switch msg.Command() {
	case "start":
		// do not wipe the role of an existing user
		existing, _ := b.users.GetByTelegramID(ctx, tgID)
		defaultRole := users.RoleMember
		if existing != nil && existing.Role != "" {
			defaultRole = existing.Role
		}

		u, err := b.users.UpsertFromTelegram(ctx, users.Telegram{
			ID:        tgID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		}, defaultRole)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Erreur : profil non enregistré."))
			return
		}
		// the configured admin chat is auto-promoted
		if tgID == b.adminChat && (u.Role != users.RoleAdmin || u.Status != users.StatusApproved) {
			if promoted, err2 := b.users.Approve(ctx, tgID, users.RoleAdmin); err2 == nil {
				u = promoted
			}
		}

		switch {
		case u.Role == users.RoleAdmin && u.Status == users.StatusApproved:
			m := tgbotapi.NewMessage(chatID, "Bonjour ! Gérez le FabLab depuis le menu ci-dessous.")
			m.ReplyMarkup = adminReplyKeyboard()
			b.send(m)
		case u.Status == users.StatusApproved:
			m := tgbotapi.NewMessage(chatID, "Bienvenue au FabLab ! Réservez une machine depuis le menu.")
			m.ReplyMarkup = memberReplyKeyboard()
			b.send(m)
		default:
			_ = b.states.Set(ctx, chatID, dialog.StateAwaitName, dialog.Payload{})
			b.askName(chatID)
		}
	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Réservations FabLab : créneaux d'une heure entre 8:00 et 18:00, fermé le dimanche et les jours fériés.\nVotre abonnement fixe un quota d'heures mensuel."))
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	u, err := b.users.GetByTelegramID(ctx, msg.From.ID)
	if err != nil || u == nil {
		b.send(tgbotapi.NewMessage(chatID, "Tapez /start pour commencer."))
		return
	}
	approved := u.Status == users.StatusApproved
	isAdmin := approved && u.Role == users.RoleAdmin

	// bottom-panel shortcuts first
	switch msg.Text {
	case "Réserver une machine":
		if approved {
			b.startBooking(ctx, chatID, u.ID)
		}
		return
	case "Mes réservations":
		if approved {
			b.showMyReservations(ctx, chatID, u.ID)
		}
		return
	case "Mon abonnement":
		if approved {
			b.showMySubscription(ctx, chatID, u.ID)
		}
		return
	case "Machines":
		if isAdmin {
			b.showMachMenu(ctx, chatID, nil)
		}
		return
	case "Abonnements":
		if isAdmin {
			b.showSubsMenu(ctx, chatID, nil)
		}
		return
	case "Jours fériés":
		if isAdmin {
			b.showHolMenu(ctx, chatID, nil)
		}
		return
	case "Export mensuel":
		if isAdmin {
			b.askExportMonth(ctx, chatID)
		}
		return
	}

	// free-text inputs are routed by dialog state
	st, _ := b.states.Get(ctx, chatID)
	switch st.State {
	case dialog.StateAwaitName:
		b.handleNameInput(ctx, chatID, msg.Text)
	case dialog.StateBookNotes:
		b.handleBookNotes(ctx, chatID, msg.Text)
	case dialog.StateAdmMachID:
		b.handleMachIDInput(ctx, chatID, msg.Text)
	case dialog.StateAdmMachName:
		b.handleMachNameInput(ctx, chatID, msg.Text)
	case dialog.StateAdmMachRate:
		b.handleMachRateInput(ctx, chatID, msg.Text)
	case dialog.StateAdmMachRename:
		b.handleMachRenameInput(ctx, chatID, msg.Text)
	case dialog.StateAdmMachNewRate:
		b.handleMachNewRateInput(ctx, chatID, msg.Text)
	case dialog.StateAdmHolAdd:
		b.handleHolInput(ctx, chatID, msg.Text)
	case dialog.StateAdmSubsHours:
		b.handleSubsHoursInput(ctx, chatID, msg.Text)
	case dialog.StateAdmExportMonth:
		b.handleExportMonth(ctx, chatID, msg.Text)
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	chatID := cb.Message.Chat.ID
	data := cb.Data

	u, err := b.users.GetByTelegramID(ctx, cb.From.ID)
	if err != nil || u == nil {
		_ = b.answerCallback(cb, "Tapez /start pour commencer", true)
		return
	}
	isAdmin := u.Role == users.RoleAdmin && u.Status == users.StatusApproved

	switch {
	case data == "nav:cancel":
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Action annulée.")
		return
	case data == "nav:back":
		b.handleNavBack(ctx, cb)
		return
	case data == "rq:send":
		b.submitRegistration(ctx, chatID, cb.From.ID)
		return
	}

	// registration moderation (admin chat)
	if strings.HasPrefix(data, "adm:user:") {
		if !isAdmin {
			_ = b.answerCallback(cb, "Réservé à l'équipe", true)
			return
		}
		parts := strings.Split(data, ":")
		if len(parts) != 4 {
			return
		}
		tgID, _ := strconv.ParseInt(parts[3], 10, 64)
		b.handleApproval(ctx, cb, tgID, parts[2] == "approve")
		return
	}

	// booking flow
	if strings.HasPrefix(data, "book:") {
		if u.Status != users.StatusApproved {
			_ = b.answerCallback(cb, "Compte en attente d'approbation", true)
			return
		}
		switch {
		case strings.HasPrefix(data, "book:mach:"):
			b.pickMachine(ctx, cb, strings.TrimPrefix(data, "book:mach:"))
		case strings.HasPrefix(data, "book:date:"):
			b.pickDate(ctx, cb, strings.TrimPrefix(data, "book:date:"))
		case strings.HasPrefix(data, "book:start:"):
			if h, err := strconv.Atoi(strings.TrimPrefix(data, "book:start:")); err == nil {
				b.pickStartHour(ctx, cb, h)
			}
		case strings.HasPrefix(data, "book:end:"):
			if h, err := strconv.Atoi(strings.TrimPrefix(data, "book:end:")); err == nil {
				b.pickEndHour(ctx, cb, h)
			}
		case data == "book:skipnotes":
			b.skipBookNotes(ctx, cb)
		case data == "book:ok":
			b.confirmBooking(ctx, cb)
		}
		return
	}

	if strings.HasPrefix(data, "res:cancel:") {
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "res:cancel:"), 10, 64); err == nil {
			b.cancelReservation(ctx, cb, id, u.ID)
		}
		return
	}

	// admin screens
	if !isAdmin {
		_ = b.answerCallback(cb, "Réservé à l'équipe", true)
		return
	}
	msgID := cb.Message.MessageID
	switch {
	case data == "adm:mach:add":
		b.askMachID(ctx, chatID, msgID)
	case data == "adm:mach:list":
		b.showMachList(ctx, chatID, msgID)
	case strings.HasPrefix(data, "adm:mach:item:"):
		b.showMachItem(ctx, chatID, msgID, strings.TrimPrefix(data, "adm:mach:item:"))
	case strings.HasPrefix(data, "adm:mach:cat:"):
		b.pickMachCategory(ctx, cb, strings.TrimPrefix(data, "adm:mach:cat:"))
	case strings.HasPrefix(data, "adm:mach:rename:"):
		b.askMachRename(ctx, cb, strings.TrimPrefix(data, "adm:mach:rename:"))
	case strings.HasPrefix(data, "adm:mach:rate:"):
		b.askMachNewRate(ctx, cb, strings.TrimPrefix(data, "adm:mach:rate:"))
	case strings.HasPrefix(data, "adm:mach:st:"):
		rest := strings.TrimPrefix(data, "adm:mach:st:")
		if i := strings.LastIndex(rest, ":"); i > 0 {
			b.setMachStatus(ctx, cb, rest[:i], rest[i+1:])
		}
	case data == "adm:hol:add":
		b.askHolDate(ctx, chatID, msgID)
	case data == "adm:hol:list":
		b.showHolList(ctx, chatID, msgID)
	case strings.HasPrefix(data, "adm:hol:del:"):
		b.deleteHoliday(ctx, cb, strings.TrimPrefix(data, "adm:hol:del:"))
	case data == "adm:subs:add":
		b.showSubsPickUser(ctx, chatID, msgID)
	case strings.HasPrefix(data, "adm:subs:user:"):
		if uid, err := strconv.ParseInt(strings.TrimPrefix(data, "adm:subs:user:"), 10, 64); err == nil {
			b.showSubsPickType(ctx, cb, uid)
		}
	case strings.HasPrefix(data, "adm:subs:type:"):
		parts := strings.Split(strings.TrimPrefix(data, "adm:subs:type:"), ":")
		if len(parts) == 2 {
			if uid, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
				b.pickSubsType(ctx, cb, uid, parts[1])
			}
		}
	case data == "adm:subs:ok":
		b.confirmSubsGrant(ctx, cb)
	}
}

// handleNavBack returns to the parent menu of the current dialog family.
func (b *Bot) handleNavBack(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	st, _ := b.states.Get(ctx, chatID)

	state := string(st.State)
	switch {
	case strings.HasPrefix(state, "adm_mach"):
		b.showMachMenu(ctx, chatID, &msgID)
	case strings.HasPrefix(state, "adm_subs"):
		b.showSubsMenu(ctx, chatID, &msgID)
	case strings.HasPrefix(state, "adm_hol"):
		b.showHolMenu(ctx, chatID, &msgID)
	case strings.HasPrefix(state, "book_"):
		u, err := b.users.GetByTelegramID(ctx, cb.From.ID)
		if err == nil && u != nil {
			b.editTextAndClear(chatID, msgID, "Réservation recommencée.")
			b.startBooking(ctx, chatID, u.ID)
		}
	default:
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Retour au menu.")
	}
}
