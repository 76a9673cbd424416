package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbodj/fablab-bot/internal/domain/machines"
	"github.com/mbodj/fablab-bot/internal/domain/schedule"
)

func confirmRegistrationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📨 Envoyer la demande", "rq:send"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func navKeyboard(back bool, cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Retour", "nav:back"))
	}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Annuler", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// machinesKeyboard lists bookable machines, one per row, rate shown.
func machinesKeyboard(list []machines.Machine) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, m := range list {
		title := fmt.Sprintf("%s — %.0f FCFA/h", m.Name, m.HourlyRate)
		if m.RequiresTraining {
			title += " 🎓"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, "book:mach:"+m.ID),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// datesKeyboard offers the next selectable dates, three per row.
func (b *Bot) datesKeyboard(holidaySet schedule.Holidays, maxDates int) tgbotapi.InlineKeyboardMarkup {
	now := b.now()
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}

	// Offer today from the end of the day so the full-instant
	// comparison does not reject it outright.
	d := time.Date(now.Year(), now.Month(), now.Day(), schedule.CloseHour, 0, 0, 0, now.Location())
	for i := 0; i <= b.horizonDays && len(rows)*3+len(row) < maxDates; i++ {
		if schedule.DateSelectable(now, d, holidaySet) {
			iso := d.Format(schedule.ISODate)
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(d.Format("Mon 02/01"), "book:date:"+iso))
			if len(row) == 3 {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
				row = []tgbotapi.InlineKeyboardButton{}
			}
		}
		d = d.AddDate(0, 0, 1)
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func startHoursKeyboard() tgbotapi.InlineKeyboardMarkup {
	return hoursKeyboard(schedule.StartHours(), "book:start:")
}

func endHoursKeyboard(startHour int) tgbotapi.InlineKeyboardMarkup {
	return hoursKeyboard(schedule.EndHours(startHour), "book:end:")
}

func hoursKeyboard(hours []int, prefix string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for _, h := range hours {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%02d:00", h), fmt.Sprintf("%s%d", prefix, h)))
		if len(row) == 5 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func categoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	cats := []machines.Category{
		machines.CatImpression, machines.CatGravure,
		machines.CatDecoupe, machines.CatElectronique, machines.CatOther,
	}
	row := []tgbotapi.InlineKeyboardButton{}
	for _, c := range cats {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(string(c), "adm:mach:cat:"+string(c)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(row...),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func subTypeKeyboard(uid int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Étudiant (15h/mois)", fmt.Sprintf("adm:subs:type:%d:STUDENT", uid)),
			tgbotapi.NewInlineKeyboardButtonData("Professionnel (20h/mois)", fmt.Sprintf("adm:subs:type:%d:PROFESSIONAL", uid)),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

// adminReplyKeyboard bottom panel for the admin.
func adminReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton("Machines")},
			{tgbotapi.NewKeyboardButton("Abonnements"), tgbotapi.NewKeyboardButton("Jours fériés")},
			{tgbotapi.NewKeyboardButton("Export mensuel")},
		},
	}
}

func memberReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton("Réserver une machine")},
			{tgbotapi.NewKeyboardButton("Mes réservations"), tgbotapi.NewKeyboardButton("Mon abonnement")},
		},
	}
}
