package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbodj/fablab-bot/internal/dialog"
	"github.com/mbodj/fablab-bot/internal/domain/schedule"
)

func (b *Bot) showHolMenu(ctx context.Context, chatID int64, editMsgID *int) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Ajouter", "adm:hol:add"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Liste", "adm:hol:list"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
	text := "Jours fériés — le FabLab est fermé ces dates"
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
		_ = b.states.Set(ctx, chatID, dialog.StateAdmHolMenu, dialog.Payload{})
	} else {
		b.sendStep(ctx, chatID, text, kb, dialog.StateAdmHolMenu, dialog.Payload{})
	}
}

func (b *Bot) askHolDate(ctx context.Context, chatID int64, editMsgID int) {
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID,
		"Date au format AAAA-MM-JJ, suivie d'un libellé facultatif :", navKeyboard(true, true)))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmHolAdd, dialog.Payload{})
}

func (b *Bot) handleHolInput(ctx context.Context, chatID int64, text string) {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 2)
	date := parts[0]
	if _, err := time.Parse(schedule.ISODate, date); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Date invalide, format attendu : AAAA-MM-JJ."))
		return
	}
	label := ""
	if len(parts) == 2 {
		label = strings.TrimSpace(parts[1])
	}
	if _, err := b.holidays.Add(ctx, date, label); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Erreur : jour férié non enregistré."))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, "Jour férié enregistré : "+date))
}

func (b *Bot) showHolList(ctx context.Context, chatID int64, editMsgID int) {
	list, err := b.holidays.List(ctx)
	if err != nil || len(list) == 0 {
		b.editTextAndClear(chatID, editMsgID, "Aucun jour férié enregistré.")
		return
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	var sb strings.Builder
	sb.WriteString("Jours fériés :\n")
	for _, h := range list {
		line := h.Date
		if h.Label != "" {
			line += " — " + h.Label
		}
		sb.WriteString(line + "\n")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 "+h.Date, "adm:hol:del:"+h.Date),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID,
		sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmHolList, dialog.Payload{})
}

func (b *Bot) deleteHoliday(ctx context.Context, cb *tgbotapi.CallbackQuery, date string) {
	if err := b.holidays.Remove(ctx, date); err != nil {
		_ = b.answerCallback(cb, "Erreur de suppression", true)
		return
	}
	_ = b.answerCallback(cb, "Supprimé : "+date, false)
	b.showHolList(ctx, cb.Message.Chat.ID, cb.Message.MessageID)
}
