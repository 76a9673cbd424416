package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbodj/fablab-bot/internal/dialog"
)

/*** HELPERS ***/

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

// lastStepMID extracts the message id of the previous step, if any.
// Payloads round-trip through JSON, so the id comes back as float64.
func lastStepMID(p dialog.Payload) (int, bool) {
	if p == nil {
		return 0, false
	}
	f, ok := p["last_mid"].(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// clearPrevStep removes the inline buttons from the previous step, if any.
func (b *Bot) clearPrevStep(ctx context.Context, chatID int64) {
	st, _ := b.states.Get(ctx, chatID)
	if st == nil {
		return
	}
	if mid, ok := lastStepMID(st.Payload); ok {
		rm := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
		b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, mid, rm))
	}
}

// saveLastStep records the id of the current bot message as the last step.
func (b *Bot) saveLastStep(ctx context.Context, chatID int64, nextState dialog.State, payload dialog.Payload, newMID int) {
	if payload == nil {
		payload = dialog.Payload{}
	}
	payload["last_mid"] = float64(newMID)
	_ = b.states.Set(ctx, chatID, nextState, payload)
}

// sendStep sends a message with markup and persists the dialog state.
// The previous step, if any, loses its buttons so only the latest one
// stays actionable.
func (b *Bot) sendStep(ctx context.Context, chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup, nextState dialog.State, payload dialog.Payload) {
	b.clearPrevStep(ctx, chatID)
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = kb
	sent, err := b.api.Send(m)
	if err != nil {
		b.log.Error("send failed", "err", err)
		return
	}
	b.saveLastStep(ctx, chatID, nextState, payload, sent.MessageID)
}

func (b *Bot) editTextAndClear(chatID int64, msgID int, text string) {
	rm := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, rm))
}
