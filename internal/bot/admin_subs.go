package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbodj/fablab-bot/internal/dialog"
	"github.com/mbodj/fablab-bot/internal/domain/subscriptions"
	"github.com/mbodj/fablab-bot/internal/domain/users"
)

// showSubsMenu admin menu for subscriptions.
func (b *Bot) showSubsMenu(ctx context.Context, chatID int64, editMsgID *int) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Attribuer un abonnement", "adm:subs:add"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
	text := "Abonnements — choisissez une action"
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
		_ = b.states.Set(ctx, chatID, dialog.StateAdmSubsMenu, dialog.Payload{})
	} else {
		b.sendStep(ctx, chatID, text, kb, dialog.StateAdmSubsMenu, dialog.Payload{})
	}
}

// showSubsPickUser pick an approved member.
func (b *Bot) showSubsPickUser(ctx context.Context, chatID int64, editMsgID int) {
	list, err := b.users.ListByRole(ctx, users.RoleMember, users.StatusApproved)
	if err != nil || len(list) == 0 {
		b.editTextAndClear(chatID, editMsgID, "Aucun membre approuvé.")
		return
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, u := range list {
		title := u.DisplayName()
		if title == "" {
			title = fmt.Sprintf("id %d", u.ID)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, fmt.Sprintf("adm:subs:user:%d", u.ID)),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, "Choisissez le membre :", kb))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmSubsPickUser, dialog.Payload{})
}

func (b *Bot) showSubsPickType(ctx context.Context, cb *tgbotapi.CallbackQuery, uid int64) {
	chatID := cb.Message.Chat.ID
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		"Type d'abonnement :", subTypeKeyboard(uid)))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmSubsPickType, dialog.Payload{"sub_user": float64(uid)})
}

func (b *Bot) pickSubsType(ctx context.Context, cb *tgbotapi.CallbackQuery, uid int64, subType string) {
	chatID := cb.Message.Chat.ID
	payload := dialog.Payload{"sub_user": float64(uid), "sub_type": subType}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		"Quota mensuel en heures (0 = quota par défaut du type) :", navKeyboard(true, true)))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmSubsHours, payload)
}

func (b *Bot) handleSubsHoursInput(ctx context.Context, chatID int64, text string) {
	hours, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || hours < 0 {
		b.send(tgbotapi.NewMessage(chatID, "Entrez un nombre d'heures (0 pour le quota par défaut)."))
		return
	}
	st, _ := b.states.Get(ctx, chatID)
	payload := st.Payload
	payload["sub_hours"] = float64(hours)
	uid, _ := dialog.GetInt64(payload, "sub_user")
	subType, _ := dialog.GetString(payload, "sub_type")

	// user name denormalized into the subscription row for exports
	var userName string
	if list, err := b.users.ListByRole(ctx, users.RoleMember, users.StatusApproved); err == nil {
		for _, u := range list {
			if u.ID == uid {
				userName = u.DisplayName()
				break
			}
		}
	}
	payload["user_name"] = userName

	// Grant overwrites any current subscription, so show a recap first.
	preview := subscriptions.Normalize(subscriptions.Raw{
		SubscriptionType: subType,
		MaxHoursPerMonth: hours,
	})
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Attribuer", "adm:subs:ok"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
	b.sendStep(ctx, chatID, fmt.Sprintf(
		"Attribuer un abonnement %s à %s : %dh/mois, valable 1 mois. L'abonnement actuel sera remplacé.",
		preview.Type, userName, preview.HourLimit()), kb, dialog.StateAdmSubsConfirm, payload)
}

func (b *Bot) confirmSubsGrant(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)
	uid, _ := dialog.GetInt64(st.Payload, "sub_user")
	subType, _ := dialog.GetString(st.Payload, "sub_type")
	hours, _ := dialog.GetInt(st.Payload, "sub_hours")
	userName, _ := dialog.GetString(st.Payload, "user_name")

	// one-month validity from today; renewal pushes it forward
	endDate := b.now().AddDate(0, 1, 0)
	t := subscriptions.Normalize(subscriptions.Raw{SubscriptionType: subType}).Type

	sub, err := b.subs.Grant(ctx, uid, userName, t, hours, endDate)
	if err != nil {
		b.log.Error("subscription grant failed", "user_id", uid, "err", err)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Erreur : abonnement non attribué.")
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.editTextAndClear(chatID, cb.Message.MessageID, fmt.Sprintf(
		"Abonnement %s attribué à %s : %dh/mois jusqu'au %s.",
		sub.Type, userName, sub.HourLimit(), sub.EndDate.Format("02/01/2006")))
}
