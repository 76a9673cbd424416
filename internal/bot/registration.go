package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbodj/fablab-bot/internal/dialog"
	"github.com/mbodj/fablab-bot/internal/domain/users"
)

func (b *Bot) askName(chatID int64) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Annuler", "nav:cancel"),
		),
	)
	m := tgbotapi.NewMessage(chatID, "Entrez votre nom complet sur une seule ligne.")
	m.ReplyMarkup = kb
	b.send(m)
}

func (b *Bot) handleNameInput(ctx context.Context, chatID int64, text string) {
	name := strings.TrimSpace(text)
	if name == "" {
		b.send(tgbotapi.NewMessage(chatID, "Le nom ne peut pas être vide, réessayez."))
		return
	}
	payload := dialog.Payload{"name": name}
	b.sendStep(ctx, chatID,
		fmt.Sprintf("Nom : %s\nEnvoyer la demande d'accès au FabLab ?", name),
		confirmRegistrationKeyboard(), dialog.StateAwaitConfirm, payload)
}

// submitRegistration notifies the admin chat and parks the member in
// pending until approval.
func (b *Bot) submitRegistration(ctx context.Context, chatID, tgID int64) {
	st, _ := b.states.Get(ctx, chatID)
	name, _ := dialog.GetString(st.Payload, "name")

	u, err := b.users.GetByTelegramID(ctx, tgID)
	if err != nil || u == nil {
		b.send(tgbotapi.NewMessage(chatID, "Erreur : profil introuvable, tapez /start."))
		return
	}

	note := tgbotapi.NewMessage(b.adminChat,
		fmt.Sprintf("Nouvelle demande d'accès :\n%s (@%s)", name, u.Username))
	note.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Approuver", fmt.Sprintf("adm:user:approve:%d", tgID)),
			tgbotapi.NewInlineKeyboardButtonData("🚫 Refuser", fmt.Sprintf("adm:user:reject:%d", tgID)),
		),
	)
	b.send(note)

	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, "Demande envoyée. Vous recevrez une réponse de l'équipe."))
}

func (b *Bot) handleApproval(ctx context.Context, cb *tgbotapi.CallbackQuery, tgID int64, approve bool) {
	if approve {
		u, err := b.users.Approve(ctx, tgID, users.RoleMember)
		if err != nil {
			_ = b.answerCallback(cb, "Erreur d'approbation", true)
			return
		}
		_ = b.answerCallback(cb, "Membre approuvé", false)
		m := tgbotapi.NewMessage(u.TelegramID, "Bienvenue au FabLab ! Vous pouvez maintenant réserver.")
		m.ReplyMarkup = memberReplyKeyboard()
		b.send(m)
		return
	}
	_ = b.answerCallback(cb, "Demande refusée", false)
	b.send(tgbotapi.NewMessage(tgID, "Votre demande d'accès a été refusée."))
}
