package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbodj/fablab-bot/internal/dialog"
	"github.com/mbodj/fablab-bot/internal/domain/machines"
)

// showMachMenu admin entry screen for the machine catalog.
func (b *Bot) showMachMenu(ctx context.Context, chatID int64, editMsgID *int) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Ajouter une machine", "adm:mach:add"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Liste", "adm:mach:list"),
		),
		navKeyboard(false, true).InlineKeyboard[0],
	)
	text := "Machines — choisissez une action"
	if editMsgID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb))
		_ = b.states.Set(ctx, chatID, dialog.StateAdmMachMenu, dialog.Payload{})
	} else {
		b.sendStep(ctx, chatID, text, kb, dialog.StateAdmMachMenu, dialog.Payload{})
	}
}

func (b *Bot) showMachList(ctx context.Context, chatID int64, editMsgID int) {
	list, err := b.machines.List(ctx)
	if err != nil || len(list) == 0 {
		b.editTextAndClear(chatID, editMsgID, "Aucune machine enregistrée.")
		return
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, m := range list {
		title := fmt.Sprintf("%s [%s] %.0f FCFA/h", m.Name, m.Status, m.HourlyRate)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, "adm:mach:item:"+m.ID),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID,
		"Machines :", tgbotapi.NewInlineKeyboardMarkup(rows...)))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmMachList, dialog.Payload{})
}

// showMachItem card for one machine: status toggles, rename, rate.
func (b *Bot) showMachItem(ctx context.Context, chatID int64, editMsgID int, id string) {
	m, err := b.machines.GetByID(ctx, id)
	if err != nil || m == nil {
		b.editTextAndClear(chatID, editMsgID, "Machine introuvable.")
		return
	}
	text := fmt.Sprintf("%s (%s)\nCatégorie : %s\nTarif : %.0f FCFA/h\nStatut : %s\nFormation requise : %v",
		m.Name, m.ID, m.Category, m.HourlyRate, m.Status, m.RequiresTraining)
	if len(m.Features) > 0 {
		text += "\nOptions : " + strings.Join(m.Features, ", ")
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Renommer", "adm:mach:rename:"+m.ID),
			tgbotapi.NewInlineKeyboardButtonData("💰 Tarif", "adm:mach:rate:"+m.ID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔧 Maintenance", "adm:mach:st:"+m.ID+":maintenance"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Disponible", "adm:mach:st:"+m.ID+":available"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID, text, kb))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmMachItem, dialog.Payload{"machine_id": m.ID})
}

/* creation flow: id -> name -> category -> rate */

func (b *Bot) askMachID(ctx context.Context, chatID int64, editMsgID int) {
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, editMsgID,
		"Identifiant de la machine (ex: prusa-mk4) :", navKeyboard(true, true)))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmMachID, dialog.Payload{})
}

func (b *Bot) handleMachIDInput(ctx context.Context, chatID int64, text string) {
	id := strings.ToLower(strings.TrimSpace(text))
	if id == "" || strings.ContainsAny(id, " :") {
		b.send(tgbotapi.NewMessage(chatID, "Identifiant invalide, réessayez."))
		return
	}
	b.sendStep(ctx, chatID, "Nom de la machine :", navKeyboard(true, true),
		dialog.StateAdmMachName, dialog.Payload{"machine_id": id})
}

func (b *Bot) handleMachNameInput(ctx context.Context, chatID int64, text string) {
	name := strings.TrimSpace(text)
	if name == "" {
		b.send(tgbotapi.NewMessage(chatID, "Le nom ne peut pas être vide."))
		return
	}
	st, _ := b.states.Get(ctx, chatID)
	payload := st.Payload
	payload["machine_name"] = name
	b.sendStep(ctx, chatID, "Catégorie :", categoryKeyboard(), dialog.StateAdmMachCat, payload)
}

func (b *Bot) pickMachCategory(ctx context.Context, cb *tgbotapi.CallbackQuery, cat string) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)
	payload := st.Payload
	payload["category"] = cat
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		"Tarif horaire (FCFA) :", navKeyboard(true, true)))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmMachRate, payload)
}

func (b *Bot) handleMachRateInput(ctx context.Context, chatID int64, text string) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || rate <= 0 {
		b.send(tgbotapi.NewMessage(chatID, "Tarif invalide, entrez un nombre positif."))
		return
	}
	st, _ := b.states.Get(ctx, chatID)
	id, _ := dialog.GetString(st.Payload, "machine_id")
	name, _ := dialog.GetString(st.Payload, "machine_name")
	cat, _ := dialog.GetString(st.Payload, "category")

	m, err := b.machines.Create(ctx, machines.Machine{
		ID:         id,
		Name:       name,
		Category:   machines.Category(cat),
		HourlyRate: rate,
		Status:     machines.StatusAvailable,
	})
	if err != nil {
		b.log.Error("machine create failed", "machine_id", id, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Erreur : machine non créée."))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID,
		fmt.Sprintf("Machine « %s » créée à %.0f FCFA/h.", m.Name, m.HourlyRate)))
}

/* edits on an existing machine */

func (b *Bot) askMachRename(ctx context.Context, cb *tgbotapi.CallbackQuery, id string) {
	chatID := cb.Message.Chat.ID
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		"Nouveau nom :", navKeyboard(true, true)))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmMachRename, dialog.Payload{"machine_id": id})
}

func (b *Bot) handleMachRenameInput(ctx context.Context, chatID int64, text string) {
	name := strings.TrimSpace(text)
	if name == "" {
		b.send(tgbotapi.NewMessage(chatID, "Le nom ne peut pas être vide."))
		return
	}
	st, _ := b.states.Get(ctx, chatID)
	id, _ := dialog.GetString(st.Payload, "machine_id")
	if _, err := b.machines.Rename(ctx, id, name); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Erreur : renommage impossible."))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, "Machine renommée."))
}

func (b *Bot) askMachNewRate(ctx context.Context, cb *tgbotapi.CallbackQuery, id string) {
	chatID := cb.Message.Chat.ID
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
		"Nouveau tarif horaire (FCFA). Les réservations existantes gardent leur coût d'origine.",
		navKeyboard(true, true)))
	_ = b.states.Set(ctx, chatID, dialog.StateAdmMachNewRate, dialog.Payload{"machine_id": id})
}

func (b *Bot) handleMachNewRateInput(ctx context.Context, chatID int64, text string) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || rate <= 0 {
		b.send(tgbotapi.NewMessage(chatID, "Tarif invalide, entrez un nombre positif."))
		return
	}
	st, _ := b.states.Get(ctx, chatID)
	id, _ := dialog.GetString(st.Payload, "machine_id")
	if _, err := b.machines.SetRate(ctx, id, rate); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Erreur : tarif non modifié."))
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Tarif mis à jour : %.0f FCFA/h.", rate)))
}

func (b *Bot) setMachStatus(ctx context.Context, cb *tgbotapi.CallbackQuery, id, status string) {
	if _, err := b.machines.SetStatus(ctx, id, machines.Status(status)); err != nil {
		_ = b.answerCallback(cb, "Erreur de changement de statut", true)
		return
	}
	_ = b.answerCallback(cb, "Statut : "+status, false)
	b.showMachItem(ctx, cb.Message.Chat.ID, cb.Message.MessageID, id)
}
