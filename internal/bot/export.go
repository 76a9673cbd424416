package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/mbodj/fablab-bot/internal/dialog"
	"github.com/mbodj/fablab-bot/internal/domain/schedule"
)

func (b *Bot) askExportMonth(ctx context.Context, chatID int64) {
	b.sendStep(ctx, chatID,
		"Mois à exporter au format AAAA-MM (vide = mois courant) :",
		navKeyboard(false, true), dialog.StateAdmExportMonth, dialog.Payload{})
}

// handleExportMonth builds the monthly reservation report as an .xlsx
// and sends it to the admin chat.
func (b *Bot) handleExportMonth(ctx context.Context, chatID int64, text string) {
	ref := b.now()
	input := strings.TrimSpace(text)
	if input != "" {
		parsed, err := time.ParseInLocation("2006-01", input, ref.Location())
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Format invalide, attendu : AAAA-MM."))
			return
		}
		ref = parsed
	}

	list, err := b.resv.ListByMonth(ctx, ref)
	if err != nil {
		b.log.Error("export query failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Erreur de chargement des réservations."))
		return
	}
	if len(list) == 0 {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Aucune réservation pour ce mois."))
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"reservation_id",
		"user_id",
		"machine_id",
		"machine_name",
		"date",
		"start",
		"end",
		"hours",
		"status",
		"total_cost_fcfa",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Erreur de génération du fichier (en-tête)."))
		return
	}

	row := 2
	for _, r := range list {
		excelRow := []interface{}{
			r.ID,
			r.UserID,
			r.MachineID,
			r.MachineName,
			r.StartTime.Format(schedule.ISODate),
			r.StartTime.Format("15:04"),
			r.EndTime.Format("15:04"),
			r.Hours(),
			string(r.Status),
			r.TotalCost,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Erreur de génération du fichier (cellules)."))
			return
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Erreur de génération du fichier (lignes)."))
			return
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Erreur d'écriture du fichier."))
		return
	}

	fileName := fmt.Sprintf("reservations_%s.xlsx", ref.Format("2006-01"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("Réservations du FabLab — %s (%d lignes).", ref.Format("2006-01"), len(list))
	b.send(doc)

	_ = b.states.Reset(ctx, chatID)
}
