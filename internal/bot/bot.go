package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mbodj/fablab-bot/internal/dialog"
	"github.com/mbodj/fablab-bot/internal/domain/holidays"
	"github.com/mbodj/fablab-bot/internal/domain/machines"
	"github.com/mbodj/fablab-bot/internal/domain/reservations"
	"github.com/mbodj/fablab-bot/internal/domain/subscriptions"
	"github.com/mbodj/fablab-bot/internal/domain/users"
	"github.com/mbodj/fablab-bot/internal/infra/payments"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	users     *users.Repo
	states    *dialog.Repo
	adminChat int64
	machines  *machines.Repo
	holidays  *holidays.Repo
	resv      *reservations.Repo
	subs      *subscriptions.Repo
	payments  *payments.Service

	// booking window in days
	horizonDays int

	// injectable clock for tests
	now func() time.Time
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	usersRepo *users.Repo, statesRepo *dialog.Repo,
	adminChatID int64, machinesRepo *machines.Repo,
	holidaysRepo *holidays.Repo, resvRepo *reservations.Repo,
	subsRepo *subscriptions.Repo, paySvc *payments.Service,
	horizonDays int) *Bot {

	return &Bot{
		api: api, log: log, users: usersRepo, states: statesRepo,
		adminChat: adminChatID, machines: machinesRepo,
		holidays: holidaysRepo, resv: resvRepo, subs: subsRepo,
		payments: paySvc, horizonDays: horizonDays,
		now: time.Now,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}
