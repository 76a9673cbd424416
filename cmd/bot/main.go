package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"

	"github.com/mbodj/fablab-bot/internal/bot"
	"github.com/mbodj/fablab-bot/internal/config"
	"github.com/mbodj/fablab-bot/internal/dialog"
	"github.com/mbodj/fablab-bot/internal/domain/holidays"
	"github.com/mbodj/fablab-bot/internal/domain/machines"
	"github.com/mbodj/fablab-bot/internal/domain/reservations"
	"github.com/mbodj/fablab-bot/internal/domain/subscriptions"
	"github.com/mbodj/fablab-bot/internal/domain/users"
	"github.com/mbodj/fablab-bot/internal/infra/db"
	httpx "github.com/mbodj/fablab-bot/internal/infra/http"
	"github.com/mbodj/fablab-bot/internal/infra/logger"
	"github.com/mbodj/fablab-bot/internal/infra/payments"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	usersRepo := users.NewRepo(pool)
	statesRepo := dialog.NewRepo(pool)
	machinesRepo := machines.NewRepo(pool)
	holidaysRepo := holidays.NewRepo(pool)
	resvRepo := reservations.NewRepo(pool)
	subsRepo := subscriptions.NewRepo(pool)

	paySvc := payments.NewService(cfg.HTTP.BaseURL)
	payHandler := payments.NewHandler(log, subsRepo)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, payHandler)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	log.Info("telegram bot authorized", "username", api.Self.UserName)

	b := bot.New(api, log, usersRepo, statesRepo, cfg.Telegram.AdminChatID,
		machinesRepo, holidaysRepo, resvRepo, subsRepo, paySvc,
		cfg.FabLab.BookingHorizonDays)

	go func() {
		if err := b.Run(ctx, 30); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete", slog.String("env", cfg.App.Env))
}
