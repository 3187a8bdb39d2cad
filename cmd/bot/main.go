package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Spok95/material-report-bot/internal/bot"
	"github.com/Spok95/material-report-bot/internal/config"
	"github.com/Spok95/material-report-bot/internal/dialog"
	"github.com/Spok95/material-report-bot/internal/domain/auth"
	"github.com/Spok95/material-report-bot/internal/domain/users"
	"github.com/Spok95/material-report-bot/internal/infra/api"
	"github.com/Spok95/material-report-bot/internal/infra/db"
	httpx "github.com/Spok95/material-report-bot/internal/infra/http"
	"github.com/Spok95/material-report-bot/internal/infra/logger"
	"github.com/Spok95/material-report-bot/internal/infra/metrics"
)

func main() {
	path := os.Getenv("APP_CONFIG")
	if path == "" {
		path = "config/example.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := db.Migrate(cfg.Postgres.DSN, "migrations"); err != nil {
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

	reportMetrics, err := metrics.NewReport(prometheus.DefaultRegisterer)
	if err != nil {
		log.Error("metrics register failed", "err", err)
		return
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool, prometheus.DefaultGatherer)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	botAPI.Debug = cfg.App.Env == "dev"
	log.Info("telegram authorized", "username", botAPI.Self.UserName)

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.Sort)
	authSvc := auth.NewService(auth.NewRepo(pool), client, logger.Component(log, "auth"))

	b := bot.New(botAPI, logger.Component(log, "bot"), bot.Deps{
		Users:        users.NewRepo(pool),
		States:       dialog.NewRepo(pool),
		Auth:         authSvc,
		Client:       client,
		Metrics:      reportMetrics,
		Location:     cfg.Location(),
		Locale:       cfg.App.Locale,
		FetchTimeout: cfg.API.Timeout,
	})

	if err := b.Run(ctx, cfg.Telegram.PollTimeout); err != nil && ctx.Err() == nil {
		log.Error("bot stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
