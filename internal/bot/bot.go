package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/material-report-bot/internal/dialog"
	"github.com/Spok95/material-report-bot/internal/domain/auth"
	"github.com/Spok95/material-report-bot/internal/domain/report"
	"github.com/Spok95/material-report-bot/internal/domain/users"
	"github.com/Spok95/material-report-bot/internal/infra/api"
	"github.com/Spok95/material-report-bot/internal/infra/metrics"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	log      *slog.Logger
	users    *users.Repo
	states   *dialog.Repo
	auth     *auth.Service
	client   *api.Client
	views    *report.Views
	loader   *report.Loader
	renderer *report.Renderer
	rendered *renderedMessages
	metrics  *metrics.Report
	loc      *time.Location
	now      func() time.Time
}

type Deps struct {
	Users    *users.Repo
	States   *dialog.Repo
	Auth     *auth.Service
	Client   *api.Client
	Metrics  *metrics.Report
	Location *time.Location
	Locale   string

	// таймаут одной загрузки отчёта
	FetchTimeout time.Duration
}

func New(botAPI *tgbotapi.BotAPI, log *slog.Logger, d Deps) *Bot {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Bot{
		api:      botAPI,
		log:      log,
		users:    d.Users,
		states:   d.States,
		auth:     d.Auth,
		client:   d.Client,
		views:    report.NewViews(),
		loader:   report.NewLoader(d.FetchTimeout),
		renderer: report.NewRenderer(report.NewNumberFormatter(d.Locale)),
		rendered: newRenderedMessages(),
		metrics:  d.Metrics,
		loc:      loc,
		now:      time.Now,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
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

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	b.handleCallback(ctx, upd.CallbackQuery)
}
