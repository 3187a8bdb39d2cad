package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/material-report-bot/internal/dialog"
	"github.com/Spok95/material-report-bot/internal/domain/auth"
	"github.com/Spok95/material-report-bot/internal/domain/report"
	"github.com/Spok95/material-report-bot/internal/export"
	"github.com/Spok95/material-report-bot/internal/infra/api"
	"github.com/Spok95/material-report-bot/internal/infra/metrics"
)

// openReport новое сообщение с отчётом; кнопки старого убираем.
func (b *Bot) openReport(ctx context.Context, chatID int64, p report.Period) {
	if _, err := b.auth.Session(ctx, chatID); err != nil {
		if !errors.Is(err, auth.ErrNotAuthenticated) {
			b.log.Error("load session failed", "chat_id", chatID, "err", err)
		}
		b.send(tgbotapi.NewMessage(chatID, "Сначала войдите: /login"))
		return
	}

	b.clearPrevReport(ctx, chatID)

	loading := report.Snapshot{Status: report.StatusLoading, Period: p}
	m := tgbotapi.NewMessage(chatID, reportText(loading))
	m.ParseMode = tgbotapi.ModeHTML
	sent, err := b.api.Send(m)
	if err != nil {
		b.log.Error("send report failed", "chat_id", chatID, "err", err)
		return
	}
	// load ниже не будет повторно править только что отправленную загрузку
	b.rendered.update(chatID, sent.MessageID, reportText(loading), reportKeyboard(loading))

	v := b.views.Open(chatID, p)
	b.rememberReport(ctx, chatID, sent.MessageID, p)
	b.load(ctx, chatID, sent.MessageID, v, p)
}

// viewFor вид чата; после рестарта период восстанавливаем из состояния диалога.
func (b *Bot) viewFor(ctx context.Context, chatID int64) *report.View {
	if v, ok := b.views.Get(chatID); ok && !v.Closed() {
		return v
	}
	p := report.CurrentMonth(b.now().In(b.loc))
	if st, err := b.states.Get(ctx, chatID); err == nil && st.State == dialog.StateReport {
		start, _ := dialog.GetString(st.Payload, "start")
		end, _ := dialog.GetString(st.Payload, "end")
		if saved, err := report.ParsePeriod(start, end, b.loc); err == nil {
			p = saved
		}
	}
	return b.views.Open(chatID, p)
}

func (b *Bot) rememberReport(ctx context.Context, chatID int64, msgID int, p report.Period) {
	err := b.states.Set(ctx, chatID, dialog.StateReport, dialog.Payload{
		"start": p.StartDate(),
		"end":   p.EndDate(),
		"mid":   float64(msgID),
	})
	if err != nil {
		b.log.Error("save report state failed", "chat_id", chatID, "err", err)
	}
}

func (b *Bot) clearPrevReport(ctx context.Context, chatID int64) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st.State != dialog.StateReport {
		return
	}
	if mid, ok := dialog.GetInt64(st.Payload, "mid"); ok {
		b.clearMarkup(chatID, int(mid))
	}
}

func (b *Bot) fetcher(sess api.Session) report.FetchFunc {
	return func(ctx context.Context, p report.Period) ([]report.MaterialRecord, error) {
		return b.client.Materials(ctx, sess, p)
	}
}

// load показывает загрузку и запускает запрос вне цикла обновлений.
// Результат применяется, только если за это время не начали другую загрузку.
func (b *Bot) load(ctx context.Context, chatID int64, msgID int, v *report.View, p report.Period) {
	sess, err := b.auth.Session(ctx, chatID)
	if err != nil {
		if !errors.Is(err, auth.ErrNotAuthenticated) {
			b.log.Error("load session failed", "chat_id", chatID, "err", err)
		}
		b.editTextAndClear(chatID, msgID, "Сессия не найдена. Войдите: /login")
		return
	}

	b.render(chatID, msgID, report.Snapshot{Status: report.StatusLoading, Period: p})

	go func() {
		start := b.now()
		res := b.loader.Load(ctx, chatID, v, p, b.fetcher(sess))
		took := b.now().Sub(start)
		log := b.log.With("chat_id", chatID, "period", p.Key(), "took", took, "shared", res.Shared)

		switch {
		case errors.Is(res.Err, api.ErrUnauthorized):
			b.metrics.Fetch(metrics.OutcomeUnauthorized, took, 0)
			log.Info("token rejected by api")
			if err := b.auth.Expire(ctx, chatID); err != nil {
				log.Error("expire token failed", "err", err)
			}
			b.views.Drop(chatID)
			b.editTextAndClear(chatID, msgID, "Сессия истекла. Войдите снова: /login")
			return
		case !res.Applied:
			b.metrics.Fetch(metrics.OutcomeStale, took, 0)
			log.Debug("stale report result dropped")
			return
		case res.Err != nil:
			b.metrics.Fetch(metrics.OutcomeError, took, 0)
			log.Warn("report fetch failed", "err", res.Err)
		default:
			b.metrics.Fetch(metrics.OutcomeOK, took, res.Records)
			log.Info("report loaded", "records", res.Records)
		}
		b.show(chatID, msgID, v)
	}()
}

func (b *Bot) show(chatID int64, msgID int, v *report.View) {
	b.render(chatID, msgID, v.Snapshot(b.renderer))
	b.metrics.Render()
}

func (b *Bot) render(chatID int64, msgID int, s report.Snapshot) {
	text, kb := reportText(s), reportKeyboard(s)
	if !b.rendered.update(chatID, msgID, text, kb) {
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, kb)
	edit.ParseMode = tgbotapi.ModeHTML
	b.send(edit)
}

func (b *Bot) onToggle(cb *tgbotapi.CallbackQuery, data string) {
	chatID := cb.Message.Chat.ID
	key, ok := parseToggle(data)
	v, exists := b.views.Get(chatID)
	if !ok || !exists {
		_ = b.answerCallback(cb, "Отчёт устарел, откройте заново: /report", false)
		return
	}

	snap := v.Snapshot(nil)
	if snap.Status != report.StatusReady {
		_ = b.answerCallback(cb, "Дождитесь загрузки", false)
		return
	}
	id, found := findNode(snap.Tree, key)
	if !found {
		_ = b.answerCallback(cb, "Группа не найдена, обновите отчёт", false)
		return
	}
	collapsed, ok := v.Toggle(id)
	if !ok {
		_ = b.answerCallback(cb, "", false)
		return
	}
	b.metrics.Toggle(collapsed)
	b.log.Debug("group toggled", "chat_id", chatID, "node", id, "collapsed", collapsed)
	_ = b.answerCallback(cb, "", false)
	b.show(chatID, cb.Message.MessageID, v)
}

func (b *Bot) onExport(cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	v, ok := b.views.Get(chatID)
	if !ok {
		_ = b.answerCallback(cb, "Отчёт ещё не загружен", true)
		return
	}
	snap := v.Snapshot(nil)
	if snap.Status != report.StatusReady {
		_ = b.answerCallback(cb, "Отчёт ещё не загружен", true)
		return
	}

	data, err := export.Workbook(snap.Tree, snap.Period)
	if err != nil {
		b.log.Error("excel export failed", "chat_id", chatID, "err", err)
		_ = b.answerCallback(cb, "Ошибка формирования файла", true)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  export.FileName(snap.Period),
		Bytes: data,
	})
	doc.Caption = "Отчёт по материалам за " + snap.Period.String()
	b.send(doc)
	b.metrics.Export()
	_ = b.answerCallback(cb, "", false)
}

// logout закрывает вид: незавершённая загрузка отбрасывается, свёрнутые группы забываются.
func (b *Bot) logout(ctx context.Context, chatID int64) {
	b.views.Drop(chatID)
	if err := b.auth.Logout(ctx, chatID); err != nil {
		b.log.Error("logout failed", "chat_id", chatID, "err", err)
	}
	_ = b.states.Reset(ctx, chatID)
}
