package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/material-report-bot/internal/dialog"
	"github.com/Spok95/material-report-bot/internal/domain/auth"
	"github.com/Spok95/material-report-bot/internal/domain/report"
	"github.com/Spok95/material-report-bot/internal/domain/users"
)

const helpText = "Команды:\n" +
	"/login — войти в учётную систему\n" +
	"/report — отчёт по материалам за текущий месяц\n" +
	"/report 2024-01-01 2024-01-31 — отчёт за период\n" +
	"/logout — выйти\n" +
	"/help — помощь"

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		u, err := b.users.UpsertFromTelegram(ctx, users.Telegram{
			ID:        msg.From.ID,
			ChatID:    chatID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		})
		if err != nil {
			b.log.Error("upsert user failed", "chat_id", chatID, "err", err)
			b.send(tgbotapi.NewMessage(chatID, "Ошибка: не удалось сохранить профиль"))
			return
		}
		st, err := b.auth.State(ctx, chatID)
		if err != nil {
			b.log.Error("auth state failed", "chat_id", chatID, "err", err)
		}
		text := "Привет, " + u.DisplayName() + "! Бот показывает отчёт по материалам."
		if st.Authenticated {
			text += "\nОткройте отчёт командой /report."
		} else {
			text += "\nДля начала войдите: /login."
		}
		b.send(tgbotapi.NewMessage(chatID, text))
		return

	case "help":
		b.send(tgbotapi.NewMessage(chatID, helpText))
		return

	case "login":
		b.views.Drop(chatID)
		if err := b.states.Set(ctx, chatID, dialog.StateLoginUsername, dialog.Payload{}); err != nil {
			b.log.Error("set state failed", "chat_id", chatID, "err", err)
		}
		m := tgbotapi.NewMessage(chatID, "Введите логин:")
		m.ReplyMarkup = navKeyboard(true)
		b.send(m)
		return

	case "report":
		p, err := b.periodFromArgs(msg.CommandArguments())
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Неверный период: "+err.Error()+"\nФормат: /report 2024-01-01 2024-01-31"))
			return
		}
		b.openReport(ctx, chatID, p)
		return

	case "logout":
		b.logout(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Вы вышли. Чтобы войти снова: /login"))
		return

	default:
		b.send(tgbotapi.NewMessage(chatID, "Не знаю такую команду. Наберите /help"))
		return
	}
}

// periodFromArgs без аргументов текущий месяц, иначе две даты.
func (b *Bot) periodFromArgs(args string) (report.Period, error) {
	fields := strings.Fields(args)
	switch len(fields) {
	case 0:
		return report.CurrentMonth(b.now().In(b.loc)), nil
	case 2:
		return report.ParsePeriod(fields[0], fields[1], b.loc)
	default:
		return report.Period{}, errors.New("нужны две даты или ни одной")
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get state failed", "chat_id", chatID, "err", err)
		return
	}

	switch st.State {
	case dialog.StateLoginUsername:
		username := strings.TrimSpace(msg.Text)
		if username == "" {
			b.send(tgbotapi.NewMessage(chatID, "Логин не может быть пустым. Введите логин:"))
			return
		}
		if err := b.states.Set(ctx, chatID, dialog.StateLoginPassword, dialog.Payload{"username": username}); err != nil {
			b.log.Error("set state failed", "chat_id", chatID, "err", err)
			return
		}
		m := tgbotapi.NewMessage(chatID, "Введите пароль:")
		m.ReplyMarkup = navKeyboard(true)
		b.send(m)

	case dialog.StateLoginPassword:
		// пароль в истории чата не оставляем
		b.deleteMessage(chatID, msg.MessageID)

		username, _ := dialog.GetString(st.Payload, "username")
		_ = b.states.Reset(ctx, chatID)

		err := b.auth.Login(ctx, chatID, username, msg.Text)
		var le *auth.LoginError
		switch {
		case errors.As(err, &le):
			b.send(tgbotapi.NewMessage(chatID, "Не удалось войти: "+le.Reason+"\nПопробуйте ещё раз: /login"))
			return
		case err != nil:
			b.log.Error("login failed", "chat_id", chatID, "err", err)
			b.send(tgbotapi.NewMessage(chatID, "Ошибка входа, попробуйте позже."))
			return
		}
		b.send(tgbotapi.NewMessage(chatID, "Вход выполнен."))
		b.openReport(ctx, chatID, report.CurrentMonth(b.now().In(b.loc)))

	default:
		b.send(tgbotapi.NewMessage(chatID, "Наберите /help, чтобы увидеть команды."))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		_ = b.answerCallback(cb, "", false)
		return
	}
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := cb.Data

	switch {
	case data == cbCancel:
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Отменено.")
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, cbToggle):
		b.onToggle(cb, data)

	case data == cbRetry, data == cbRefresh:
		v := b.viewFor(ctx, chatID)
		_ = b.answerCallback(cb, "Обновляю…", false)
		b.load(ctx, chatID, msgID, v, v.Period())

	case data == cbPrev, data == cbNext:
		v := b.viewFor(ctx, chatID)
		p := v.Period().Prev()
		if data == cbNext {
			p = v.Period().Next()
		}
		b.rememberReport(ctx, chatID, msgID, p)
		_ = b.answerCallback(cb, "", false)
		b.load(ctx, chatID, msgID, v, p)

	case data == cbExcel:
		b.onExport(cb)

	case data == cbLogout:
		b.logout(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Вы вышли. Чтобы войти снова: /login")
		_ = b.answerCallback(cb, "", false)

	default:
		_ = b.answerCallback(cb, "Кнопка устарела", false)
	}
}
