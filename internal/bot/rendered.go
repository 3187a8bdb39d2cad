package bot

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// renderedMessages отпечаток последнего показанного отчёта по чатам.
// Telegram отвечает ошибкой на правку без изменений, такие правки не шлём.
type renderedMessages struct {
	mu sync.Mutex
	m  map[int64]renderedMessage
}

type renderedMessage struct {
	msgID int
	sum   uint64
}

func newRenderedMessages() *renderedMessages {
	return &renderedMessages{m: make(map[int64]renderedMessage)}
}

func fingerprint(text string, kb tgbotapi.InlineKeyboardMarkup) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(text)
	for _, row := range kb.InlineKeyboard {
		_, _ = d.WriteString("\n")
		for _, btn := range row {
			_, _ = d.WriteString(btn.Text + "\x00")
			if btn.CallbackData != nil {
				_, _ = d.WriteString(*btn.CallbackData)
			}
			_, _ = d.WriteString("\x00")
		}
	}
	return d.Sum64()
}

// update запоминает содержимое; false, если сообщение уже такое.
func (r *renderedMessages) update(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) bool {
	next := renderedMessage{msgID: msgID, sum: fingerprint(text, kb)}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.m[chatID]; ok && prev == next {
		return false
	}
	r.m[chatID] = next
	return true
}

// forget сообщение правили в обход отчёта.
func (r *renderedMessages) forget(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, chatID)
}
