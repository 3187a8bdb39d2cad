package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

/*** HELPERS ***/

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

// deleteMessage Request, а не Send: в ответ приходит bool, не Message.
func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.Warn("delete message failed", "chat_id", chatID, "err", err)
	}
}

// clearMarkup убрать inline-кнопки, текст оставляем как есть
func (b *Bot) clearMarkup(chatID int64, messageID int) {
	b.rendered.forget(chatID)
	b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, emptyKeyboard()))
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	b.rendered.forget(chatID)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, emptyKeyboard())
	b.send(edit)
}
