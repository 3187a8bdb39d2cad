package bot

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/material-report-bot/internal/domain/report"
)

const (
	// запас под HTML-теги от лимита Telegram в 4096 символов
	maxMessageRunes = 3800

	// лимит кнопок inline-клавиатуры 100, часть занимают кнопки управления
	maxToggleButtons = 90

	indentUnit = "    "
	legend     = "Н: начало, П: приход, Р: расход, К: конец (кол-во / сумма)"
)

// reportText текст сообщения с отчётом для снимка вида.
func reportText(s report.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("<b>Отчёт по материалам</b>\n")
	sb.WriteString("Период: " + html.EscapeString(s.Period.String()) + "\n\n")

	switch s.Status {
	case report.StatusIdle, report.StatusLoading:
		sb.WriteString("⏳ Загрузка…")
		return sb.String()
	case report.StatusError:
		sb.WriteString(html.EscapeString(errorText(s.Err)))
		return sb.String()
	}

	if s.Tree.Empty() {
		sb.WriteString("За период нет данных.")
		return sb.String()
	}

	sb.WriteString("<i>" + legend + "</i>\n\n")
	n := utf8.RuneCountInString(sb.String())
	for i, r := range s.Rows {
		line := rowText(r)
		n += utf8.RuneCountInString(line)
		if n > maxMessageRunes {
			fmt.Fprintf(&sb, "… ещё строк: %d. Полный отчёт в Excel.", len(s.Rows)-i)
			break
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func errorText(err error) string {
	if err == nil {
		return "Ошибка загрузки данных"
	}
	return "Ошибка загрузки данных: " + err.Error()
}

func marker(r report.Row) string {
	switch {
	case !r.HasChildren:
		return "•"
	case r.Collapsed:
		return "▸"
	default:
		return "▾"
	}
}

func rowText(r report.Row) string {
	indent := strings.Repeat(indentUnit, r.Depth)
	c := r.Cells
	var head string
	if r.Kind == report.KindGrand {
		head = "<b>Σ " + html.EscapeString(r.Name) + "</b>"
	} else {
		head = marker(r) + " <b>" + html.EscapeString(r.Name) + "</b>"
	}
	return fmt.Sprintf("%s%s\n%s  Н %s / %s · П %s / %s · Р %s / %s · К %s / %s\n",
		indent, head,
		indent, c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7])
}

// reportKeyboard кнопки сворачивания для видимых групп и управление.
func reportKeyboard(s report.Snapshot) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	switch s.Status {
	case report.StatusIdle, report.StatusLoading:
		return emptyKeyboard()
	case report.StatusError:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Повторить", cbRetry),
		))
	case report.StatusReady:
		n := 0
		for _, r := range s.Rows {
			if !r.HasChildren {
				continue
			}
			if n == maxToggleButtons {
				break
			}
			label := strings.Repeat("· ", r.Depth) + marker(r) + " " + r.Name
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, toggleData(r.ID)),
			))
			n++
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", cbRefresh),
			tgbotapi.NewInlineKeyboardButtonData("📊 Excel", cbExcel),
		))
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Пред. месяц", cbPrev),
			tgbotapi.NewInlineKeyboardButtonData("След. месяц ▶️", cbNext),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти", cbLogout),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
