package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultLocale = "ru-RU"

// NumberFormatter форматирует числа с разделителями разрядов по локали.
// Разделители берутся у x/text, цифры из decimal, без перехода через float64.
type NumberFormatter struct {
	group   string
	decimal string
}

// NewNumberFormatter при неизвестной локали откатывается на ru-RU.
func NewNumberFormatter(locale string) *NumberFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Russian
	}
	group, dec := separators(message.NewPrinter(tag))
	return &NumberFormatter{group: group, decimal: dec}
}

// separators из образца 1234567.5: перед "234" разделитель разрядов,
// между "567" и "5" десятичный.
func separators(p *message.Printer) (group, dec string) {
	sample := p.Sprint(number.Decimal(1234567.5, number.MaxFractionDigits(1)))
	rest, ok := strings.CutPrefix(sample, "1")
	if !ok {
		return ",", "."
	}
	i := strings.Index(rest, "234")
	j := strings.Index(rest, "567")
	if i < 0 || j < i || !strings.HasSuffix(rest, "5") {
		return ",", "."
	}
	group = rest[:i]
	dec = strings.TrimSuffix(rest[j+len("567"):], "5")
	if dec == "" {
		dec = "."
	}
	return group, dec
}

func (f *NumberFormatter) Format(d decimal.Decimal) string {
	d = d.Round(3)
	if d.IsZero() {
		return "0"
	}
	s := d.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var sb strings.Builder
	sb.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteString(f.group)
		}
		sb.WriteRune(r)
	}
	if frac != "" {
		sb.WriteString(f.decimal)
		sb.WriteString(frac)
	}
	return sb.String()
}

// FormatPtr nil печатается как "0".
func (f *NumberFormatter) FormatPtr(d *decimal.Decimal) string {
	if d == nil {
		return "0"
	}
	return f.Format(*d)
}
