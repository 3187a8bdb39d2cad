package report

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	UnknownGroup = "Unknown"
	DefaultUnit  = "dona"
	DefaultCode  = "-"
)

// MaterialRecord одна строка отчёта по материалам за период (материал × период).
type MaterialRecord struct {
	Parent    string
	Category  string
	Name      string
	Unit      string
	Code      string
	Color     *string
	LastPrice decimal.Decimal

	StartAmount  decimal.Decimal
	StartSum     decimal.Decimal
	IncomeAmount decimal.Decimal
	IncomeSum    decimal.Decimal
	OutgoAmount  decimal.Decimal
	OutgoSum     decimal.Decimal
	EndAmount    decimal.Decimal
	EndSum       decimal.Decimal
}

// flexNumber принимает число, строку с числом или null.
type flexNumber struct {
	v  decimal.Decimal
	ok bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		if d, err := decimal.NewFromString(s); err == nil {
			n.v, n.ok = d, true
		}
		return nil
	}
	// мусор вместо числа не валит весь список, просто остаётся 0
	if d, err := decimal.NewFromString(string(b)); err == nil {
		n.v, n.ok = d, true
	}
	return nil
}

// flexString строка или число (берём как текст); остальное считается отсутствующим.
type flexString struct {
	v  string
	ok bool
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch {
	case b[0] == '"':
		if err := json.Unmarshal(b, &f.v); err == nil {
			f.ok = true
		}
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err == nil {
			f.v, f.ok = n.String(), true
		}
	}
	return nil
}

func (f flexString) or(def string) string {
	if !f.ok || f.v == "" {
		return def
	}
	return f.v
}

type wireRecord struct {
	Parent    flexString `json:"parent"`
	Category  flexString `json:"category"`
	Name      flexString `json:"name"`
	Unit      flexString `json:"unit"`
	Code      flexString `json:"code"`
	Color     flexString `json:"color"`
	LastPrice flexNumber `json:"last_price"`

	RemindStartAmount  flexNumber `json:"remind_start_amount"`
	RemindStartSum     flexNumber `json:"remind_start_sum"`
	RemindIncomeAmount flexNumber `json:"remind_income_amount"`
	RemindIncomeSum    flexNumber `json:"remind_income_sum"`
	RemindOutgoAmount  flexNumber `json:"remind_outgo_amount"`
	RemindOutgoSum     flexNumber `json:"remind_outgo_sum"`
	RemindEndAmount    flexNumber `json:"remind_end_amount"`
	RemindEndSum       flexNumber `json:"remind_end_sum"`
}

// UnmarshalJSON применяет значения по умолчанию к каждому отсутствующему полю.
func (r *MaterialRecord) UnmarshalJSON(b []byte) error {
	var w wireRecord
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = MaterialRecord{
		Parent:       normalizeGroup(w.Parent.or("")),
		Category:     normalizeGroup(w.Category.or("")),
		Name:         w.Name.or(""),
		Unit:         w.Unit.or(DefaultUnit),
		Code:         w.Code.or(DefaultCode),
		LastPrice:    w.LastPrice.v,
		StartAmount:  w.RemindStartAmount.v,
		StartSum:     w.RemindStartSum.v,
		IncomeAmount: w.RemindIncomeAmount.v,
		IncomeSum:    w.RemindIncomeSum.v,
		OutgoAmount:  w.RemindOutgoAmount.v,
		OutgoSum:     w.RemindOutgoSum.v,
		EndAmount:    w.RemindEndAmount.v,
		EndSum:       w.RemindEndSum.v,
	}
	if c := w.Color.or(""); c != "" {
		r.Color = &c
	}
	return nil
}

// DecodeRecords разбирает JSON-массив записей. Поля неверного типа получают
// значения по умолчанию по отдельности; запись, которая вообще не объект,
// становится пустой записью.
func DecodeRecords(data []byte) ([]MaterialRecord, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]MaterialRecord, 0, len(raw))
	for _, item := range raw {
		var rec MaterialRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			rec = MaterialRecord{}
			rec.Normalize()
		}
		out = append(out, rec)
	}
	return out, nil
}

// Normalize подставляет значения по умолчанию для записей, собранных в коде.
func (r *MaterialRecord) Normalize() {
	r.Parent = normalizeGroup(r.Parent)
	r.Category = normalizeGroup(r.Category)
	if r.Unit == "" {
		r.Unit = DefaultUnit
	}
	if r.Code == "" {
		r.Code = DefaultCode
	}
}

func normalizeGroup(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnknownGroup
	}
	return s
}
