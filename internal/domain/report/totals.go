package report

import "github.com/shopspring/decimal"

// Totals сальдо и обороты: начало, приход, расход, конец (кол-во + сумма).
// Нулевое значение — все поля 0.
type Totals struct {
	StartAmount  decimal.Decimal
	StartSum     decimal.Decimal
	IncomeAmount decimal.Decimal
	IncomeSum    decimal.Decimal
	OutgoAmount  decimal.Decimal
	OutgoSum     decimal.Decimal
	EndAmount    decimal.Decimal
	EndSum       decimal.Decimal
}

// Add покомпонентная сумма.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		StartAmount:  t.StartAmount.Add(o.StartAmount),
		StartSum:     t.StartSum.Add(o.StartSum),
		IncomeAmount: t.IncomeAmount.Add(o.IncomeAmount),
		IncomeSum:    t.IncomeSum.Add(o.IncomeSum),
		OutgoAmount:  t.OutgoAmount.Add(o.OutgoAmount),
		OutgoSum:     t.OutgoSum.Add(o.OutgoSum),
		EndAmount:    t.EndAmount.Add(o.EndAmount),
		EndSum:       t.EndSum.Add(o.EndSum),
	}
}

// Equal сравнивает значения, а не представление (1.0 == 1).
func (t Totals) Equal(o Totals) bool {
	a, b := t.Fields(), o.Fields()
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Fields поля в порядке колонок отчёта.
func (t Totals) Fields() [8]decimal.Decimal {
	return [8]decimal.Decimal{
		t.StartAmount, t.StartSum,
		t.IncomeAmount, t.IncomeSum,
		t.OutgoAmount, t.OutgoSum,
		t.EndAmount, t.EndSum,
	}
}

// TotalsOf вклад одной записи.
func TotalsOf(r MaterialRecord) Totals {
	return Totals{
		StartAmount:  r.StartAmount,
		StartSum:     r.StartSum,
		IncomeAmount: r.IncomeAmount,
		IncomeSum:    r.IncomeSum,
		OutgoAmount:  r.OutgoAmount,
		OutgoSum:     r.OutgoSum,
		EndAmount:    r.EndAmount,
		EndSum:       r.EndSum,
	}
}

// Sum итог по набору записей; пустой набор даёт нули.
func Sum(records []MaterialRecord) Totals {
	var t Totals
	for _, r := range records {
		t = t.Add(TotalsOf(r))
	}
	return t
}
