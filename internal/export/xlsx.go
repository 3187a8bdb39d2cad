package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/material-report-bot/internal/domain/report"
)

const sheet = "Материалы"

var header = []any{
	"Название", "Ед.", "Код", "Посл. цена",
	"Нач. кол-во", "Нач. сумма",
	"Приход кол-во", "Приход сумма",
	"Расход кол-во", "Расход сумма",
	"Кон. кол-во", "Кон. сумма",
}

// headerRow первая строка с данными идёт следом.
const headerRow = 2

// Workbook книга с полным деревом: итог, группы, категории и материалы.
// Уровни группировки строк повторяют глубину, Excel сворачивает их сам.
func Workbook(tree report.Tree, p report.Period) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A1", "Отчёт по материалам: "+p.String()); err != nil {
		return nil, err
	}
	cell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	w := &writer{f: f, row: headerRow + 1}
	w.add(0, report.GrandTitle, report.DefaultUnit, report.DefaultCode, nil, tree.Grand)
	for _, pn := range tree.Parents {
		w.add(0, pn.Name, report.DefaultUnit, report.DefaultCode, nil, pn.Totals)
		for _, cn := range pn.Categories {
			w.add(1, cn.Name, report.DefaultUnit, report.DefaultCode, nil, cn.Totals)
			for _, it := range cn.Items {
				price := it.LastPrice
				w.add(2, it.Name, it.Unit, it.Code, &price, report.TotalsOf(it))
			}
		}
	}
	if w.err != nil {
		return nil, w.err
	}

	if err := f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "E", "L", 14); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName имя файла для отправки документом.
func FileName(p report.Period) string {
	return fmt.Sprintf("materials_%s_%s.xlsx", p.StartDate(), p.EndDate())
}

type writer struct {
	f   *excelize.File
	row int
	err error
}

func (w *writer) add(level uint8, name, unit, code string, price *decimal.Decimal, t report.Totals) {
	if w.err != nil {
		return
	}
	values := make([]any, 0, len(header))
	values = append(values, name, unit, code)
	if price != nil {
		values = append(values, price.InexactFloat64())
	} else {
		values = append(values, report.PricePlaceholder)
	}
	for _, v := range t.Fields() {
		values = append(values, v.InexactFloat64())
	}

	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("row %d: %w", w.row, err)
		return
	}
	if level > 0 {
		if err := w.f.SetRowOutlineLevel(sheet, w.row, level); err != nil {
			w.err = err
			return
		}
	}
	w.row++
}
