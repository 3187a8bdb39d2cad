package report

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Period отчётный период, обе даты включительно.
type Period struct {
	Start time.Time
	End   time.Time
}

// CurrentMonth с первого по последнее число месяца, в котором лежит now.
func CurrentMonth(now time.Time) Period {
	return MonthOf(now.Year(), now.Month(), now.Location())
}

func MonthOf(year int, month time.Month, loc *time.Location) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)
	return Period{Start: start, End: end}
}

// Prev предыдущий календарный месяц относительно начала периода.
func (p Period) Prev() Period {
	s := p.Start.AddDate(0, -1, 0)
	return MonthOf(s.Year(), s.Month(), s.Location())
}

func (p Period) Next() Period {
	s := time.Date(p.Start.Year(), p.Start.Month(), 1, 0, 0, 0, 0, p.Start.Location()).AddDate(0, 1, 0)
	return MonthOf(s.Year(), s.Month(), s.Location())
}

func (p Period) StartDate() string { return p.Start.Format(DateLayout) }
func (p Period) EndDate() string   { return p.End.Format(DateLayout) }

// Key стабильный ключ периода.
func (p Period) Key() string { return p.StartDate() + ".." + p.EndDate() }

func (p Period) String() string {
	return p.Start.Format("02.01.2006") + " — " + p.End.Format("02.01.2006")
}

// ParsePeriod разбирает даты вида 2006-01-02.
func ParsePeriod(start, end string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.Local
	}
	s, err := time.ParseInLocation(DateLayout, start, loc)
	if err != nil {
		return Period{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.ParseInLocation(DateLayout, end, loc)
	if err != nil {
		return Period{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if e.Before(s) {
		return Period{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return Period{Start: s, End: e}, nil
}
