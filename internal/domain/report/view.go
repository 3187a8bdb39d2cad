package report

import (
	"context"
	"sync"
	"time"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// FetchFunc внешняя загрузка записей за период.
type FetchFunc func(ctx context.Context, p Period) ([]MaterialRecord, error)

// Ticket выдаётся на каждую загрузку; применяется только последний.
type Ticket struct {
	gen    uint64
	period Period
}

func (t Ticket) Period() Period { return t.period }

// View состояние отчёта одного чата: данные, дерево, свёрнутые узлы.
// Показывается либо загрузка, либо ошибка, либо данные целиком.
type View struct {
	mu       sync.Mutex
	period   Period
	status   Status
	err      error
	store    RecordStore
	tree     Tree
	collapse *CollapseState
	gen      uint64
	closed   bool
}

func NewView(p Period) *View {
	return &View{period: p, status: StatusIdle, collapse: NewCollapseState()}
}

// Begin переводит вид в загрузку и инвалидирует все предыдущие билеты.
func (v *View) Begin(p Period) Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.period = p
	v.status = StatusLoading
	v.err = nil
	return Ticket{gen: v.gen, period: p}
}

// Apply применяет результат загрузки. Возвращает false, если результат
// устарел (была начата другая загрузка или вид закрыт) и был отброшен.
func (v *View) Apply(t Ticket, records []MaterialRecord, err error, at time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || t.gen != v.gen {
		return false
	}
	if err != nil {
		v.status = StatusError
		v.err = err
		return true
	}
	v.store.Replace(t.period, records, at)
	v.tree = Aggregate(records)
	v.status = StatusReady
	return true
}

// Close после закрытия никакие результаты загрузки не применяются.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.gen++
	v.collapse.Reset()
}

func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Toggle сворачивает/разворачивает узел текущего дерева. Узлы без детей
// и неизвестные id не переключаются (ok == false).
func (v *View) Toggle(id NodeID) (collapsed, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	n, found := v.tree.Find(id)
	if !found || len(n.Children()) == 0 {
		return false, false
	}
	return v.collapse.Toggle(id), true
}

// Snapshot согласованная копия для отрисовки.
type Snapshot struct {
	Status    Status
	Period    Period
	Err       error
	Tree      Tree
	Records   int
	FetchedAt time.Time
	Rows      []Row
}

// Snapshot строки считаются только в состоянии StatusReady.
func (v *View) Snapshot(r *Renderer) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := Snapshot{
		Status:    v.status,
		Period:    v.period,
		Err:       v.err,
		Tree:      v.tree,
		Records:   len(v.store.Records()),
		FetchedAt: v.store.FetchedAt(),
	}
	if v.status == StatusReady && r != nil {
		s.Rows = r.Render(v.tree, v.collapse)
	}
	return s
}

func (v *View) Period() Period {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.period
}
