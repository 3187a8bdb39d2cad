package report

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Views реестр видов по чатам.
type Views struct {
	mu sync.Mutex
	m  map[int64]*View
}

func NewViews() *Views { return &Views{m: make(map[int64]*View)} }

func (vs *Views) Get(chatID int64) (*View, bool) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	v, ok := vs.m[chatID]
	return v, ok
}

// Open возвращает открытый вид чата, создавая новый при необходимости.
func (vs *Views) Open(chatID int64, p Period) *View {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if v, ok := vs.m[chatID]; ok && !v.Closed() {
		return v
	}
	v := NewView(p)
	vs.m[chatID] = v
	return v
}

// Drop закрывает вид: незавершённая загрузка будет отброшена.
func (vs *Views) Drop(chatID int64) {
	vs.mu.Lock()
	v, ok := vs.m[chatID]
	delete(vs.m, chatID)
	vs.mu.Unlock()
	if ok {
		v.Close()
	}
}

// Loader запускает загрузки; одновременные запросы одного чата за один
// период схлопываются в один вызов fetch.
type Loader struct {
	group   singleflight.Group
	timeout time.Duration
	now     func() time.Time
}

func NewLoader(timeout time.Duration) *Loader {
	return &Loader{timeout: timeout, now: time.Now}
}

// Result итог одной загрузки.
type Result struct {
	Applied bool
	Shared  bool
	Records int
	Err     error
}

func (l *Loader) Load(ctx context.Context, chatID int64, v *View, p Period, fetch FetchFunc) Result {
	t := v.Begin(p)

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	key := strconv.FormatInt(chatID, 10) + "|" + p.Key()
	val, err, shared := l.group.Do(key, func() (any, error) {
		return fetch(ctx, p)
	})
	records, _ := val.([]MaterialRecord)

	return Result{
		Applied: v.Apply(t, records, err, l.now()),
		Shared:  shared,
		Records: len(records),
		Err:     err,
	}
}
