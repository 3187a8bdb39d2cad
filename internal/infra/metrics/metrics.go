package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome результата загрузки отчёта.
const (
	OutcomeOK           = "ok"
	OutcomeError        = "error"
	OutcomeUnauthorized = "unauthorized"
	OutcomeStale        = "stale"
)

// Report метрики отчёта по материалам.
type Report struct {
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
	records  prometheus.Gauge
	renders  prometheus.Counter
	toggles  *prometheus.CounterVec
	exports  prometheus.Counter
}

// NewReport регистрирует метрики в reg; nil значит DefaultRegisterer.
func NewReport(reg prometheus.Registerer) (*Report, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Report{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "material_report_fetch_total",
			Help: "Material report fetches by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "material_report_fetch_duration_seconds",
			Help:    "Duration of material report fetches.",
			Buckets: prometheus.DefBuckets,
		}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "material_report_last_records",
			Help: "Number of records in the last applied report.",
		}),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "material_report_render_total",
			Help: "Rendered report messages.",
		}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "material_report_toggle_total",
			Help: "Group toggles by resulting state.",
		}, []string{"state"}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "material_report_export_total",
			Help: "Excel exports sent.",
		}),
	}
	for _, c := range []prometheus.Collector{m.fetches, m.duration, m.records, m.renders, m.toggles, m.exports} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Fetch nil-безопасны все методы: без метрик бот работает так же.
func (m *Report) Fetch(outcome string, took time.Duration, records int) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
	m.duration.Observe(took.Seconds())
	if outcome == OutcomeOK {
		m.records.Set(float64(records))
	}
}

func (m *Report) Render() {
	if m == nil {
		return
	}
	m.renders.Inc()
}

func (m *Report) Toggle(collapsed bool) {
	if m == nil {
		return
	}
	state := "expanded"
	if collapsed {
		state = "collapsed"
	}
	m.toggles.WithLabelValues(state).Inc()
}

func (m *Report) Export() {
	if m == nil {
		return
	}
	m.exports.Inc()
}
