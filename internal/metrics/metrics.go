package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - счётчики извлечения, сравнения и HTTP-запросов. Nil-safe.
type Metrics struct {
	extractions *prometheus.CounterVec
	comparisons *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// New регистрирует метрики на reg. При reg == nil метрики не пишутся.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	extractions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfp_extractions_total",
		Help: "RFP drafts extracted from free text.",
	}, []string{"defaults"})
	comparisons := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "proposal_comparisons_total",
		Help: "Proposal comparisons by outcome.",
	}, []string{"outcome"})
	requests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(extractions, comparisons, requests)
	return &Metrics{
		extractions: extractions,
		comparisons: comparisons,
		requests:    requests,
	}
}

// ObserveExtraction считает извлечение; usedDefaults - позиции не распознаны.
func (m *Metrics) ObserveExtraction(usedDefaults bool) {
	if m == nil || m.extractions == nil {
		return
	}
	m.extractions.WithLabelValues(strconv.FormatBool(usedDefaults)).Inc()
}

// ObserveComparison считает сравнение; recommended=false - предложений меньше двух.
func (m *Metrics) ObserveComparison(recommended bool) {
	if m == nil || m.comparisons == nil {
		return
	}
	outcome := "insufficient"
	if recommended {
		outcome = "recommended"
	}
	m.comparisons.WithLabelValues(outcome).Inc()
}

// ObserveRequest записывает длительность HTTP-запроса.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
