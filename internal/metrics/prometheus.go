package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "profit"

// Prometheus implements Recorder on a dedicated registry.
type Prometheus struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	durations    *prometheus.HistogramVec
	calculations *prometheus.CounterVec
}

// NewPrometheus creates and registers the collectors.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Profit calculations by outcome.",
		}, []string{"outcome"}),
	}

	p.registry.MustRegister(p.requests, p.durations, p.calculations)
	return p
}

// ObserveRequest implements Recorder.
func (p *Prometheus) ObserveRequest(route, status string, d time.Duration) {
	p.requests.WithLabelValues(route, status).Inc()
	p.durations.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveCalculation implements Recorder.
func (p *Prometheus) ObserveCalculation(outcome string) {
	p.calculations.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
