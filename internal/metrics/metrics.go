// Package metrics records request and calculation counters.
//
// The Recorder interface decouples the web layer from the metrics backend;
// Prometheus is the production implementation and Noop is used when
// metrics are disabled.
package metrics

import (
	"net/http"
	"time"
)

// Calculation outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeNoMatches   = "no_matches"
	OutcomeError       = "error"
	OutcomeIngestError = "ingest_error"
)

// Recorder receives observations from the web layer.
type Recorder interface {
	ObserveRequest(route, status string, d time.Duration)
	ObserveCalculation(outcome string)
	Handler() http.Handler
}

// Noop discards all observations.
type Noop struct{}

// ObserveRequest implements Recorder.
func (Noop) ObserveRequest(string, string, time.Duration) {}

// ObserveCalculation implements Recorder.
func (Noop) ObserveCalculation(string) {}

// Handler implements Recorder.
func (Noop) Handler() http.Handler {
	return http.NotFoundHandler()
}
