// Package metrics holds the client's Prometheus counters.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request operations.
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpMeta    = "meta"
	OpResults = "results"
	OpDetail  = "detail"
	OpLabels  = "labels"
	OpSuggest = "suggest"
)

// Request outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Response slots guarded against staleness.
const (
	SlotResults     = "results"
	SlotSuggestions = "suggestions"
	SlotDetail      = "detail"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casesearch",
			Name:      "requests_total",
			Help:      "Search API requests by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	StaleResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casesearch",
			Name:      "stale_responses_total",
			Help:      "Responses discarded because a newer request superseded them",
		},
		[]string{"slot"},
	)

	PageCorrectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "casesearch",
			Name:      "page_corrections_total",
			Help:      "Requested pages rewritten into the valid range",
		},
	)
)

// Registry holds the client's collectors. It is separate from the default
// registry so tests and embedders do not collide on registration.
var Registry = newRegistry()

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(RequestsTotal, StaleResponsesTotal, PageCorrectionsTotal)
	return reg
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Serve starts a /metrics endpoint on addr in the background. Errors after
// startup are reported through onErr.
func Serve(addr string, onErr func(error)) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if onErr != nil {
				onErr(err)
			}
		}
	}()

	return srv
}
