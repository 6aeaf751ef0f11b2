package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/config"
	"github.com/ojo-network/ohm-analyzer/router/middleware"
)

const (
	APIPathPrefix = "/api/v1"

	errNoReport        = "no analysis report available yet"
	errMetricsDisabled = "telemetry is disabled"
)

// Router defines a router wrapper used for registering v1 API routes.
type Router struct {
	logger   zerolog.Logger
	cfg      config.Config
	analyzer Analyzer
	metrics  Metrics
}

// New returns a v1 Router. metrics may be nil when telemetry is disabled.
func New(logger zerolog.Logger, cfg config.Config, analyzer Analyzer, metrics Metrics) *Router {
	return &Router{
		logger:   logger.With().Str("module", "router").Logger(),
		cfg:      cfg,
		analyzer: analyzer,
		metrics:  metrics,
	}
}

// RegisterRoutes register v1 API routes on the provided sub-router.
func (r *Router) RegisterRoutes(rtr *mux.Router, prefix string) {
	v1Router := rtr.PathPrefix(prefix).Subrouter()

	mChain := middleware.Build(r.logger, r.cfg.Server)

	v1Router.Handle(
		"/healthz",
		mChain.ThenFunc(r.healthzHandler()),
	).Methods(http.MethodGet, http.MethodOptions)

	v1Router.Handle(
		"/analysis",
		mChain.ThenFunc(r.reportHandler(func(report types.Report) interface{} { return report })),
	).Methods(http.MethodGet, http.MethodOptions)

	v1Router.Handle(
		"/analysis/samples",
		mChain.ThenFunc(r.reportHandler(func(report types.Report) interface{} {
			return newSamplesResponse(report)
		})),
	).Methods(http.MethodGet, http.MethodOptions)

	v1Router.Handle(
		"/analysis/regression",
		mChain.ThenFunc(r.reportHandler(func(report types.Report) interface{} {
			return newRegressionResponse(report)
		})),
	).Methods(http.MethodGet, http.MethodOptions)

	v1Router.Handle(
		"/analysis/comparison",
		mChain.ThenFunc(r.reportHandler(func(report types.Report) interface{} {
			return newComparisonResponse(report)
		})),
	).Methods(http.MethodGet, http.MethodOptions)

	v1Router.Handle(
		"/metrics",
		mChain.ThenFunc(r.metricsHandler()),
	).Methods(http.MethodGet, http.MethodOptions)
}

func (r *Router) healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		resp := HealthZResponse{Status: StatusAvailable}
		if ts := r.analyzer.GetLastRunTimestamp(); !ts.IsZero() {
			resp.LastRun = ts.Format(time.RFC3339)
		}

		writeResponse(w, http.StatusOK, resp)
	}
}

// reportHandler serves a view of the last report, or 503 until one exists.
func (r *Router) reportHandler(view func(types.Report) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		report, ok := r.analyzer.GetReport()
		if !ok {
			writeErrorResponse(w, http.StatusServiceUnavailable, errNoReport)
			return
		}

		writeResponse(w, http.StatusOK, view(report))
	}
}

func (r *Router) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if r.metrics == nil {
			writeErrorResponse(w, http.StatusNotFound, errMetricsDisabled)
			return
		}

		format := strings.TrimSpace(req.FormValue("format"))

		gr, err := r.metrics.Gather(format)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("failed to gather metrics: %s", err))
			return
		}

		w.Header().Set("Content-Type", gr.ContentType)
		_, _ = w.Write(gr.Metrics)
	}
}
