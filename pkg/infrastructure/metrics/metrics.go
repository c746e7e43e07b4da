package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/WangYihang/discovery-pinger/pkg/domain/entity"
	"github.com/WangYihang/discovery-pinger/pkg/domain/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements repository.RunRecorder with Prometheus counters
type Metrics struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	levels   prometheus.Counter
	reports  *prometheus.CounterVec
}

// New creates metrics registered on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "runs_total",
			Help:      "Discovery runs by result.",
		}, []string{"result"}),
		levels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "levels_visited_total",
			Help:      "Non-public domain levels visited.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "reports_total",
			Help:      "Report attempts by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.runs, m.levels, m.reports)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRun records the end of a run
func (m *Metrics) RecordRun(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.runs.WithLabelValues(result).Inc()
}

// RecordLevel records a visited domain level
func (m *Metrics) RecordLevel() {
	m.levels.Inc()
}

// RecordReport records a report outcome
func (m *Metrics) RecordReport(outcome entity.Outcome) {
	m.reports.WithLabelValues(outcome.String()).Inc()
}

// InstrumentReporter counts the outcomes of next
func (m *Metrics) InstrumentReporter(next service.Reporter) service.Reporter {
	return &instrumentedReporter{next: next, metrics: m}
}

type instrumentedReporter struct {
	next    service.Reporter
	metrics *Metrics
}

func (r *instrumentedReporter) Report(ctx context.Context, target string) entity.Outcome {
	outcome := r.next.Report(ctx, target)
	r.metrics.RecordReport(outcome)
	return outcome
}

// Serve exports metrics on addr until ctx is cancelled
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
