// Package metrics exposes Prometheus counters for sandboxes served over SSH.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sand"

// Metrics owns a private registry so several servers (and tests) can
// coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	ticks          prometheus.Counter
	stepDuration   prometheus.Histogram
	particles      prometheus.Gauge
}

// New creates and registers the sandbox metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sandboxes currently open.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Sandboxes opened since start.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation steps across all sandboxes.",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time of one simulation step.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles",
			Help:      "Non-empty cells across open sandboxes after their last step.",
		}),
	}

	m.registry.MustRegister(m.sessionsActive, m.sessionsTotal, m.ticks, m.stepDuration, m.particles)
	return m
}

// Registry returns the registry the metrics live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Track opens a per-connection tracker. Close it when the connection ends.
func (m *Metrics) Track() *Tracker {
	m.sessionsActive.Inc()
	m.sessionsTotal.Inc()
	return &Tracker{m: m}
}

// Tracker feeds the ticks of one connection's sandboxes into the shared
// metrics. Ticks observed after Close are dropped.
type Tracker struct {
	m      *Metrics
	mu     sync.Mutex
	last   int
	closed bool
}

// ObserveTick records one simulation step.
func (t *Tracker) ObserveTick(d time.Duration, particles int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.m.ticks.Inc()
	t.m.stepDuration.Observe(d.Seconds())
	t.m.particles.Add(float64(particles - t.last))
	t.last = particles
}

// Detach withdraws the particles of the sandbox the connection just left.
// The connection stays active and its next sandbox reports from zero.
func (t *Tracker) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.detach()
}

func (t *Tracker) detach() {
	t.m.particles.Sub(float64(t.last))
	t.last = 0
}

// Close removes the connection from the live gauges. It is safe to call twice.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.m.sessionsActive.Dec()
	t.detach()
}

// Serve runs the /metrics endpoint on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
