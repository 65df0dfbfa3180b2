package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dinobot"

// Metrics holds the loop collectors on a private registry. A nil *Metrics is
// a valid no-op recorder.
type Metrics struct {
	registry      *prometheus.Registry
	ticks         prometheus.Counter
	detections    *prometheus.CounterVec
	jumps         prometheus.Counter
	drops         prometheus.Counter
	stalls        prometheus.Counter
	captureErrors prometheus.Counter
	actionErrors  prometheus.Counter
	armed         prometheus.Gauge
	tickDuration  prometheus.Histogram
}

// New creates the collectors and registers them with Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Sampling loop iterations",
		}),
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Ticks by detection result",
		}, []string{"result"}),
		jumps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jumps_total",
			Help:      "Primary (jump) actions issued",
		}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drops_total",
			Help:      "Corrective fast drops issued",
		}),
		stalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_stalls_total",
			Help:      "Times the video feed froze",
		}),
		captureErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capture_errors_total",
			Help:      "Failed screen grabs",
		}),
		actionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_errors_total",
			Help:      "Failed key actions",
		}),
		armed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "armed",
			Help:      "1 while the timing controller is armed",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time of one loop iteration",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.25},
		}),
	}
	m.registry.MustRegister(
		m.ticks, m.detections, m.jumps, m.drops, m.stalls,
		m.captureErrors, m.actionErrors, m.armed, m.tickDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Tick records one loop iteration.
func (m *Metrics) Tick(elapsed time.Duration, detected bool) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	result := "none"
	if detected {
		result = "obstacle"
	}
	m.detections.WithLabelValues(result).Inc()
	m.tickDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) Jump() {
	if m != nil {
		m.jumps.Inc()
	}
}

func (m *Metrics) Drop() {
	if m != nil {
		m.drops.Inc()
	}
}

func (m *Metrics) Stall() {
	if m != nil {
		m.stalls.Inc()
	}
}

func (m *Metrics) CaptureError() {
	if m != nil {
		m.captureErrors.Inc()
	}
}

func (m *Metrics) ActionError() {
	if m != nil {
		m.actionErrors.Inc()
	}
}

// Armed sets the armed gauge.
func (m *Metrics) Armed(armed bool) {
	if m == nil {
		return
	}
	v := 0.0
	if armed {
		v = 1
	}
	m.armed.Set(v)
}

// Handler returns the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if logger != nil {
		logger.Info("metrics listening", "addr", addr)
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
