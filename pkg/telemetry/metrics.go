package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	Namespace string
	Subsystem string
	// Buckets are the render duration buckets.
	Buckets []float64
	// Registry receives the collectors. Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "formprinter",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a Recorder backed by Prometheus collectors.
type Metrics struct {
	renders    *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	rows       prometheus.Histogram
	ids        prometheus.Counter
	collisions prometheus.Counter
}

// NewMetrics registers the render collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "renders_total",
			Help:      "Total number of render operations by outcome",
		}, []string{"op", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "render_duration_seconds",
			Help:      "Render operation duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"op"}),

		rows: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "array_group_rows",
			Help:      "Rows printed per array group",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}),

		ids: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "ids_issued_total",
			Help:      "Total number of distinct element ids issued",
		}),

		collisions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "id_collisions_total",
			Help:      "Total number of ids that needed a counter suffix",
		}),
	}
}

func (m *Metrics) Start(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()
	return ctx, func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.renders.WithLabelValues(op, status).Inc()
		m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) ObserveRows(_ context.Context, _ string, rows int) {
	m.rows.Observe(float64(rows))
}

func (m *Metrics) ObserveIDs(_ context.Context, issued, collisions int) {
	m.ids.Add(float64(issued))
	m.collisions.Add(float64(collisions))
}
