// Package metrics exposes propcell activity as Prometheus metrics.
//
// A Collector owns the metric families; Observe attaches it to a property's
// raw view so every write, completion, and error is counted under that
// property's name:
//
//	col := metrics.NewCollector(metrics.WithNamespace("myapp"))
//	sub := metrics.Observe[int](col, "queue_depth", depth)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/propcell-dev/propcell/pkg/propcell"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "propcell").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to register with.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "propcell",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the metric families for observed properties.
type Collector struct {
	writes      *prometheus.CounterVec
	completions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	observed    prometheus.Gauge
}

// NewCollector creates and registers the metric families.
func NewCollector(opts ...Option) *Collector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	return &Collector{
		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "writes_total",
			Help:        "Value notifications delivered per property.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"property"}),
		completions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "completions_total",
			Help:        "Completion signals delivered per property.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"property"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "failures_total",
			Help:        "Error signals delivered per property.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"property"}),
		observed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "observed_properties",
			Help:        "Properties currently being observed.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// Observe subscribes the collector to the property's raw view under the
// given name. Every write increments the write counter; the terminal signal
// increments the matching counter and releases the observed gauge. Cancel
// the returned subscription to stop counting early.
func Observe[T any](c *Collector, name string, src propcell.Readable[T]) *propcell.Subscription {
	c.observed.Inc()
	sub, _ := src.Raw().Subscribe(propcell.Observer[T]{
		Value: func(T) error {
			c.writes.WithLabelValues(name).Inc()
			return nil
		},
		Complete: func() {
			c.completions.WithLabelValues(name).Inc()
			c.observed.Dec()
		},
		Error: func(error) {
			c.failures.WithLabelValues(name).Inc()
			c.observed.Dec()
		},
	})
	return sub
}
