// Package streammetrics exposes Prometheus metrics for event streams.
//
// A Collector is attached to individual streams with Watch; it counts every
// delivered event by kind, tracks terminations, and records teardown of the
// upstream resource. Metrics are registered with promauto against a
// configurable registry.
package streammetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rivulet-dev/rivulet/pkg/stream"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "rivulet").
	Namespace string

	// Subsystem is the metrics subsystem (default: "stream").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
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

// Collector holds the stream metrics.
type Collector struct {
	eventsTotal     *prometheus.CounterVec
	terminatedTotal *prometheus.CounterVec
	teardownsTotal  *prometheus.CounterVec
	liveStreams     *prometheus.GaugeVec
}

// NewCollector builds a Collector and registers its metrics.
//
// Metrics:
//   - <ns>_stream_events_total{stream,kind}: events delivered to the watcher
//   - <ns>_stream_terminated_total{stream,kind}: terminal events by kind
//   - <ns>_stream_teardowns_total{stream}: upstream teardown runs
//   - <ns>_stream_live_streams{stream}: watched streams not yet torn down
func NewCollector(opts ...Option) *Collector {
	config := Config{
		Namespace: "rivulet",
		Subsystem: "stream",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total events delivered, by stream and event kind",
			ConstLabels: config.ConstLabels,
		}, []string{"stream", "kind"}),

		terminatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "terminated_total",
			Help:        "Total terminal events, by stream and terminal kind",
			ConstLabels: config.ConstLabels,
		}, []string{"stream", "kind"}),

		teardownsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "teardowns_total",
			Help:        "Total upstream teardown runs, by stream",
			ConstLabels: config.ConstLabels,
		}, []string{"stream"}),

		liveStreams: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_streams",
			Help:        "Watched streams whose upstream has not been torn down",
			ConstLabels: config.ConstLabels,
		}, []string{"stream"}),
	}
}

// Watch attaches counting to sig under the given stream label and returns
// the registration backing it. Disposing the registration stops counting;
// the live gauge and teardown counter follow the stream's own teardown,
// which runs at most once regardless of observer churn.
func Watch[T any](c *Collector, sig *stream.Signal[T], name string) *stream.Registration {
	c.liveStreams.WithLabelValues(name).Inc()
	sig.OnDisposed(func() {
		c.teardownsTotal.WithLabelValues(name).Inc()
		c.liveStreams.WithLabelValues(name).Dec()
	})

	return sig.Observe(func(ev stream.Event[T]) {
		c.eventsTotal.WithLabelValues(name, ev.Kind().String()).Inc()
		if ev.IsTerminal() {
			c.terminatedTotal.WithLabelValues(name, ev.Kind().String()).Inc()
		}
	})
}
