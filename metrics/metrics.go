// Package metrics exports container events as Prometheus metrics.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danpasecinic/inverter"
)

// Collector records resolutions, registrations and module visits. Attach it
// to a container with Options; children built from that container inherit it.
type Collector struct {
	resolutions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	providers   *prometheus.CounterVec
	modules     *prometheus.CounterVec
	ready       prometheus.Histogram
}

func NewCollector(namespace string) *Collector {
	return &Collector{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Token resolutions, by token.",
			},
			[]string{"token"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolution_failures_total",
				Help:      "Failed token resolutions, by token and error code.",
			},
			[]string{"token", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolution_duration_seconds",
				Help:      "Time spent resolving a token, including its dependencies.",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"token"},
		),
		providers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "providers_registered_total",
				Help:      "Providers bound into containers, by kind and scope.",
			},
			[]string{"kind", "scope"},
		),
		modules: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "modules_compiled_total",
				Help:      "Module visits while compiling containers.",
			},
			[]string{"module"},
		),
		ready: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "container_build_seconds",
				Help:      "Time spent building a container.",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.resolutions.Describe(ch)
	c.failures.Describe(ch)
	c.duration.Describe(ch)
	c.providers.Describe(ch)
	c.modules.Describe(ch)
	c.ready.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.resolutions.Collect(ch)
	c.failures.Collect(ch)
	c.duration.Collect(ch)
	c.providers.Collect(ch)
	c.modules.Collect(ch)
	c.ready.Collect(ch)
}

// Options returns the container options that feed c.
func (c *Collector) Options() []inverter.Option {
	return []inverter.Option{
		inverter.WithResolveObserver(c.observeResolve),
		inverter.WithRegisterObserver(c.observeRegister),
		inverter.WithModuleObserver(c.observeModule),
		inverter.WithReadyObserver(c.observeReady),
	}
}

func (c *Collector) observeResolve(token string, d time.Duration, err error) {
	c.resolutions.WithLabelValues(token).Inc()
	c.duration.WithLabelValues(token).Observe(d.Seconds())
	if err != nil {
		c.failures.WithLabelValues(token, code(err)).Inc()
	}
}

func (c *Collector) observeRegister(token, kind string, scope inverter.Scope) {
	c.providers.WithLabelValues(kind, scope.String()).Inc()
}

func (c *Collector) observeModule(module, parent string) {
	c.modules.WithLabelValues(module).Inc()
}

func (c *Collector) observeReady(size int, d time.Duration) {
	c.ready.Observe(d.Seconds())
}

func code(err error) string {
	var e *inverter.Error
	if errors.As(err, &e) {
		return e.Code.String()
	}
	return "FACTORY"
}

var _ prometheus.Collector = (*Collector)(nil)
