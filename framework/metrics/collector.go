// Package metrics exposes a context's state to Prometheus.
package metrics

import (
	"fmt"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/km-arc/go-beans/framework/container"
)

// Collector reads a Context on every scrape. It holds no counters of its
// own, so the values always match what lookups would see.
type Collector struct {
	ctx *container.Context

	info    *prometheus.Desc
	state   *prometheus.Desc
	beans   *prometheus.Desc
	startup *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a Collector for ctx. namespace prefixes every metric
// name and may be empty.
func NewCollector(ctx *container.Context, namespace string) *Collector {
	name := func(n string) string { return prometheus.BuildFQName(namespace, "context", n) }
	return &Collector{
		ctx: ctx,
		info: prometheus.NewDesc(name("info"),
			"Constant 1, labelled with the context id.", []string{"id"}, nil),
		state: prometheus.NewDesc(name("state"),
			"1 for the lifecycle state the context is in, 0 otherwise.", []string{"state"}, nil),
		beans: prometheus.NewDesc(name("beans"),
			"Number of registered beans, by runtime type.", []string{"type"}, nil),
		startup: prometheus.NewDesc(name("startup_duration_seconds"),
			"Wall time of the last successful Start.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.info
	ch <- c.state
	ch <- c.beans
	ch <- c.startup
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1, c.ctx.ID())

	current := c.ctx.State()
	for s := container.Uninitialized; s <= container.Failed; s++ {
		v := 0.0
		if s == current {
			v = 1
		}
		ch <- prometheus.MustNewConstMetric(c.state, prometheus.GaugeValue, v, s.String())
	}

	counts := make(map[string]int)
	for _, b := range c.ctx.Beans() {
		counts[typeLabel(b.Instance)]++
	}
	for t, n := range counts {
		ch <- prometheus.MustNewConstMetric(c.beans, prometheus.GaugeValue, float64(n), t)
	}

	ch <- prometheus.MustNewConstMetric(c.startup, prometheus.GaugeValue, c.ctx.StartupDuration().Seconds())
}

// Registry returns a fresh registry holding a Collector for ctx.
func Registry(ctx *container.Context, namespace string) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(ctx, namespace)); err != nil {
		return nil, fmt.Errorf("metrics: register collector: %w", err)
	}
	return reg, nil
}

func typeLabel(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
