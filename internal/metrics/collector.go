// Package metrics exposes generator counters to Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yudaprama/timeid/internal/idgenerator"
)

const namespace = "timeid"

// StatsSource is anything that reports generator counters.
type StatsSource interface {
	Stats() idgenerator.Stats
	NodeID() int64
}

// Collector reads counters from a generator on every scrape.
type Collector struct {
	src StatsSource

	generated   *prometheus.Desc
	overflows   *prometheus.Desc
	regressions *prometheus.Desc
	waitSeconds *prometheus.Desc
}

// NewCollector returns a collector for src.
func NewCollector(src StatsSource) *Collector {
	labels := prometheus.Labels{"node_id": strconv.FormatInt(src.NodeID(), 10)}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, labels)
	}
	return &Collector{
		src:         src,
		generated:   desc("ids_generated_total", "Identifiers minted."),
		overflows:   desc("sequence_overflows_total", "Ticks whose sequence space ran out."),
		regressions: desc("clock_regressions_total", "Times the clock was seen stepping backwards."),
		waitSeconds: desc("clock_wait_seconds_total", "Time spent waiting for the clock to advance."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.generated
	ch <- c.overflows
	ch <- c.regressions
	ch <- c.waitSeconds
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.generated, prometheus.CounterValue, float64(s.Generated))
	ch <- prometheus.MustNewConstMetric(c.overflows, prometheus.CounterValue, float64(s.Overflows))
	ch <- prometheus.MustNewConstMetric(c.regressions, prometheus.CounterValue, float64(s.Regressions))
	ch <- prometheus.MustNewConstMetric(c.waitSeconds, prometheus.CounterValue, s.WaitTime.Seconds())
}

// Register adds a collector for src to reg.
func Register(reg prometheus.Registerer, src StatsSource) (*Collector, error) {
	c := NewCollector(src)
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}
