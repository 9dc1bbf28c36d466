// Package pondmetrics exports a pond.Pool's occupancy as Prometheus
// metrics, using github.com/prometheus/client_golang (a teacher
// dependency). No retrieved teacher file instruments a store this way, so
// the wiring follows the standard prometheus.Collector idiom rather than a
// specific file (see DESIGN.md).
package pondmetrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arenapool/pond"
)

// Collector implements prometheus.Collector for a single pond.Pool,
// exporting its capacity/occupancy as gauges and counting the four
// mutating operations. It does not wrap Pool's methods: callers call
// Observe* alongside the Pool call they're instrumenting, since Pool
// itself carries no observer hooks (spec.md's core stays free of ambient
// concerns; instrumentation lives at this boundary instead).
type Collector[T any] struct {
	pool *pond.Pool[T]

	allocations uint64
	releases    uint64
	defrags     uint64
	writes      uint64

	capacityDesc   *prometheus.Desc
	occupiedDesc   *prometheus.Desc
	allocationDesc *prometheus.Desc
	releaseDesc    *prometheus.Desc
	defragDesc     *prometheus.Desc
	writeDesc      *prometheus.Desc
}

// NewCollector returns a Collector observing pool under the given name
// (used as a constant "pool" label so multiple pools can share a
// registry).
func NewCollector[T any](pool *pond.Pool[T], name string) *Collector[T] {
	constLabels := prometheus.Labels{"pool": name}
	return &Collector[T]{
		pool: pool,
		capacityDesc: prometheus.NewDesc(
			"pond_capacity", "Number of addressable cells currently backing the pool.",
			nil, constLabels),
		occupiedDesc: prometheus.NewDesc(
			"pond_occupied", "Number of occupied cells in the pool.",
			nil, constLabels),
		allocationDesc: prometheus.NewDesc(
			"pond_allocations_total", "Total number of Allocate calls observed.",
			nil, constLabels),
		releaseDesc: prometheus.NewDesc(
			"pond_releases_total", "Total number of Release calls observed.",
			nil, constLabels),
		defragDesc: prometheus.NewDesc(
			"pond_defragments_total", "Total number of Defragment/Trim calls observed.",
			nil, constLabels),
		writeDesc: prometheus.NewDesc(
			"pond_writes_total", "Total number of Write calls observed.",
			nil, constLabels),
	}
}

// ObserveAllocate should be called after every successful Allocate.
func (c *Collector[T]) ObserveAllocate() { atomic.AddUint64(&c.allocations, 1) }

// ObserveRelease should be called after every Release that returned ok.
func (c *Collector[T]) ObserveRelease() { atomic.AddUint64(&c.releases, 1) }

// ObserveDefragment should be called after every Defragment or Trim.
func (c *Collector[T]) ObserveDefragment() { atomic.AddUint64(&c.defrags, 1) }

// ObserveWrite should be called after every Write.
func (c *Collector[T]) ObserveWrite() { atomic.AddUint64(&c.writes, 1) }

// Describe implements prometheus.Collector.
func (c *Collector[T]) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacityDesc
	ch <- c.occupiedDesc
	ch <- c.allocationDesc
	ch <- c.releaseDesc
	ch <- c.defragDesc
	ch <- c.writeDesc
}

// Collect implements prometheus.Collector.
func (c *Collector[T]) Collect(ch chan<- prometheus.Metric) {
	capacity := c.pool.Capacity()
	occupied := 0
	for range c.pool.Iter() {
		occupied++
	}

	ch <- prometheus.MustNewConstMetric(c.capacityDesc, prometheus.GaugeValue, float64(capacity))
	ch <- prometheus.MustNewConstMetric(c.occupiedDesc, prometheus.GaugeValue, float64(occupied))
	ch <- prometheus.MustNewConstMetric(c.allocationDesc, prometheus.CounterValue, float64(atomic.LoadUint64(&c.allocations)))
	ch <- prometheus.MustNewConstMetric(c.releaseDesc, prometheus.CounterValue, float64(atomic.LoadUint64(&c.releases)))
	ch <- prometheus.MustNewConstMetric(c.defragDesc, prometheus.CounterValue, float64(atomic.LoadUint64(&c.defrags)))
	ch <- prometheus.MustNewConstMetric(c.writeDesc, prometheus.CounterValue, float64(atomic.LoadUint64(&c.writes)))
}

var _ prometheus.Collector = (*Collector[struct{}])(nil)
