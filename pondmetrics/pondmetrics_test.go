package pondmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/arenapool/pond"
)

func TestCollectorReportsOccupancy(t *testing.T) {
	p := pond.New[int]()
	p.Allocate(1)
	p.Allocate(2)
	p.Release(0)

	c := NewCollector(p, "test")
	c.ObserveAllocate()
	c.ObserveAllocate()
	c.ObserveRelease()

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("Register() = %v, want nil", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() = %v, want nil", err)
	}

	values := make(map[string]float64)
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			values[fam.GetName()] = metricValue(m)
		}
	}

	if values["pond_capacity"] != 2 {
		t.Fatalf("pond_capacity = %v, want 2", values["pond_capacity"])
	}
	if values["pond_occupied"] != 1 {
		t.Fatalf("pond_occupied = %v, want 1", values["pond_occupied"])
	}
	if values["pond_allocations_total"] != 2 {
		t.Fatalf("pond_allocations_total = %v, want 2", values["pond_allocations_total"])
	}
	if values["pond_releases_total"] != 1 {
		t.Fatalf("pond_releases_total = %v, want 1", values["pond_releases_total"])
	}
}

func metricValue(m *dto.Metric) float64 {
	if m.Gauge != nil {
		return m.Gauge.GetValue()
	}
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return 0
}
