package server

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Render outcome labels.
const (
	outcomeSuccess  = "success"
	outcomeBadInput = "bad_input"
	outcomeFailed   = "failed"
)

// Metrics holds the Prometheus collectors exported on /metrics.
type Metrics struct {
	renders      *prom.CounterVec
	duration     prom.Histogram
	cellsSkipped prom.Counter
	sourceBytes  prom.Histogram
}

// NewMetrics constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewMetrics(reg *prom.Registry) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "nb2html",
			Name:      "renders_total",
			Help:      "Notebook renders by outcome",
		}, []string{"outcome"}),
		duration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "nb2html",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering a notebook",
			Buckets:   prom.DefBuckets,
		}),
		cellsSkipped: prom.NewCounter(prom.CounterOpts{
			Namespace: "nb2html",
			Name:      "cells_skipped_total",
			Help:      "Cells dropped because rendering failed",
		}),
		sourceBytes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "nb2html",
			Name:      "source_bytes",
			Help:      "Size of notebook sources received",
			Buckets:   prom.ExponentialBuckets(1<<10, 4, 8),
		}),
	}
	reg.MustRegister(m.renders, m.duration, m.cellsSkipped, m.sourceBytes)
	return m
}

func (m *Metrics) observeRender(outcome string, d time.Duration, size, skipped int) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
	m.sourceBytes.Observe(float64(size))
	if skipped > 0 {
		m.cellsSkipped.Add(float64(skipped))
	}
}
