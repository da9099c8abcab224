package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PlotMetrics tracks waveform rendering.
type PlotMetrics struct {
	RenderDuration prometheus.Histogram
	RendersTotal   *prometheus.CounterVec
}

func NewPlotMetrics(reg prometheus.Registerer) *PlotMetrics {
	m := &PlotMetrics{
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "plot",
			Name:      "render_duration_seconds",
			Help:      "Time callers spent waiting for a waveform image.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}),
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "plot",
			Name:      "renders_total",
			Help:      "Waveform images served, by whether the render was shared with a concurrent caller.",
		}, []string{"shared"}),
	}

	reg.MustRegister(m.RenderDuration, m.RendersTotal)
	return m
}

func (m *PlotMetrics) ObserveRender(d time.Duration, shared bool) {
	m.RenderDuration.Observe(d.Seconds())
	label := "false"
	if shared {
		label = "true"
	}
	m.RendersTotal.WithLabelValues(label).Inc()
}
