package metrics

import (
	"fmt"
	"github.com/Avi18971911/Lens/pkg/event_bus"
	"github.com/Avi18971911/Lens/pkg/selection"
	"github.com/asaskevich/EventBus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const namespace = "lens"

type Metrics struct {
	registry         *prometheus.Registry
	LayoutPasses     *prometheus.CounterVec
	LayoutDuration   *prometheus.HistogramVec
	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
	SelectionChanges *prometheus.CounterVec
	StreamClients    prometheus.Gauge
	StoredRequests   prometheus.Gauge
}

// NewMetrics registers every collector on a dedicated registry so that several servers can run in
// one process, as they do in tests.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		LayoutPasses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_passes_total",
			Help:      "The total number of computed view models",
		}, []string{"view"}),
		LayoutDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Time spent computing a view model",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"view"}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_cache_hits_total",
			Help:      "View models served from the layout cache",
		}, []string{"view"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_cache_misses_total",
			Help:      "View models that had to be computed",
		}, []string{"view"}),
		SelectionChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_changes_total",
			Help:      "Published selection events",
		}, []string{"stream"}),
		StreamClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selection_stream_clients",
			Help:      "Connected selection stream clients",
		}),
		StoredRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_requests",
			Help:      "Requests held by the request store",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Time runs compute and records it as one layout pass of the view.
func Time[T any](m *Metrics, view string, compute func() T) T {
	start := time.Now()
	res := compute()
	m.LayoutDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	m.LayoutPasses.WithLabelValues(view).Inc()
	return res
}

func (m *Metrics) RecordCache(view string, hit bool) {
	if hit {
		m.CacheHits.WithLabelValues(view).Inc()
	} else {
		m.CacheMisses.WithLabelValues(view).Inc()
	}
}

// CountSelectionChanges subscribes asynchronously to the selection topics and counts every event.
func (m *Metrics) CountSelectionChanges(bus EventBus.Bus, topics selection.Topics, logger *zap.Logger) error {
	counter := event_bus.NewLensEventBus[any, any](bus, logger)
	streams := map[string]string{
		"request": topics.Request,
		"span":    topics.Span,
		"drawer":  topics.Drawer,
	}
	for stream, topic := range streams {
		changes := m.SelectionChanges.WithLabelValues(stream)
		err := counter.Subscribe(topic, func(input any) error {
			changes.Inc()
			return nil
		}, false)
		if err != nil {
			return fmt.Errorf("failed to count selection changes on %s: %w", stream, err)
		}
	}
	return nil
}
