package trace_view

import (
	"github.com/Avi18971911/Lens/internal/query_server/metrics"
	filterModel "github.com/Avi18971911/Lens/pkg/filter/model"
	logService "github.com/Avi18971911/Lens/pkg/log/service"
	requestService "github.com/Avi18971911/Lens/pkg/request/service"
	"github.com/dgraph-io/ristretto"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"testing"
)

func newTestService(t *testing.T) (*TraceViewService, *ristretto.Cache, *metrics.Metrics) {
	logger := zap.NewNop()
	store := requestService.NewRequestStore(logger)
	require.NoError(t, store.LoadFixture())
	layoutCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	require.NoError(t, err)
	m := metrics.NewMetrics()
	return NewTraceViewService(store, layoutCache, DefaultOptions(), m, logger), layoutCache, m
}

func TestTraceViewService(t *testing.T) {
	t.Run("should list requests matching the filter", func(t *testing.T) {
		tvs, _, _ := newTestService(t)
		assert.Len(t, tvs.ListRequests(filterModel.RequestFilter{}), 4)
		requests := tvs.ListRequests(filterModel.RequestFilter{Method: "post", Status: "all"})
		require.Len(t, requests, 3)
		assert.Equal(t, "req-001", requests[0].Id)
		assert.Empty(t, tvs.ListRequests(filterModel.RequestFilter{Search: "no such request"}))
	})

	t.Run("should return not found errors for unknown requests and spans", func(t *testing.T) {
		tvs, _, _ := newTestService(t)
		_, err := tvs.GetRequest("req-999")
		assert.ErrorIs(t, err, requestService.ErrRequestNotFound)
		_, err = tvs.GetTimeline("req-999", 800)
		assert.ErrorIs(t, err, requestService.ErrRequestNotFound)
		_, err = tvs.GetSpan("req-001", "span-9")
		assert.ErrorIs(t, err, ErrSpanNotFound)

		span, err := tvs.GetSpan("req-001", "span-3")
		require.NoError(t, err)
		assert.Equal(t, "SELECT users", span.Name)
	})

	t.Run("should filter the spans of a request", func(t *testing.T) {
		tvs, _, _ := newTestService(t)
		spans, err := tvs.GetSpans("req-004", filterModel.SpanFilter{Service: "redis-cache"})
		require.NoError(t, err)
		require.Len(t, spans, 2)
		assert.Equal(t, "span-14", spans[0].Id)
		assert.Equal(t, "span-16", spans[1].Id)
	})

	t.Run("should lay out every span of a request", func(t *testing.T) {
		tvs, _, _ := newTestService(t)
		timeline, err := tvs.GetTimeline("req-004", 1000)
		require.NoError(t, err)
		assert.Len(t, timeline.Nodes, 17)
		assert.Equal(t, 1000.0, timeline.Width)

		flame, err := tvs.GetFlamegraph("req-004", 1000)
		require.NoError(t, err)
		assert.Len(t, flame.Nodes, 17)

		flow, err := tvs.GetFlowchart("req-004", 1200, 600)
		require.NoError(t, err)
		assert.Len(t, flow.Nodes, 17)
		assert.Len(t, flow.Connections, 16)
	})

	t.Run("should serve repeated layouts from the cache", func(t *testing.T) {
		tvs, layoutCache, m := newTestService(t)
		first, err := tvs.GetTimeline("req-001", 800)
		require.NoError(t, err)
		layoutCache.Wait()
		second, err := tvs.GetTimeline("req-001", 800)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses.WithLabelValues(TimelineView)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits.WithLabelValues(TimelineView)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.LayoutPasses.WithLabelValues(TimelineView)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.LayoutPasses.WithLabelValues(ForestView)))
	})

	t.Run("should lay out again for a different width", func(t *testing.T) {
		tvs, layoutCache, m := newTestService(t)
		_, err := tvs.GetFlowchart("req-001", 1200, 600)
		require.NoError(t, err)
		layoutCache.Wait()
		narrow, err := tvs.GetFlowchart("req-001", 400, 600)
		require.NoError(t, err)

		assert.Equal(t, 400.0, narrow.Width)
		assert.Equal(t, 2.0, testutil.ToFloat64(m.LayoutPasses.WithLabelValues(FlowchartView)))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.LayoutPasses.WithLabelValues(ForestView)))
	})

	t.Run("should return filtered logs with every service of the request", func(t *testing.T) {
		tvs, _, _ := newTestService(t)
		records, services, err := tvs.GetLogs("req-003", logService.LogFilter{Level: "warn"})
		require.NoError(t, err)
		require.Len(t, records, 4)
		for _, record := range records {
			assert.Equal(t, "warn", string(record.Log.Level))
		}
		assert.Equal(t, []string{"api-gateway", "payment-service"}, services)
		for i := 1; i < len(records); i++ {
			assert.LessOrEqual(t, records[i-1].AbsoluteTime, records[i].AbsoluteTime)
		}
	})
}
