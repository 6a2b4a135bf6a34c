package metrics

import (
	"github.com/Avi18971911/Lens/pkg/selection"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"github.com/asaskevich/EventBus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type noRequests struct{}

func (noRequests) Requests() []traceModel.Request {
	return nil
}

func TestMetrics(t *testing.T) {
	t.Run("should count layout passes and cache lookups", func(t *testing.T) {
		m := NewMetrics()
		res := Time(m, "timeline", func() int { return 42 })
		assert.Equal(t, 42, res)
		m.RecordCache("timeline", false)
		m.RecordCache("timeline", true)
		m.RecordCache("timeline", true)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.LayoutPasses.WithLabelValues("timeline")))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("timeline")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses.WithLabelValues("timeline")))
	})

	t.Run("should count selection events", func(t *testing.T) {
		m := NewMetrics()
		bus := EventBus.New()
		state, err := selection.NewSelectionState(bus, noRequests{}, zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, m.CountSelectionChanges(bus, state.Topics(), zap.NewNop()))

		state.SelectRequest(&traceModel.Request{Id: "req-001", Method: "GET"})
		state.CloseDrawer()
		bus.WaitAsync()
		assert.Equal(t, 2.0, testutil.ToFloat64(m.SelectionChanges.WithLabelValues("request")))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.SelectionChanges.WithLabelValues("drawer")))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.SelectionChanges.WithLabelValues("span")))
	})

	t.Run("should expose collectors over http", func(t *testing.T) {
		m := NewMetrics()
		m.StoredRequests.Set(4)
		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), "lens_stored_requests 4"))
	})
}
