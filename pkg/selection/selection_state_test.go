package selection

import (
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"testing"
)

type staticRequests []traceModel.Request

func (s staticRequests) Requests() []traceModel.Request {
	return s
}

var (
	orderRequest   = traceModel.Request{Id: "req-001", Name: "Create Order", Method: "POST"}
	paymentRequest = traceModel.Request{Id: "req-003", Name: "Process Payment", Method: "POST"}
	orderSpan      = traceModel.Span{Id: "span-002", Name: "validateOrder", Service: "order-service"}
)

func newState(t *testing.T) *SelectionState {
	ss, err := NewSelectionState(EventBus.New(), staticRequests{orderRequest, paymentRequest}, zap.NewNop())
	require.NoError(t, err)
	return ss
}

type recorder struct {
	requests []string
	spans    []string
	drawer   []bool
}

func (r *recorder) observe(ss *SelectionState) []*Subscription {
	return []*Subscription{
		ss.ObserveSelectedRequest(func(request *traceModel.Request) {
			if request == nil {
				r.requests = append(r.requests, "")
				return
			}
			r.requests = append(r.requests, request.Id)
		}),
		ss.ObserveSelectedSpan(func(span *traceModel.Span) {
			if span == nil {
				r.spans = append(r.spans, "")
				return
			}
			r.spans = append(r.spans, span.Id)
		}),
		ss.ObserveDrawerOpen(func(open bool) {
			r.drawer = append(r.drawer, open)
		}),
	}
}

func TestSelectionState(t *testing.T) {
	t.Run("should expose the current requests", func(t *testing.T) {
		ss := newState(t)
		assert.Len(t, ss.CurrentRequests(), 2)
	})

	t.Run("should start with nothing selected and deliver that on subscribe", func(t *testing.T) {
		ss := newState(t)
		rec := &recorder{}
		rec.observe(ss)
		assert.Equal(t, []string{""}, rec.requests)
		assert.Equal(t, []string{""}, rec.spans)
		assert.Equal(t, []bool{false}, rec.drawer)
		assert.Nil(t, ss.SelectedRequest())
		assert.Nil(t, ss.SelectedSpan())
		assert.False(t, ss.DrawerOpen())
	})

	t.Run("should open the drawer when a request is selected", func(t *testing.T) {
		ss := newState(t)
		rec := &recorder{}
		rec.observe(ss)
		request := orderRequest
		ss.SelectRequest(&request)
		assert.Equal(t, []string{"", "req-001"}, rec.requests)
		assert.Equal(t, []bool{false, true}, rec.drawer)
		assert.True(t, ss.DrawerOpen())
		assert.Equal(t, "req-001", ss.SelectedRequest().Id)
	})

	t.Run("should clear the span when another request is selected", func(t *testing.T) {
		ss := newState(t)
		order, payment, span := orderRequest, paymentRequest, orderSpan
		ss.SelectRequest(&order)
		ss.SelectSpan(&span)
		rec := &recorder{}
		rec.observe(ss)

		ss.SelectRequest(&order)
		assert.Equal(t, "span-002", ss.SelectedSpan().Id)

		ss.SelectRequest(&payment)
		assert.Nil(t, ss.SelectedSpan())
		assert.Equal(t, []string{"span-002", ""}, rec.spans)
		assert.Equal(t, []string{"req-001", "req-001", "req-003"}, rec.requests)
	})

	t.Run("should clear everything when the drawer closes", func(t *testing.T) {
		for name, reset := range map[string]func(ss *SelectionState){
			"close":  func(ss *SelectionState) { ss.CloseDrawer() },
			"select": func(ss *SelectionState) { ss.SelectRequest(nil) },
		} {
			ss := newState(t)
			order, span := orderRequest, orderSpan
			ss.SelectRequest(&order)
			ss.SelectSpan(&span)
			rec := &recorder{}
			rec.observe(ss)
			reset(ss)
			assert.Nil(t, ss.SelectedRequest(), name)
			assert.Nil(t, ss.SelectedSpan(), name)
			assert.False(t, ss.DrawerOpen(), name)
			assert.Equal(t, []string{"req-001", ""}, rec.requests, name)
			assert.Equal(t, []string{"span-002", ""}, rec.spans, name)
			assert.Equal(t, []bool{true, false}, rec.drawer, name)
		}
	})

	t.Run("should let the last writer win", func(t *testing.T) {
		ss := newState(t)
		span := orderSpan
		other := traceModel.Span{Id: "span-003"}
		ss.SelectSpan(&span)
		ss.SelectSpan(&other)
		assert.Equal(t, "span-003", ss.SelectedSpan().Id)
		ss.SelectSpan(nil)
		assert.Nil(t, ss.SelectedSpan())
	})

	t.Run("should not leak changes made to the selected value", func(t *testing.T) {
		ss := newState(t)
		request := orderRequest
		ss.SelectRequest(&request)
		request.Name = "mutated"
		ss.SelectedRequest().Name = "mutated again"
		assert.Equal(t, "Create Order", ss.SelectedRequest().Name)
	})

	t.Run("should stop notifying after unsubscribe", func(t *testing.T) {
		ss := newState(t)
		rec := &recorder{}
		subscriptions := rec.observe(ss)
		assert.Equal(t, 3, ss.ObserverCount())
		for _, subscription := range subscriptions {
			subscription.Unsubscribe()
			subscription.Unsubscribe()
		}
		assert.Equal(t, 0, ss.ObserverCount())
		request := orderRequest
		ss.SelectRequest(&request)
		assert.Equal(t, []string{""}, rec.requests)
		assert.Equal(t, []bool{false}, rec.drawer)
	})

	t.Run("should keep states sharing a bus independent", func(t *testing.T) {
		bus := EventBus.New()
		first, err := NewSelectionState(bus, staticRequests{}, zap.NewNop())
		require.NoError(t, err)
		second, err := NewSelectionState(bus, staticRequests{}, zap.NewNop())
		require.NoError(t, err)
		rec := &recorder{}
		rec.observe(second)
		request := orderRequest
		first.SelectRequest(&request)
		assert.Equal(t, []string{""}, rec.requests)
		assert.NotEqual(t, first.Topics().Request, second.Topics().Request)
	})
}
