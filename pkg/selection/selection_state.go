package selection

import (
	"fmt"
	"github.com/Avi18971911/Lens/pkg/event_bus"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"sync"
)

const (
	requestTopicSuffix = "request"
	spanTopicSuffix    = "span"
	drawerTopicSuffix  = "drawer"
)

// RequestSource supplies the requests that can be selected.
type RequestSource interface {
	Requests() []traceModel.Request
}

// Topics names the bus topics a SelectionState publishes on.
type Topics struct {
	Request string
	Span    string
	Drawer  string
}

// Subscription stops the notifications of one observer.
type Subscription struct {
	id     uuid.UUID
	cancel func(id uuid.UUID)
	once   sync.Once
}

func (s *Subscription) Id() uuid.UUID {
	return s.id
}

// Unsubscribe is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel(s.id)
	})
}

// SelectionState is the single source of truth for the selected request, the selected span and
// whether the detail drawer is open. Every change is published on the event bus and delivered
// synchronously to the observers. Observers receive the current value when they subscribe.
//
// Observers run while the state is locked and must not call back into it.
type SelectionState struct {
	mu               sync.Mutex
	requests         RequestSource
	selectedRequest  *traceModel.Request
	selectedSpan     *traceModel.Span
	drawerOpen       bool
	topics           Topics
	requestBus       event_bus.LensEventBus[*traceModel.Request, *traceModel.Request]
	spanBus          event_bus.LensEventBus[*traceModel.Span, *traceModel.Span]
	drawerBus        event_bus.LensEventBus[bool, bool]
	requestObservers observers[*traceModel.Request]
	spanObservers    observers[*traceModel.Span]
	drawerObservers  observers[bool]
	logger           *zap.Logger
}

func NewSelectionState(
	eventBus EventBus.Bus,
	requests RequestSource,
	logger *zap.Logger,
) (*SelectionState, error) {
	prefix := "selection." + uuid.NewString() + "."
	ss := &SelectionState{
		requests: requests,
		topics: Topics{
			Request: prefix + requestTopicSuffix,
			Span:    prefix + spanTopicSuffix,
			Drawer:  prefix + drawerTopicSuffix,
		},
		requestBus: event_bus.NewLensEventBus[*traceModel.Request, *traceModel.Request](eventBus, logger),
		spanBus:    event_bus.NewLensEventBus[*traceModel.Span, *traceModel.Span](eventBus, logger),
		drawerBus:  event_bus.NewLensEventBus[bool, bool](eventBus, logger),
		logger:     logger,
	}
	err := ss.requestBus.SubscribeSync(ss.topics.Request, func(request *traceModel.Request) error {
		ss.requestObservers.notifyAll(request)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to selected requests: %w", err)
	}
	err = ss.spanBus.SubscribeSync(ss.topics.Span, func(span *traceModel.Span) error {
		ss.spanObservers.notifyAll(span)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to selected spans: %w", err)
	}
	err = ss.drawerBus.SubscribeSync(ss.topics.Drawer, func(open bool) error {
		ss.drawerObservers.notifyAll(open)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to drawer state: %w", err)
	}
	return ss, nil
}

func (ss *SelectionState) Topics() Topics {
	return ss.topics
}

func (ss *SelectionState) CurrentRequests() []traceModel.Request {
	return ss.requests.Requests()
}

// SelectRequest selects a request and opens the drawer. Selecting a different request clears the
// selected span. Selecting nil behaves like CloseDrawer.
func (ss *SelectionState) SelectRequest(request *traceModel.Request) {
	if request == nil {
		ss.CloseDrawer()
		return
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	selected := *request
	if ss.selectedRequest == nil || ss.selectedRequest.Id != selected.Id {
		ss.setSpan(nil)
	}
	ss.setRequest(&selected)
	ss.setDrawer(true)
}

func (ss *SelectionState) SelectSpan(span *traceModel.Span) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if span == nil {
		ss.setSpan(nil)
		return
	}
	selected := *span
	ss.setSpan(&selected)
}

// CloseDrawer closes the drawer and clears both the request and the span selection.
func (ss *SelectionState) CloseDrawer() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.setDrawer(false)
	ss.setRequest(nil)
	ss.setSpan(nil)
}

func (ss *SelectionState) SelectedRequest() *traceModel.Request {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return copyOf(ss.selectedRequest)
}

func (ss *SelectionState) SelectedSpan() *traceModel.Span {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return copyOf(ss.selectedSpan)
}

func (ss *SelectionState) DrawerOpen() bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.drawerOpen
}

func (ss *SelectionState) ObserveSelectedRequest(observer func(request *traceModel.Request)) *Subscription {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	id := ss.requestObservers.add(observer)
	observer(copyOf(ss.selectedRequest))
	return ss.subscription(id, ss.requestObservers.remove)
}

func (ss *SelectionState) ObserveSelectedSpan(observer func(span *traceModel.Span)) *Subscription {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	id := ss.spanObservers.add(observer)
	observer(copyOf(ss.selectedSpan))
	return ss.subscription(id, ss.spanObservers.remove)
}

func (ss *SelectionState) ObserveDrawerOpen(observer func(open bool)) *Subscription {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	id := ss.drawerObservers.add(observer)
	observer(ss.drawerOpen)
	return ss.subscription(id, ss.drawerObservers.remove)
}

// ObserverCount returns the number of registered observers across all three streams.
func (ss *SelectionState) ObserverCount() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.requestObservers.len() + ss.spanObservers.len() + ss.drawerObservers.len()
}

func (ss *SelectionState) subscription(id uuid.UUID, remove func(id uuid.UUID)) *Subscription {
	return &Subscription{
		id: id,
		cancel: func(id uuid.UUID) {
			ss.mu.Lock()
			defer ss.mu.Unlock()
			remove(id)
		},
	}
}

func (ss *SelectionState) setRequest(request *traceModel.Request) {
	ss.selectedRequest = request
	if err := ss.requestBus.Publish(ss.topics.Request, request); err != nil {
		ss.logger.Error("Failed to publish selected request", zap.Error(err))
	}
}

// setSpan only publishes when the selection actually changes, which keeps span observers quiet
// while the user switches between requests without a span selected.
func (ss *SelectionState) setSpan(span *traceModel.Span) {
	if span == nil && ss.selectedSpan == nil {
		return
	}
	ss.selectedSpan = span
	if err := ss.spanBus.Publish(ss.topics.Span, span); err != nil {
		ss.logger.Error("Failed to publish selected span", zap.Error(err))
	}
}

func (ss *SelectionState) setDrawer(open bool) {
	ss.drawerOpen = open
	if err := ss.drawerBus.Publish(ss.topics.Drawer, open); err != nil {
		ss.logger.Error("Failed to publish drawer state", zap.Error(err))
	}
}

func copyOf[T any](value *T) *T {
	if value == nil {
		return nil
	}
	res := *value
	return &res
}
