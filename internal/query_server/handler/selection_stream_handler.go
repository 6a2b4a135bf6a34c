package handler

import (
	"context"
	"github.com/Avi18971911/Lens/internal/query_server/metrics"
	"github.com/Avi18971911/Lens/internal/query_server/service/trace_view"
	layoutModel "github.com/Avi18971911/Lens/pkg/layout/model"
	layoutService "github.com/Avi18971911/Lens/pkg/layout/service"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"net/http"
	"time"
)

const (
	requestEvent   = "request"
	spanEvent      = "span"
	drawerEvent    = "drawer"
	flowchartEvent = "flowchart"
	resizeMessage  = "resize"
)

type StreamOptions struct {
	WriteTimeout time.Duration
	PingInterval time.Duration
	SendBuffer   int
}

func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		WriteTimeout: 5 * time.Second,
		PingInterval: 30 * time.Second,
		SendBuffer:   16,
	}
}

func (o StreamOptions) withDefaults() StreamOptions {
	defaults := DefaultStreamOptions()
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = defaults.WriteTimeout
	}
	if o.PingInterval <= 0 {
		o.PingInterval = defaults.PingInterval
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = defaults.SendBuffer
	}
	return o
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SelectionStreamHandler pushes every selection change to a websocket client
// @Summary Stream selection changes
// @Description Sends the current selection on connect and then every change as a SelectionEventDTO.
// @Description Clients may send ResizeMessageDTO messages to receive the flowchart of the selected
// @Description request for their canvas size. The flowchart is recomputed only when the width changes.
// @Tags selection
// @Success 101 {object} handler.SelectionEventDTO "Selection events"
// @Router /selection/stream [get]
func SelectionStreamHandler(
	tvs trace_view.TraceViewQueryService,
	ss SelectionState,
	options StreamOptions,
	m *metrics.Metrics,
	logger *zap.Logger,
) http.HandlerFunc {
	options = options.withDefaults()
	return func(w http.ResponseWriter, r *http.Request) {
		con, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("Error encountered when upgrading selection stream", zap.Error(err))
			return
		}
		stream := &selectionStream{
			id:      uuid.New(),
			con:     con,
			tvs:     tvs,
			options: options,
			events:  make(chan SelectionEventDTO, options.SendBuffer),
			resizes: make(chan ResizeMessageDTO, 1),
			logger:  logger,
		}
		m.StreamClients.Inc()
		defer m.StreamClients.Dec()
		stream.serve(r.Context(), ss)
	}
}

type selectionStream struct {
	id      uuid.UUID
	con     *websocket.Conn
	tvs     trace_view.TraceViewQueryService
	options StreamOptions
	events  chan SelectionEventDTO
	resizes chan ResizeMessageDTO
	logger  *zap.Logger

	// per connection flowchart state, only touched by serve
	flowRequestId string
	flowLayout    *layoutService.ResponsiveLayout[layoutModel.FlowLayout]
	flowErr       error
	viewport      *ResizeMessageDTO
}

func (s *selectionStream) serve(ctx context.Context, ss SelectionState) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if err := s.con.Close(); err != nil {
			s.logger.Debug("Error encountered when closing selection stream", zap.Error(err))
		}
	}()
	s.logger.Info("Selection stream client connected", zap.String("client_id", s.id.String()))

	subscriptions := []interface{ Unsubscribe() }{
		ss.ObserveDrawerOpen(func(open bool) {
			s.push(SelectionEventDTO{Type: drawerEvent, DrawerOpen: &open})
		}),
		ss.ObserveSelectedRequest(func(request *traceModel.Request) {
			event := SelectionEventDTO{Type: requestEvent}
			if request != nil {
				summary := toRequestSummaryDTO(*request)
				event.Request = &summary
			}
			s.push(event)
		}),
		ss.ObserveSelectedSpan(func(span *traceModel.Span) {
			event := SelectionEventDTO{Type: spanEvent}
			if span != nil {
				summary := toSpanSummaryDTO(*span)
				event.Span = &summary
			}
			s.push(event)
		}),
	}
	defer func() {
		for _, subscription := range subscriptions {
			subscription.Unsubscribe()
		}
		s.logger.Info("Selection stream client disconnected", zap.String("client_id", s.id.String()))
	}()

	go s.readLoop(cancel)

	pingTicker := time.NewTicker(s.options.PingInterval)
	defer pingTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-pingTicker.C:
			deadline := time.Now().Add(s.options.WriteTimeout)
			if err := s.con.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Debug("Error encountered when pinging selection stream", zap.Error(err))
				return
			}
		case event := <-s.events:
			if err := s.write(event); err != nil {
				return
			}
			if event.Type == requestEvent {
				if err := s.refreshFlowchart(event.Request); err != nil {
					return
				}
			}
		case resize := <-s.resizes:
			s.viewport = &resize
			if err := s.resizeFlowchart(ss.SelectedRequest()); err != nil {
				return
			}
		}
	}
}

// push never blocks since observers run while the selection is locked. Events are dropped when the
// client cannot keep up.
func (s *selectionStream) push(event SelectionEventDTO) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn(
			"Dropping selection event for slow stream client",
			zap.String("client_id", s.id.String()),
			zap.String("type", event.Type),
		)
	}
}

func (s *selectionStream) readLoop(cancel context.CancelFunc) {
	defer cancel()
	for {
		var message ResizeMessageDTO
		if err := s.con.ReadJSON(&message); err != nil {
			if _, ok := err.(*websocket.CloseError); !ok {
				s.logger.Debug("Error encountered when reading selection stream", zap.Error(err))
			}
			return
		}
		if message.Type != resizeMessage {
			s.logger.Debug("Ignoring selection stream message", zap.String("type", message.Type))
			continue
		}
		if err := validateViewport(message.Width, message.Height); err != nil {
			s.logger.Debug("Ignoring selection stream resize", zap.Error(err))
			continue
		}
		// only the latest size matters
		select {
		case <-s.resizes:
		default:
		}
		s.resizes <- message
	}
}

// refreshFlowchart forgets the flowchart of the previous request and lays out the new one if the
// client already told us its canvas size.
func (s *selectionStream) refreshFlowchart(request *RequestSummaryDTO) error {
	if request == nil || request.Id == s.flowRequestId {
		return nil
	}
	s.flowRequestId = ""
	s.flowLayout = nil
	if s.viewport == nil {
		return nil
	}
	return s.layoutFlowchart(request.Id)
}

func (s *selectionStream) resizeFlowchart(request *traceModel.Request) error {
	if request == nil {
		return nil
	}
	return s.layoutFlowchart(request.Id)
}

func (s *selectionStream) layoutFlowchart(requestId string) error {
	if s.flowLayout == nil || s.flowRequestId != requestId {
		s.flowRequestId = requestId
		s.flowLayout = layoutService.NewResponsiveLayout(func(width float64, height float64) layoutModel.FlowLayout {
			layout, err := s.tvs.GetFlowchart(requestId, width, height)
			s.flowErr = err
			return layout
		})
	}
	layout, recomputed := s.flowLayout.Resize(s.viewport.Width, s.viewport.Height)
	if !recomputed {
		return nil
	}
	if s.flowErr != nil {
		s.logger.Warn(
			"Unable to lay out flowchart for selection stream",
			zap.String("request_id", requestId),
			zap.Error(s.flowErr),
		)
		s.flowLayout = nil
		return nil
	}
	flowchart := toFlowchartResponseDTO(layout)
	return s.write(SelectionEventDTO{Type: flowchartEvent, Flowchart: &flowchart})
}

func (s *selectionStream) write(event SelectionEventDTO) error {
	if err := s.con.SetWriteDeadline(time.Now().Add(s.options.WriteTimeout)); err != nil {
		return err
	}
	err := s.con.WriteJSON(event)
	if err != nil {
		s.logger.Debug("Error encountered when writing selection stream", zap.Error(err))
	}
	return err
}
