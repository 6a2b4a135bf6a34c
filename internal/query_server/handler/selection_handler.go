package handler

import (
	"fmt"
	"github.com/Avi18971911/Lens/internal/query_server/service/trace_view"
	"github.com/Avi18971911/Lens/pkg/selection"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"go.uber.org/zap"
	"io"
	"net/http"
)

// SelectionState is the part of the selection that the HTTP surface drives.
type SelectionState interface {
	SelectRequest(request *traceModel.Request)
	SelectSpan(span *traceModel.Span)
	CloseDrawer()
	SelectedRequest() *traceModel.Request
	SelectedSpan() *traceModel.Span
	DrawerOpen() bool
	ObserveSelectedRequest(observer func(request *traceModel.Request)) *selection.Subscription
	ObserveSelectedSpan(observer func(span *traceModel.Span)) *selection.Subscription
	ObserveDrawerOpen(observer func(open bool)) *selection.Subscription
}

// SelectionHandler returns the current selection
// @Summary Get selection
// @Tags selection
// @Produce json
// @Success 200 {object} handler.SelectionDTO "The selected request and span and the drawer state"
// @Router /selection [get]
func SelectionHandler(
	ss SelectionState,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJson(w, toSelectionDTO(ss), logger)
	}
}

// SelectRequestHandler selects a request and opens the drawer
// @Summary Select request
// @Description Selecting a different request clears the selected span. A null id closes the drawer.
// @Tags selection
// @Accept json
// @Produce json
// @Param selection body handler.SelectRequestDTO true "The request to select"
// @Success 200 {object} handler.SelectionDTO "The selection after the change"
// @Failure 400 {object} handler.ErrorMessage "Invalid request payload"
// @Failure 404 {object} handler.ErrorMessage "Unknown request"
// @Router /selection/request [put]
func SelectRequestHandler(
	tvs trace_view.TraceViewQueryService,
	ss SelectionState,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequestDTO
		if !decodeBody(w, r, &req, logger) {
			return
		}
		if req.RequestId == nil {
			ss.SelectRequest(nil)
			writeJson(w, toSelectionDTO(ss), logger)
			return
		}
		request, err := tvs.GetRequest(*req.RequestId)
		if err != nil {
			lookupError(w, err, logger)
			return
		}
		ss.SelectRequest(&request)
		writeJson(w, toSelectionDTO(ss), logger)
	}
}

// SelectSpanHandler selects a span of the selected request
// @Summary Select span
// @Description A null id clears the selected span and keeps the request selected.
// @Tags selection
// @Accept json
// @Produce json
// @Param selection body handler.SelectSpanDTO true "The span to select"
// @Success 200 {object} handler.SelectionDTO "The selection after the change"
// @Failure 400 {object} handler.ErrorMessage "Invalid request payload or no request selected"
// @Failure 404 {object} handler.ErrorMessage "The selected request has no such span"
// @Router /selection/span [put]
func SelectSpanHandler(
	ss SelectionState,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectSpanDTO
		if !decodeBody(w, r, &req, logger) {
			return
		}
		if req.SpanId == nil {
			ss.SelectSpan(nil)
			writeJson(w, toSelectionDTO(ss), logger)
			return
		}
		request := ss.SelectedRequest()
		if request == nil {
			HttpError(w, ErrNoRequestSelected.Error(), http.StatusBadRequest, logger)
			return
		}
		span := request.Trace.FindSpan(*req.SpanId)
		if span == nil {
			err := fmt.Errorf("span %s of request %s: %w", *req.SpanId, request.Id, trace_view.ErrSpanNotFound)
			lookupError(w, err, logger)
			return
		}
		ss.SelectSpan(span)
		writeJson(w, toSelectionDTO(ss), logger)
	}
}

// CloseDrawerHandler closes the drawer and clears the selection
// @Summary Close drawer
// @Tags selection
// @Produce json
// @Success 200 {object} handler.SelectionDTO "The empty selection"
// @Router /selection/close [post]
func CloseDrawerHandler(
	ss SelectionState,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ss.CloseDrawer()
		writeJson(w, toSelectionDTO(ss), logger)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, logger *zap.Logger) bool {
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Error("Error encountered when closing request body", zap.Error(err))
		}
	}(r.Body)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		logger.Error("Error encountered when decoding request body", zap.Error(err))
		HttpError(w, "Invalid request payload", http.StatusBadRequest, logger)
		return false
	}
	return true
}

func toSelectionDTO(ss SelectionState) SelectionDTO {
	res := SelectionDTO{DrawerOpen: ss.DrawerOpen()}
	if request := ss.SelectedRequest(); request != nil {
		summary := toRequestSummaryDTO(*request)
		res.Request = &summary
	}
	if span := ss.SelectedSpan(); span != nil {
		summary := toSpanSummaryDTO(*span)
		res.Span = &summary
	}
	return res
}
