package handler

import (
	"github.com/Avi18971911/Lens/internal/query_server/service/trace_view"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
)

// TimelineHandler lays out the spans of a request on a time axis
// @Summary Get timeline
// @Tags layouts
// @Produce json
// @Param id path string true "Request id"
// @Param width query number false "Width of the drawing surface, the configured default when absent"
// @Success 200 {object} handler.TimelineResponseDTO "Timeline bars and axis ticks"
// @Failure 400 {object} handler.ErrorMessage "Invalid viewport"
// @Failure 404 {object} handler.ErrorMessage "Unknown request"
// @Router /requests/{id}/timeline [get]
func TimelineHandler(
	tvs trace_view.TraceViewQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewport, err := decodeViewport(r)
		if err != nil {
			HttpError(w, err.Error(), http.StatusBadRequest, logger)
			return
		}
		layout, err := tvs.GetTimeline(mux.Vars(r)["id"], viewport.Width)
		if err != nil {
			lookupError(w, err, logger)
			return
		}
		writeJson(w, toTimelineResponseDTO(layout), logger)
	}
}

// FlamegraphHandler lays out the spans of a request as a flame graph
// @Summary Get flame graph
// @Tags layouts
// @Produce json
// @Param id path string true "Request id"
// @Param width query number false "Width of the drawing surface, the configured default when absent"
// @Success 200 {object} handler.FlamegraphResponseDTO "Flame graph blocks"
// @Failure 400 {object} handler.ErrorMessage "Invalid viewport"
// @Failure 404 {object} handler.ErrorMessage "Unknown request"
// @Router /requests/{id}/flamegraph [get]
func FlamegraphHandler(
	tvs trace_view.TraceViewQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewport, err := decodeViewport(r)
		if err != nil {
			HttpError(w, err.Error(), http.StatusBadRequest, logger)
			return
		}
		layout, err := tvs.GetFlamegraph(mux.Vars(r)["id"], viewport.Width)
		if err != nil {
			lookupError(w, err, logger)
			return
		}
		writeJson(w, toFlamegraphResponseDTO(layout), logger)
	}
}

// FlowchartHandler lays out the spans of a request as a leveled flowchart
// @Summary Get flowchart
// @Tags layouts
// @Produce json
// @Param id path string true "Request id"
// @Param width query number false "Width of the canvas, the configured default when absent"
// @Param height query number false "Height of the canvas, the configured default when absent"
// @Success 200 {object} handler.FlowchartResponseDTO "Flowchart nodes and connectors"
// @Failure 400 {object} handler.ErrorMessage "Invalid viewport"
// @Failure 404 {object} handler.ErrorMessage "Unknown request"
// @Router /requests/{id}/flowchart [get]
func FlowchartHandler(
	tvs trace_view.TraceViewQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewport, err := decodeViewport(r)
		if err != nil {
			HttpError(w, err.Error(), http.StatusBadRequest, logger)
			return
		}
		layout, err := tvs.GetFlowchart(mux.Vars(r)["id"], viewport.Width, viewport.Height)
		if err != nil {
			lookupError(w, err, logger)
			return
		}
		writeJson(w, toFlowchartResponseDTO(layout), logger)
	}
}
