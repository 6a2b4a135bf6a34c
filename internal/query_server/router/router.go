package router

import (
	"github.com/Avi18971911/Lens/internal/query_server/handler"
	"github.com/Avi18971911/Lens/internal/query_server/metrics"
	"github.com/Avi18971911/Lens/internal/query_server/service/trace_view"
	"go.uber.org/zap"
	"net/http"
)
import "github.com/gorilla/mux"

func CreateRouter(
	traceViewQueryService trace_view.TraceViewQueryService,
	selectionState handler.SelectionState,
	streamOptions handler.StreamOptions,
	m *metrics.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.Handle("/requests", handler.RequestListHandler(traceViewQueryService, logger)).Methods("GET")
	r.Handle("/requests/{id}", handler.RequestHandler(traceViewQueryService, logger)).Methods("GET")
	r.Handle("/requests/{id}/spans", handler.SpanListHandler(traceViewQueryService, logger)).Methods("GET")
	r.Handle("/requests/{id}/timeline", handler.TimelineHandler(traceViewQueryService, logger)).Methods("GET")
	r.Handle("/requests/{id}/flamegraph", handler.FlamegraphHandler(traceViewQueryService, logger)).Methods("GET")
	r.Handle("/requests/{id}/flowchart", handler.FlowchartHandler(traceViewQueryService, logger)).Methods("GET")
	r.Handle("/requests/{id}/logs", handler.LogHandler(traceViewQueryService, logger)).Methods("GET")

	r.Handle("/selection", handler.SelectionHandler(selectionState, logger)).Methods("GET")
	r.Handle(
		"/selection/request", handler.SelectRequestHandler(
			traceViewQueryService,
			selectionState,
			logger,
		),
	).Methods("PUT")
	r.Handle("/selection/span", handler.SelectSpanHandler(selectionState, logger)).Methods("PUT")
	r.Handle("/selection/close", handler.CloseDrawerHandler(selectionState, logger)).Methods("POST")
	r.Handle(
		"/selection/stream", handler.SelectionStreamHandler(
			traceViewQueryService,
			selectionState,
			streamOptions,
			m,
			logger,
		),
	).Methods("GET")

	r.Handle("/metrics", m.Handler()).Methods("GET")

	return r
}
