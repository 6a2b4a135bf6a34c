package handler

import (
	"github.com/Avi18971911/Lens/internal/query_server/service/trace_view"
	filterModel "github.com/Avi18971911/Lens/pkg/filter/model"
	filterService "github.com/Avi18971911/Lens/pkg/filter/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
)

// RequestListHandler lists the stored requests that match the filter
// @Summary List requests
// @Description Lists the stored requests that match the search text, status and method.
// @Tags requests
// @Produce json
// @Param search query string false "Case-insensitive text found in the name, path or method"
// @Param status query string false "Request status, or all"
// @Param method query string false "HTTP method, or all"
// @Success 200 {object} handler.RequestListResponseDTO "Matching requests and every known method"
// @Failure 400 {object} handler.ErrorMessage "Invalid query parameters"
// @Router /requests [get]
func RequestListHandler(
	tvs trace_view.TraceViewQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter filterModel.RequestFilter
		if err := decodeQuery(r, &filter); err != nil {
			HttpError(w, "Invalid query parameters", http.StatusBadRequest, logger)
			return
		}
		requests := tvs.ListRequests(filter)
		summaries := make([]RequestSummaryDTO, len(requests))
		for i, request := range requests {
			summaries[i] = toRequestSummaryDTO(request)
		}
		methods := filterService.UniqueMethods(tvs.ListRequests(filterModel.RequestFilter{}))
		writeJson(w, RequestListResponseDTO{Requests: summaries, Methods: methods}, logger)
	}
}

// RequestHandler returns one request with all of its spans
// @Summary Get request
// @Tags requests
// @Produce json
// @Param id path string true "Request id"
// @Success 200 {object} handler.RequestDTO "The request and its spans"
// @Failure 404 {object} handler.ErrorMessage "Unknown request"
// @Router /requests/{id} [get]
func RequestHandler(
	tvs trace_view.TraceViewQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request, err := tvs.GetRequest(mux.Vars(r)["id"])
		if err != nil {
			lookupError(w, err, logger)
			return
		}
		writeJson(w, toRequestDTO(request), logger)
	}
}

// SpanListHandler lists the spans of a request that match the filter
// @Summary List spans
// @Tags requests
// @Produce json
// @Param id path string true "Request id"
// @Param search query string false "Case-insensitive text found in the span name or service"
// @Param status query string false "Span status, or all"
// @Param service query string false "Service name, or all"
// @Success 200 {object} handler.SpanListResponseDTO "Matching spans and every service of the request"
// @Failure 400 {object} handler.ErrorMessage "Invalid query parameters"
// @Failure 404 {object} handler.ErrorMessage "Unknown request"
// @Router /requests/{id}/spans [get]
func SpanListHandler(
	tvs trace_view.TraceViewQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter filterModel.SpanFilter
		if err := decodeQuery(r, &filter); err != nil {
			HttpError(w, "Invalid query parameters", http.StatusBadRequest, logger)
			return
		}
		id := mux.Vars(r)["id"]
		spans, err := tvs.GetSpans(id, filter)
		if err != nil {
			lookupError(w, err, logger)
			return
		}
		all, err := tvs.GetSpans(id, filterModel.SpanFilter{})
		if err != nil {
			lookupError(w, err, logger)
			return
		}
		writeJson(w, SpanListResponseDTO{
			Spans:    toSpanDTOs(spans),
			Services: filterService.UniqueSpanServices(all),
		}, logger)
	}
}
