package handler

import (
	"bytes"
	"github.com/Avi18971911/Lens/internal/query_server/service/trace_view"
	"github.com/Avi18971911/Lens/pkg/log/helper"
	logService "github.com/Avi18971911/Lens/pkg/log/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
)

const (
	jsonFormat   = "json"
	logfmtFormat = "logfmt"
)

// LogHandler returns the logs of a request in time order
// @Summary Get correlated logs
// @Description Flattens the logs of every span of the request into a single sequence ordered by
// @Description their time since the start of the trace.
// @Tags logs
// @Produce json
// @Produce text/plain
// @Param id path string true "Request id"
// @Param span_id query string false "Only logs of this span"
// @Param search query string false "Case-insensitive text found in the message, service, span name or fields"
// @Param level query string false "Log level, or all"
// @Param service query string false "Service name, or all"
// @Param format query string false "json (default) or logfmt"
// @Success 200 {object} handler.LogResponseDTO "Correlated logs"
// @Failure 400 {object} handler.ErrorMessage "Invalid query parameters"
// @Failure 404 {object} handler.ErrorMessage "Unknown request"
// @Router /requests/{id}/logs [get]
func LogHandler(
	tvs trace_view.TraceViewQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params LogParams
		if err := decodeQuery(r, &params); err != nil {
			HttpError(w, "Invalid query parameters", http.StatusBadRequest, logger)
			return
		}
		if params.Format != "" && params.Format != jsonFormat && params.Format != logfmtFormat {
			HttpError(w, ErrUnknownFormat.Error(), http.StatusBadRequest, logger)
			return
		}
		records, services, err := tvs.GetLogs(mux.Vars(r)["id"], logService.LogFilter{
			SpanId:  params.SpanId,
			Search:  params.Search,
			Level:   params.Level,
			Service: params.Service,
		})
		if err != nil {
			lookupError(w, err, logger)
			return
		}

		if params.Format == logfmtFormat {
			var buf bytes.Buffer
			if err := helper.EncodeLogfmt(&buf, records); err != nil {
				logger.Error("Error encountered when encoding logfmt", zap.Error(err))
				HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
				return
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			if _, err := w.Write(buf.Bytes()); err != nil {
				logger.Error("Error encountered when writing logfmt response", zap.Error(err))
			}
			return
		}

		writeJson(w, LogResponseDTO{
			Logs:     toLogRecordDTOs(records),
			Services: services,
			Total:    len(records),
		}, logger)
	}
}

func toLogRecordDTOs(records []logService.LogRecord) []LogRecordDTO {
	res := make([]LogRecordDTO, len(records))
	for i, record := range records {
		res[i] = LogRecordDTO{
			AbsoluteTime: record.AbsoluteTime,
			Time:         helper.FormatTimestamp(record.AbsoluteTime),
			Level:        string(record.Log.Level),
			Message:      record.Log.Message,
			SpanId:       record.Span.Id,
			SpanName:     record.Span.Name,
			Service:      record.Span.Service,
			Fields:       helper.FormatFields(record.Log.Fields),
		}
	}
	return res
}
