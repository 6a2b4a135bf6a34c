package handler

import (
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"time"
)

// RequestSummaryDTO represents a request without its trace
// @swagger:model RequestSummaryDTO
type RequestSummaryDTO struct {
	Id        string                   `json:"id"`
	Name      string                   `json:"name"`
	Method    string                   `json:"method"`
	Path      string                   `json:"path"`
	Timestamp time.Time                `json:"timestamp"`
	Status    traceModel.RequestStatus `json:"status"`
	// Total duration in milliseconds, absent when unknown
	Duration *float64 `json:"duration,omitempty"`
	// Number of spans in the request's trace
	SpanCount int `json:"span_count"`
	// Number of spans that ended with an error
	ErrorCount int `json:"error_count"`
}

// RequestListResponseDTO represents the response to a request search
// @swagger:model RequestListResponseDTO
type RequestListResponseDTO struct {
	Requests []RequestSummaryDTO `json:"requests"`
	// Every method of the stored requests, for building filter choices
	Methods []string `json:"methods"`
}

// RequestDTO represents a request together with all of its spans
// @swagger:model RequestDTO
type RequestDTO struct {
	RequestSummaryDTO
	Spans []SpanDTO `json:"spans"`
}

// SpanSummaryDTO represents a span without its logs
// @swagger:model SpanSummaryDTO
type SpanSummaryDTO struct {
	Id       string                `json:"id"`
	Name     string                `json:"name"`
	Service  string                `json:"service"`
	Type     traceModel.SpanType   `json:"type"`
	Status   traceModel.SpanStatus `json:"status"`
	ParentId string                `json:"parent_id,omitempty"`
	// Milliseconds relative to the start of the trace
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
	LogCount  int     `json:"log_count"`
}

// SpanDTO represents a span with its logs and tags
// @swagger:model SpanDTO
type SpanDTO struct {
	SpanSummaryDTO
	Logs []LogEntryDTO     `json:"logs"`
	Tags map[string]string `json:"tags,omitempty"`
}

// LogEntryDTO represents a log entry relative to its span
// @swagger:model LogEntryDTO
type LogEntryDTO struct {
	// Milliseconds relative to the start of the span
	Timestamp float64                `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// SpanListResponseDTO represents the response to a span search
// @swagger:model SpanListResponseDTO
type SpanListResponseDTO struct {
	Spans []SpanDTO `json:"spans"`
	// Every service of the request's spans, for building filter choices
	Services []string `json:"services"`
}
