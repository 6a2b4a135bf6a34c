package model

import logModel "github.com/Avi18971911/Lens/pkg/log/model"

type SpanType string

const (
	ClientSpan   SpanType = "client"
	ServerSpan   SpanType = "server"
	DatabaseSpan SpanType = "database"
	CacheSpan    SpanType = "cache"
	QueueSpan    SpanType = "queue"
)

type SpanStatus string

const (
	SpanSuccess    SpanStatus = "success"
	SpanError      SpanStatus = "error"
	SpanWarning    SpanStatus = "warning"
	SpanProcessing SpanStatus = "processing"
)

type Span struct {
	Id      string   `json:"id" validate:"required"`
	Name    string   `json:"name"`
	Service string   `json:"service"`
	Type    SpanType `json:"type" validate:"oneof=client server database cache queue"`
	// Empty when the span is a root of its trace
	ParentId string `json:"parent_id,omitempty"`
	// Milliseconds relative to the start of the trace
	StartTime float64             `json:"start_time" validate:"gte=0"`
	Duration  float64             `json:"duration" validate:"gte=0"`
	Status    SpanStatus          `json:"status" validate:"oneof=success error warning processing"`
	Logs      []logModel.LogEntry `json:"logs" validate:"dive"`
	Tags      map[string]string   `json:"tags,omitempty"`
}

// End is the offset at which the span finished, relative to the start of the trace.
func (s Span) End() float64 {
	return s.StartTime + s.Duration
}

func (s Span) IsRoot() bool {
	return s.ParentId == ""
}
