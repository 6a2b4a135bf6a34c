package model

import "time"

type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestProcessing RequestStatus = "processing"
	RequestCompleted  RequestStatus = "completed"
	RequestError      RequestStatus = "error"
)

// Request is an API request together with the trace it produced. Requests are immutable once
// they have been added to the store.
type Request struct {
	Id        string        `json:"id" validate:"required"`
	Name      string        `json:"name"`
	Method    string        `json:"method" validate:"required"`
	Path      string        `json:"path"`
	Timestamp time.Time     `json:"timestamp"`
	Status    RequestStatus `json:"status" validate:"oneof=pending processing completed error"`
	// Total duration in milliseconds, nil when unknown
	Duration *float64 `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Trace    Trace    `json:"trace"`
}

type Trace struct {
	RequestId string `json:"request_id"`
	Spans     []Span `json:"spans" validate:"dive"`
}

// FindSpan returns the span with the given id, or nil if the trace does not contain it.
func (t *Trace) FindSpan(id string) *Span {
	for i := range t.Spans {
		if t.Spans[i].Id == id {
			return &t.Spans[i]
		}
	}
	return nil
}
