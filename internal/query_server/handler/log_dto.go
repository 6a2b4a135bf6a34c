package handler

// LogRecordDTO represents a log entry placed on the trace's clock
// @swagger:model LogRecordDTO
type LogRecordDTO struct {
	// Milliseconds relative to the start of the trace
	AbsoluteTime float64 `json:"absolute_time"`
	// AbsoluteTime rendered as mm:ss.mmm
	Time     string `json:"time"`
	Level    string `json:"level"`
	Message  string `json:"message"`
	SpanId   string `json:"span_id"`
	SpanName string `json:"span_name"`
	Service  string `json:"service"`
	// Fields rendered as space separated key=value pairs
	Fields string `json:"fields,omitempty"`
}

// LogResponseDTO represents the correlated logs of a request
// @swagger:model LogResponseDTO
type LogResponseDTO struct {
	Logs []LogRecordDTO `json:"logs"`
	// Every service that logged during the request, for building filter choices
	Services []string `json:"services"`
	Total    int      `json:"total"`
}
