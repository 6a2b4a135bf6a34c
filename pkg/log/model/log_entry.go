package model

// LogEntry is a single log line emitted while a span was running.
type LogEntry struct {
	// Milliseconds relative to the start of the owning span
	Timestamp float64                `json:"timestamp" validate:"gte=0"`
	Level     Level                  `json:"level" validate:"oneof=trace debug info warn error"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

type Level string

const (
	TraceLevel Level = "trace"
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)
