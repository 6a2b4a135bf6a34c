package service

import (
	filterModel "github.com/Avi18971911/Lens/pkg/filter/model"
	logModel "github.com/Avi18971911/Lens/pkg/log/model"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"sort"
	"strings"
)

// fields are matched against user searches, so <, > and & stay as they are
var fieldsJson = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// LogRecord is a log entry placed on the trace's clock together with the span that emitted it.
type LogRecord struct {
	Span *traceModel.Span
	Log  *logModel.LogEntry
	// Milliseconds relative to the start of the trace
	AbsoluteTime float64
}

// LogFilter narrows a correlated log sequence. Empty values and "all" match everything.
type LogFilter struct {
	SpanId  string
	Search  string
	Level   string
	Service string
}

type CorrelationService struct {
	logger *zap.Logger
}

func NewCorrelationService(logger *zap.Logger) *CorrelationService {
	return &CorrelationService{
		logger: logger,
	}
}

// Correlate flattens the logs of every span into a single sequence ordered by absolute time.
// Records with the same absolute time keep the order in which they appear in the trace.
func (cs *CorrelationService) Correlate(trace *traceModel.Trace) []LogRecord {
	records := make([]LogRecord, 0)
	if trace == nil {
		return records
	}
	for i := range trace.Spans {
		span := &trace.Spans[i]
		for j := range span.Logs {
			log := &span.Logs[j]
			records = append(records, LogRecord{
				Span:         span,
				Log:          log,
				AbsoluteTime: span.StartTime + log.Timestamp,
			})
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AbsoluteTime < records[j].AbsoluteTime
	})
	return records
}

// Filter keeps the records matching every criterion of the filter. The input is never modified.
func (cs *CorrelationService) Filter(records []LogRecord, filter LogFilter) []LogRecord {
	search := strings.ToLower(filter.Search)
	res := make([]LogRecord, 0, len(records))
	for _, record := range records {
		if !filterModel.IsWildcard(filter.SpanId) && record.Span.Id != filter.SpanId {
			continue
		}
		if !filterModel.IsWildcard(filter.Level) && string(record.Log.Level) != filter.Level {
			continue
		}
		if !filterModel.IsWildcard(filter.Service) && record.Span.Service != filter.Service {
			continue
		}
		if search != "" && !cs.matchesSearch(record, search) {
			continue
		}
		res = append(res, record)
	}
	return res
}

func (cs *CorrelationService) matchesSearch(record LogRecord, search string) bool {
	if strings.Contains(strings.ToLower(record.Log.Message), search) ||
		strings.Contains(strings.ToLower(record.Span.Service), search) ||
		strings.Contains(strings.ToLower(record.Span.Name), search) {
		return true
	}
	serialized := SerializeFields(record.Log.Fields)
	if serialized == "" && len(record.Log.Fields) > 0 {
		cs.logger.Debug(
			"Unable to serialize log fields for search",
			zap.String("span_id", record.Span.Id),
			zap.Float64("timestamp", record.Log.Timestamp),
		)
	}
	return strings.Contains(strings.ToLower(serialized), search)
}

// SerializeFields renders the fields of a log entry as JSON with sorted keys. Fields that cannot
// be encoded produce an empty string.
func SerializeFields(fields map[string]interface{}) string {
	if fields == nil {
		return ""
	}
	bytes, err := fieldsJson.Marshal(fields)
	if err != nil {
		return ""
	}
	return string(bytes)
}

// UniqueServices lists the services that emitted at least one of the records, sorted by name.
func UniqueServices(records []LogRecord) []string {
	seen := make(map[string]struct{})
	res := make([]string, 0)
	for _, record := range records {
		if _, ok := seen[record.Span.Service]; ok {
			continue
		}
		seen[record.Span.Service] = struct{}{}
		res = append(res, record.Span.Service)
	}
	sort.Strings(res)
	return res
}
