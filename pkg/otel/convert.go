package otel

import (
	"encoding/hex"
	"fmt"
	logModel "github.com/Avi18971911/Lens/pkg/log/model"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	commonV1 "go.opentelemetry.io/proto/otlp/common/v1"
	logsV1 "go.opentelemetry.io/proto/otlp/logs/v1"
	resourceV1 "go.opentelemetry.io/proto/otlp/resource/v1"
	traceV1 "go.opentelemetry.io/proto/otlp/trace/v1"
	"sort"
	"strconv"
	"strings"
)

const (
	unknownService = "unknown"
	unknownMethod  = "INTERNAL"
	nanosPerMilli  = 1e6
)

func getServiceName(resource *resourceV1.Resource) string {
	var serviceName = unknownService
	for _, attr := range resource.GetAttributes() {
		if attr.GetKey() == "service.name" && attr.GetValue().GetStringValue() != "" {
			serviceName = attr.GetValue().GetStringValue()
		}
	}
	return serviceName
}

// getAttributes flattens attribute values into plain Go values suitable for JSON.
func getAttributes(attributes []*commonV1.KeyValue) map[string]interface{} {
	if len(attributes) == 0 {
		return nil
	}
	res := make(map[string]interface{}, len(attributes))
	for _, attribute := range attributes {
		res[attribute.GetKey()] = anyValue(attribute.GetValue())
	}
	return res
}

func getTags(attributes []*commonV1.KeyValue) map[string]string {
	if len(attributes) == 0 {
		return nil
	}
	res := make(map[string]string, len(attributes))
	for _, attribute := range attributes {
		res[attribute.GetKey()] = anyValueString(attribute.GetValue())
	}
	return res
}

func anyValue(value *commonV1.AnyValue) interface{} {
	switch v := value.GetValue().(type) {
	case *commonV1.AnyValue_StringValue:
		return v.StringValue
	case *commonV1.AnyValue_BoolValue:
		return v.BoolValue
	case *commonV1.AnyValue_IntValue:
		return v.IntValue
	case *commonV1.AnyValue_DoubleValue:
		return v.DoubleValue
	case *commonV1.AnyValue_BytesValue:
		return hex.EncodeToString(v.BytesValue)
	case *commonV1.AnyValue_ArrayValue:
		res := make([]interface{}, len(v.ArrayValue.GetValues()))
		for i, item := range v.ArrayValue.GetValues() {
			res[i] = anyValue(item)
		}
		return res
	case *commonV1.AnyValue_KvlistValue:
		res := make(map[string]interface{}, len(v.KvlistValue.GetValues()))
		for _, item := range v.KvlistValue.GetValues() {
			res[item.GetKey()] = anyValue(item.GetValue())
		}
		return res
	default:
		return nil
	}
}

func anyValueString(value *commonV1.AnyValue) string {
	switch v := value.GetValue().(type) {
	case *commonV1.AnyValue_StringValue:
		return v.StringValue
	case *commonV1.AnyValue_BoolValue:
		return strconv.FormatBool(v.BoolValue)
	case *commonV1.AnyValue_IntValue:
		return strconv.FormatInt(v.IntValue, 10)
	case *commonV1.AnyValue_DoubleValue:
		return strconv.FormatFloat(v.DoubleValue, 'g', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(anyValue(value))
	}
}

func getSpanType(span *traceV1.Span, tags map[string]string) traceModel.SpanType {
	if dbSystem, ok := tags["db.system"]; ok {
		switch strings.ToLower(dbSystem) {
		case "redis", "memcached", "hazelcast", "coherence":
			return traceModel.CacheSpan
		default:
			return traceModel.DatabaseSpan
		}
	}
	if _, ok := tags["messaging.system"]; ok {
		return traceModel.QueueSpan
	}
	switch span.GetKind() {
	case traceV1.Span_SPAN_KIND_CLIENT:
		return traceModel.ClientSpan
	case traceV1.Span_SPAN_KIND_PRODUCER, traceV1.Span_SPAN_KIND_CONSUMER:
		return traceModel.QueueSpan
	default:
		return traceModel.ServerSpan
	}
}

func getSpanStatus(span *traceV1.Span, tags map[string]string) traceModel.SpanStatus {
	if span.GetEndTimeUnixNano() == 0 {
		return traceModel.SpanProcessing
	}
	if span.GetStatus().GetCode() == traceV1.Status_STATUS_CODE_ERROR {
		return traceModel.SpanError
	}
	for _, key := range []string{"http.response.status_code", "http.status_code"} {
		if code, err := strconv.Atoi(tags[key]); err == nil && code >= 400 {
			return traceModel.SpanWarning
		}
	}
	return traceModel.SpanSuccess
}

func getSeverity(severityNumber logsV1.SeverityNumber) logModel.Level {
	switch {
	case severityNumber == logsV1.SeverityNumber_SEVERITY_NUMBER_UNSPECIFIED:
		return logModel.InfoLevel
	case severityNumber <= logsV1.SeverityNumber_SEVERITY_NUMBER_TRACE4:
		return logModel.TraceLevel
	case severityNumber <= logsV1.SeverityNumber_SEVERITY_NUMBER_DEBUG4:
		return logModel.DebugLevel
	case severityNumber <= logsV1.SeverityNumber_SEVERITY_NUMBER_INFO4:
		return logModel.InfoLevel
	case severityNumber <= logsV1.SeverityNumber_SEVERITY_NUMBER_WARN4:
		return logModel.WarnLevel
	default:
		return logModel.ErrorLevel
	}
}

func getEvents(span *traceV1.Span) []logModel.LogEntry {
	logs := make([]logModel.LogEntry, 0, len(span.GetEvents()))
	for _, event := range span.GetEvents() {
		level := logModel.InfoLevel
		if event.GetName() == "exception" {
			level = logModel.ErrorLevel
		}
		logs = append(logs, logModel.LogEntry{
			Timestamp: sinceMillis(span.GetStartTimeUnixNano(), event.GetTimeUnixNano()),
			Level:     level,
			Message:   event.GetName(),
			Fields:    getAttributes(event.GetAttributes()),
		})
	}
	return logs
}

func typeLog(log *logsV1.LogRecord, spanStart uint64) logModel.LogEntry {
	timestamp := log.GetTimeUnixNano()
	if timestamp == 0 {
		timestamp = log.GetObservedTimeUnixNano()
	}
	return logModel.LogEntry{
		Timestamp: sinceMillis(spanStart, timestamp),
		Level:     getSeverity(log.GetSeverityNumber()),
		Message:   anyValueString(log.GetBody()),
		Fields:    getAttributes(log.GetAttributes()),
	}
}

// sinceMillis converts the distance between two unix nano timestamps to milliseconds, clamped at 0.
func sinceMillis(from uint64, to uint64) float64 {
	if to <= from {
		return 0
	}
	return float64(to-from) / nanosPerMilli
}

func sortLogs(logs []logModel.LogEntry) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp < logs[j].Timestamp
	})
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := tags[key]; value != "" {
			return value
		}
	}
	return ""
}
