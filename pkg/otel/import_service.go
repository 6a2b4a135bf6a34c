package otel

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	jsoniter "github.com/json-iterator/go"
	protoLogs "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	protoTrace "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"os"
	"strings"
	"time"
)

var idJson = jsoniter.Config{
	EscapeHTML:  true,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

var idKeys = map[string]struct{}{
	"traceId":        {},
	"spanId":         {},
	"parentSpanId":   {},
	"trace_id":       {},
	"span_id":        {},
	"parent_span_id": {},
}

// ImportService turns OTLP JSON exports into requests. Every trace id becomes one request whose
// span times are relative to the earliest span of the trace.
type ImportService struct {
	logger *zap.Logger
}

func NewImportService(logger *zap.Logger) *ImportService {
	return &ImportService{
		logger: logger,
	}
}

// ImportFiles reads an OTLP trace export and, when logPath is not empty, an OTLP log export whose
// records are attached to the spans they reference.
func (is *ImportService) ImportFiles(tracePath string, logPath string) ([]traceModel.Request, error) {
	traceData, err := os.ReadFile(tracePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace export %s: %w", tracePath, err)
	}
	traces, err := is.DecodeTraces(traceData)
	if err != nil {
		return nil, err
	}
	var logs *protoLogs.ExportLogsServiceRequest
	if logPath != "" {
		logData, err := os.ReadFile(logPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read log export %s: %w", logPath, err)
		}
		logs, err = is.DecodeLogs(logData)
		if err != nil {
			return nil, err
		}
	}
	return is.Convert(traces, logs), nil
}

func (is *ImportService) DecodeTraces(data []byte) (*protoTrace.ExportTraceServiceRequest, error) {
	req := &protoTrace.ExportTraceServiceRequest{}
	if err := decode(data, req); err != nil {
		return nil, fmt.Errorf("failed to decode OTLP traces: %w", err)
	}
	return req, nil
}

func (is *ImportService) DecodeLogs(data []byte) (*protoLogs.ExportLogsServiceRequest, error) {
	req := &protoLogs.ExportLogsServiceRequest{}
	if err := decode(data, req); err != nil {
		return nil, fmt.Errorf("failed to decode OTLP logs: %w", err)
	}
	return req, nil
}

// decode accepts both the OTLP file format, which writes ids as hex, and plain protojson, which
// writes them as base64.
func decode(data []byte, message proto.Message) error {
	var doc interface{}
	if err := idJson.Unmarshal(data, &doc); err != nil {
		return err
	}
	hexIdsToBase64(doc)
	normalized, err := idJson.Marshal(doc)
	if err != nil {
		return err
	}
	return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(normalized, message)
}

func hexIdsToBase64(node interface{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if id, ok := value.(string); ok {
				if _, isId := idKeys[key]; isId {
					raw, err := hex.DecodeString(id)
					if err == nil && (len(raw) == 8 || len(raw) == 16) {
						v[key] = base64.StdEncoding.EncodeToString(raw)
					}
				}
				continue
			}
			hexIdsToBase64(value)
		}
	case []interface{}:
		for _, item := range v {
			hexIdsToBase64(item)
		}
	}
}

type pendingSpan struct {
	span  traceModel.Span
	start uint64
	end   uint64
}

type pendingTrace struct {
	id       string
	spans    []pendingSpan
	position map[string]int
}

// Convert groups spans by trace id in order of first appearance. Logs that reference an unknown
// trace or span are dropped.
func (is *ImportService) Convert(
	traces *protoTrace.ExportTraceServiceRequest,
	logs *protoLogs.ExportLogsServiceRequest,
) []traceModel.Request {
	var order []string
	pending := make(map[string]*pendingTrace)
	for _, resourceSpan := range traces.GetResourceSpans() {
		serviceName := getServiceName(resourceSpan.GetResource())
		if serviceName == unknownService {
			is.logger.Warn("Service name not found in resource span")
		}
		for _, scopeSpan := range resourceSpan.GetScopeSpans() {
			for _, span := range scopeSpan.GetSpans() {
				traceId := hex.EncodeToString(span.GetTraceId())
				if traceId == "" {
					is.logger.Warn("Skipping span without trace id", zap.String("name", span.GetName()))
					continue
				}
				pt, ok := pending[traceId]
				if !ok {
					pt = &pendingTrace{id: traceId, position: make(map[string]int)}
					pending[traceId] = pt
					order = append(order, traceId)
				}
				tags := getTags(span.GetAttributes())
				spanId := hex.EncodeToString(span.GetSpanId())
				pt.position[spanId] = len(pt.spans)
				pt.spans = append(pt.spans, pendingSpan{
					span: traceModel.Span{
						Id:       spanId,
						Name:     span.GetName(),
						Service:  serviceName,
						Type:     getSpanType(span, tags),
						ParentId: hex.EncodeToString(span.GetParentSpanId()),
						Status:   getSpanStatus(span, tags),
						Logs:     getEvents(span),
						Tags:     tags,
					},
					start: span.GetStartTimeUnixNano(),
					end:   span.GetEndTimeUnixNano(),
				})
			}
		}
	}

	dropped := 0
	for _, resourceLog := range logs.GetResourceLogs() {
		for _, scopeLog := range resourceLog.GetScopeLogs() {
			for _, log := range scopeLog.GetLogRecords() {
				pt, ok := pending[hex.EncodeToString(log.GetTraceId())]
				if !ok {
					dropped++
					continue
				}
				i, ok := pt.position[hex.EncodeToString(log.GetSpanId())]
				if !ok {
					dropped++
					continue
				}
				ps := &pt.spans[i]
				ps.span.Logs = append(ps.span.Logs, typeLog(log, ps.start))
			}
		}
	}
	if dropped > 0 {
		is.logger.Warn("Dropped logs that do not belong to an imported span", zap.Int("dropped", dropped))
	}

	requests := make([]traceModel.Request, 0, len(order))
	for _, traceId := range order {
		requests = append(requests, buildRequest(pending[traceId]))
	}
	is.logger.Info("Converted OTLP export", zap.Int("requests", len(requests)))
	return requests
}

func buildRequest(pt *pendingTrace) traceModel.Request {
	traceStart, traceEnd := pt.spans[0].start, uint64(0)
	for _, ps := range pt.spans {
		if ps.start < traceStart {
			traceStart = ps.start
		}
		if ps.end > traceEnd {
			traceEnd = ps.end
		}
	}

	status := traceModel.RequestCompleted
	spans := make([]traceModel.Span, len(pt.spans))
	var root *traceModel.Span
	for i, ps := range pt.spans {
		span := ps.span
		span.StartTime = sinceMillis(traceStart, ps.start)
		if ps.end != 0 {
			span.Duration = sinceMillis(ps.start, ps.end)
		}
		sortLogs(span.Logs)
		spans[i] = span
		if _, ok := pt.position[span.ParentId]; root == nil && (span.ParentId == "" || !ok) {
			root = &spans[i]
		}
		switch {
		case span.Status == traceModel.SpanError:
			status = traceModel.RequestError
		case span.Status == traceModel.SpanProcessing && status != traceModel.RequestError:
			status = traceModel.RequestProcessing
		}
	}
	if root == nil {
		root = &spans[0]
	}

	method := strings.ToUpper(firstTag(root.Tags, "http.request.method", "http.method"))
	if method == "" {
		method = unknownMethod
	}
	var duration *float64
	if traceEnd != 0 {
		total := sinceMillis(traceStart, traceEnd)
		duration = &total
	}
	return traceModel.Request{
		Id:        pt.id,
		Name:      root.Name,
		Method:    method,
		Path:      firstTag(root.Tags, "url.path", "http.route", "http.target"),
		Timestamp: time.Unix(0, int64(traceStart)).UTC(),
		Status:    status,
		Duration:  duration,
		Trace: traceModel.Trace{
			RequestId: pt.id,
			Spans:     spans,
		},
	}
}
