package handler

import (
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
)

func toRequestSummaryDTO(request traceModel.Request) RequestSummaryDTO {
	errorCount := 0
	for _, span := range request.Trace.Spans {
		if span.Status == traceModel.SpanError {
			errorCount++
		}
	}
	return RequestSummaryDTO{
		Id:         request.Id,
		Name:       request.Name,
		Method:     request.Method,
		Path:       request.Path,
		Timestamp:  request.Timestamp,
		Status:     request.Status,
		Duration:   request.Duration,
		SpanCount:  len(request.Trace.Spans),
		ErrorCount: errorCount,
	}
}

func toRequestDTO(request traceModel.Request) RequestDTO {
	return RequestDTO{
		RequestSummaryDTO: toRequestSummaryDTO(request),
		Spans:             toSpanDTOs(request.Trace.Spans),
	}
}

func toSpanSummaryDTO(span traceModel.Span) SpanSummaryDTO {
	return SpanSummaryDTO{
		Id:        span.Id,
		Name:      span.Name,
		Service:   span.Service,
		Type:      span.Type,
		Status:    span.Status,
		ParentId:  span.ParentId,
		StartTime: span.StartTime,
		Duration:  span.Duration,
		LogCount:  len(span.Logs),
	}
}

func toSpanDTOs(spans []traceModel.Span) []SpanDTO {
	res := make([]SpanDTO, len(spans))
	for i, span := range spans {
		logs := make([]LogEntryDTO, len(span.Logs))
		for j, log := range span.Logs {
			logs[j] = LogEntryDTO{
				Timestamp: log.Timestamp,
				Level:     string(log.Level),
				Message:   log.Message,
				Fields:    log.Fields,
			}
		}
		res[i] = SpanDTO{
			SpanSummaryDTO: toSpanSummaryDTO(span),
			Logs:           logs,
			Tags:           span.Tags,
		}
	}
	return res
}
