package service

import (
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	traceService "github.com/Avi18971911/Lens/pkg/trace/service"
	"go.uber.org/zap"
)

func forestOf(spans ...traceModel.Span) *traceService.Forest {
	tcs := traceService.NewTreeConstructorService(zap.NewNop())
	return tcs.ConstructForest(traceModel.Trace{RequestId: "req-test", Spans: spans})
}

func span(id string, parentId string, start float64, duration float64) traceModel.Span {
	return traceModel.Span{
		Id:        id,
		Name:      "op-" + id,
		Service:   "svc",
		Type:      traceModel.ServerSpan,
		ParentId:  parentId,
		StartTime: start,
		Duration:  duration,
		Status:    traceModel.SpanSuccess,
	}
}
