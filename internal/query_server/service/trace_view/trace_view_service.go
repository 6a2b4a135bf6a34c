package trace_view

import (
	"errors"
	"fmt"
	"github.com/Avi18971911/Lens/internal/query_server/metrics"
	"github.com/Avi18971911/Lens/pkg/cache"
	filterModel "github.com/Avi18971911/Lens/pkg/filter/model"
	filterService "github.com/Avi18971911/Lens/pkg/filter/service"
	layoutModel "github.com/Avi18971911/Lens/pkg/layout/model"
	layoutService "github.com/Avi18971911/Lens/pkg/layout/service"
	logService "github.com/Avi18971911/Lens/pkg/log/service"
	requestService "github.com/Avi18971911/Lens/pkg/request/service"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	traceService "github.com/Avi18971911/Lens/pkg/trace/service"
	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

const (
	ForestView     = "forest"
	TimelineView   = "timeline"
	FlamegraphView = "flamegraph"
	FlowchartView  = "flowchart"

	// rough per node footprint used to weigh cache entries
	nodeCost = 512
)

var ErrSpanNotFound = errors.New("span not found")

type TraceViewQueryService interface {
	ListRequests(filter filterModel.RequestFilter) []traceModel.Request
	GetRequest(id string) (traceModel.Request, error)
	GetSpans(id string, filter filterModel.SpanFilter) ([]traceModel.Span, error)
	GetSpan(id string, spanId string) (traceModel.Span, error)
	GetTimeline(id string, width float64) (layoutModel.TimelineLayout, error)
	GetFlamegraph(id string, width float64) (layoutModel.FlameLayout, error)
	GetFlowchart(id string, width float64, height float64) (layoutModel.FlowLayout, error)
	GetLogs(id string, filter logService.LogFilter) ([]logService.LogRecord, []string, error)
}

type Options struct {
	Timeline   layoutService.TimelineOptions
	Flamegraph layoutService.FlamegraphOptions
	Flowchart  layoutService.FlowchartOptions
}

func DefaultOptions() Options {
	return Options{
		Timeline:   layoutService.DefaultTimelineOptions(),
		Flamegraph: layoutService.DefaultFlamegraphOptions(),
		Flowchart:  layoutService.DefaultFlowchartOptions(),
	}
}

// TraceViewService derives view models from stored requests. Forests and layouts are memoized per
// request and viewport size.
type TraceViewService struct {
	store           *requestService.RequestStore
	treeConstructor *traceService.TreeConstructorService
	timeline        *layoutService.TimelineLayoutService
	flamegraph      *layoutService.FlamegraphLayoutService
	flowchart       *layoutService.FlowchartLayoutService
	correlation     *logService.CorrelationService
	forests         cache.LayoutCache[*traceService.Forest]
	timelines       cache.LayoutCache[layoutModel.TimelineLayout]
	flames          cache.LayoutCache[layoutModel.FlameLayout]
	flows           cache.LayoutCache[layoutModel.FlowLayout]
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewTraceViewService(
	store *requestService.RequestStore,
	layoutCache *ristretto.Cache,
	options Options,
	m *metrics.Metrics,
	logger *zap.Logger,
) *TraceViewService {
	return &TraceViewService{
		store:           store,
		treeConstructor: traceService.NewTreeConstructorService(logger),
		timeline:        layoutService.NewTimelineLayoutService(options.Timeline),
		flamegraph:      layoutService.NewFlamegraphLayoutService(options.Flamegraph),
		flowchart:       layoutService.NewFlowchartLayoutService(options.Flowchart),
		correlation:     logService.NewCorrelationService(logger),
		forests: cache.NewLayoutCacheImpl[*traceService.Forest](layoutCache, ForestView, func(value *traceService.Forest) int64 {
			return int64(value.SpanCount+1) * nodeCost
		}),
		timelines: cache.NewLayoutCacheImpl[layoutModel.TimelineLayout](layoutCache, TimelineView, func(value layoutModel.TimelineLayout) int64 {
			return int64(len(value.Nodes)+1) * nodeCost
		}),
		flames: cache.NewLayoutCacheImpl[layoutModel.FlameLayout](layoutCache, FlamegraphView, func(value layoutModel.FlameLayout) int64 {
			return int64(len(value.Nodes)+1) * nodeCost
		}),
		flows: cache.NewLayoutCacheImpl[layoutModel.FlowLayout](layoutCache, FlowchartView, func(value layoutModel.FlowLayout) int64 {
			return int64(len(value.Nodes)+len(value.Connections)+1) * nodeCost
		}),
		metrics: m,
		logger:  logger,
	}
}

func (tvs *TraceViewService) ListRequests(filter filterModel.RequestFilter) []traceModel.Request {
	return filterService.FilterRequests(tvs.store.Requests(), filter)
}

func (tvs *TraceViewService) GetRequest(id string) (traceModel.Request, error) {
	return tvs.store.Get(id)
}

func (tvs *TraceViewService) GetSpans(id string, filter filterModel.SpanFilter) ([]traceModel.Span, error) {
	request, err := tvs.store.Get(id)
	if err != nil {
		return nil, err
	}
	return filterService.FilterSpans(request.Trace.Spans, filter), nil
}

func (tvs *TraceViewService) GetSpan(id string, spanId string) (traceModel.Span, error) {
	request, err := tvs.store.Get(id)
	if err != nil {
		return traceModel.Span{}, err
	}
	span := request.Trace.FindSpan(spanId)
	if span == nil {
		return traceModel.Span{}, fmt.Errorf("span %s of request %s: %w", spanId, id, ErrSpanNotFound)
	}
	return *span, nil
}

func (tvs *TraceViewService) GetTimeline(id string, width float64) (layoutModel.TimelineLayout, error) {
	forest, err := tvs.forest(id)
	if err != nil {
		return layoutModel.TimelineLayout{}, err
	}
	return memoize(tvs, tvs.timelines, TimelineView, cache.Key{RequestId: id, Width: width}, func() layoutModel.TimelineLayout {
		return tvs.timeline.Layout(forest, width)
	}), nil
}

func (tvs *TraceViewService) GetFlamegraph(id string, width float64) (layoutModel.FlameLayout, error) {
	forest, err := tvs.forest(id)
	if err != nil {
		return layoutModel.FlameLayout{}, err
	}
	return memoize(tvs, tvs.flames, FlamegraphView, cache.Key{RequestId: id, Width: width}, func() layoutModel.FlameLayout {
		return tvs.flamegraph.Layout(forest, width)
	}), nil
}

func (tvs *TraceViewService) GetFlowchart(id string, width float64, height float64) (layoutModel.FlowLayout, error) {
	forest, err := tvs.forest(id)
	if err != nil {
		return layoutModel.FlowLayout{}, err
	}
	key := cache.Key{RequestId: id, Width: width, Height: height}
	return memoize(tvs, tvs.flows, FlowchartView, key, func() layoutModel.FlowLayout {
		return tvs.flowchart.Layout(forest, width, height)
	}), nil
}

// GetLogs returns the correlated logs of the request that match the filter, together with the
// services that emitted any log of the request.
func (tvs *TraceViewService) GetLogs(id string, filter logService.LogFilter) ([]logService.LogRecord, []string, error) {
	request, err := tvs.store.Get(id)
	if err != nil {
		return nil, nil, err
	}
	records := tvs.correlation.Correlate(&request.Trace)
	return tvs.correlation.Filter(records, filter), logService.UniqueServices(records), nil
}

func (tvs *TraceViewService) forest(id string) (*traceService.Forest, error) {
	request, err := tvs.store.Get(id)
	if err != nil {
		return nil, err
	}
	return memoize(tvs, tvs.forests, ForestView, cache.Key{RequestId: id}, func() *traceService.Forest {
		return tvs.treeConstructor.ConstructForest(request.Trace)
	}), nil
}

func memoize[T any](
	tvs *TraceViewService,
	layoutCache cache.LayoutCache[T],
	view string,
	key cache.Key,
	compute func() T,
) T {
	value, hit, err := layoutCache.GetOrCompute(key, func() T {
		return metrics.Time(tvs.metrics, view, compute)
	})
	if err != nil {
		tvs.logger.Warn(
			"Unable to memoize view model",
			zap.String("view", view),
			zap.String("request_id", key.RequestId),
			zap.Error(err),
		)
	}
	tvs.metrics.RecordCache(view, hit)
	return value
}
