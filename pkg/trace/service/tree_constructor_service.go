package service

import (
	"github.com/Avi18971911/Lens/pkg/trace/model"
	"go.uber.org/zap"
)

type TreeConstructorService struct {
	logger *zap.Logger
}

func NewTreeConstructorService(logger *zap.Logger) *TreeConstructorService {
	return &TreeConstructorService{
		logger: logger,
	}
}

// ConstructForest rebuilds the span hierarchy of a trace. Every span of the trace appears exactly
// once in the returned forest; the output is freshly allocated on every call and never shared
// with a previous pass.
func (tcs *TreeConstructorService) ConstructForest(trace model.Trace) *Forest {
	index := NewSpanIndex(trace.Spans)
	if dangling := index.DanglingSpans(); len(dangling) > 0 {
		tcs.logger.Warn(
			"Spans reference parents outside of the trace, treating them as roots",
			zap.String("request_id", trace.RequestId),
			zap.Strings("span_ids", dangling),
		)
	}
	if cyclic := index.CyclicSpans(); len(cyclic) > 0 {
		tcs.logger.Warn(
			"Parent references form a cycle, treating the spans on it as roots",
			zap.String("request_id", trace.RequestId),
			zap.Strings("span_ids", cyclic),
		)
	}

	forest := &Forest{
		Index:     index,
		SpanCount: index.Len(),
		MaxDepth:  index.MaxDepth(),
	}
	for _, span := range trace.Spans {
		if span.End() > forest.MaxDuration {
			forest.MaxDuration = span.End()
		}
	}
	roots := index.rootPositions()
	forest.Roots = make([]*TreeNode, len(roots))
	for i, p := range roots {
		forest.Roots[i] = buildNode(index, p)
	}
	return forest
}

func buildNode(index *SpanIndex, p int) *TreeNode {
	kids := index.childPositions(p)
	node := &TreeNode{
		Span:     index.spans[p],
		Depth:    index.depth[p],
		Children: make([]*TreeNode, len(kids)),
	}
	for i, k := range kids {
		node.Children[i] = buildNode(index, k)
	}
	return node
}

type Forest struct {
	Roots []*TreeNode
	// Latest end offset over all spans, 0 for an empty trace
	MaxDuration float64
	SpanCount   int
	MaxDepth    int
	Index       *SpanIndex
}

// Scale is the denominator shared by every layout. It never returns 0.
func (f *Forest) Scale() float64 {
	if f.MaxDuration <= 0 {
		return 1
	}
	return f.MaxDuration
}

// Walk visits the forest in pre-order.
func (f *Forest) Walk(visit func(node *TreeNode)) {
	for _, root := range f.Roots {
		root.walk(visit)
	}
}

type TreeNode struct {
	Span     model.Span
	Depth    int
	Children []*TreeNode
}

// SubtreeSize counts the node and all of its descendants.
func (n *TreeNode) SubtreeSize() int {
	size := 1
	for _, child := range n.Children {
		size += child.SubtreeSize()
	}
	return size
}

func (n *TreeNode) walk(visit func(node *TreeNode)) {
	visit(n)
	for _, child := range n.Children {
		child.walk(visit)
	}
}
