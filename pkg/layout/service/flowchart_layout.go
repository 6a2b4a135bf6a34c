package service

import (
	"github.com/Avi18971911/Lens/pkg/layout/model"
	traceService "github.com/Avi18971911/Lens/pkg/trace/service"
	"sort"
)

type FlowchartOptions struct {
	Width      float64
	Height     float64
	NodeWidth  float64
	NodeHeight float64
}

func DefaultFlowchartOptions() FlowchartOptions {
	return FlowchartOptions{
		Width:      1200,
		Height:     600,
		NodeWidth:  180,
		NodeHeight: 80,
	}
}

type FlowchartLayoutService struct {
	options FlowchartOptions
}

func NewFlowchartLayoutService(options FlowchartOptions) *FlowchartLayoutService {
	return &FlowchartLayoutService{
		options: options,
	}
}

// Layout buckets spans into horizontal levels by depth and spreads each level evenly across the
// canvas. Spacing is not clamped: a level wider than the canvas gets negative spacing and its
// nodes overlap, but node widths plus spacings always add up to the canvas width.
func (fls *FlowchartLayoutService) Layout(forest *traceService.Forest, width float64, height float64) model.FlowLayout {
	if width <= 0 {
		width = fls.options.Width
	}
	if height <= 0 {
		height = fls.options.Height
	}
	res := model.FlowLayout{
		Nodes:       []model.FlowNode{},
		Connections: []model.FlowConnection{},
		Levels:      []model.FlowLevel{},
		Width:       width,
		Height:      height,
	}
	if forest.SpanCount == 0 {
		return res
	}

	index := forest.Index
	levels := make(map[int][]*traceService.TreeNode)
	forest.Walk(func(node *traceService.TreeNode) {
		depth := index.DepthOf(node.Span.Id)
		levels[depth] = append(levels[depth], node)
	})
	depths := make([]int, 0, len(levels))
	for depth := range levels {
		depths = append(depths, depth)
		// pre-order walk groups siblings together; restore input order within a level
		sort.SliceStable(levels[depth], func(i, j int) bool {
			return inputOrder(index, levels[depth][i]) < inputOrder(index, levels[depth][j])
		})
	}
	sort.Ints(depths)
	maxDepth := depths[len(depths)-1]
	levelHeight := height / float64(maxDepth+2)

	positions := make(map[string]model.FlowNode, forest.SpanCount)
	for _, depth := range depths {
		levelNodes := levels[depth]
		count := float64(len(levelNodes))
		spacing := (width - count*fls.options.NodeWidth) / (count + 1)
		levelY := float64(depth+1) * levelHeight
		res.Levels = append(res.Levels, model.FlowLevel{
			Depth:   depth,
			Y:       levelY,
			Count:   len(levelNodes),
			Spacing: spacing,
		})
		for i, node := range levelNodes {
			flowNode := model.FlowNode{
				Span:   node.Span,
				Level:  depth,
				Index:  i,
				X:      spacing + float64(i)*(fls.options.NodeWidth+spacing),
				Y:      levelY,
				Width:  fls.options.NodeWidth,
				Height: fls.options.NodeHeight,
				Style:  StyleFor(node.Span),
			}
			positions[node.Span.Id] = flowNode
			res.Nodes = append(res.Nodes, flowNode)
		}
	}

	for _, node := range res.Nodes {
		parentId, ok := index.ParentOf(node.Span.Id)
		if !ok {
			continue
		}
		parent, ok := positions[parentId]
		if !ok {
			continue
		}
		res.Connections = append(res.Connections, model.FlowConnection{
			FromSpanId: parentId,
			ToSpanId:   node.Span.Id,
			Path:       connectorPath(parent, node),
		})
	}
	return res
}

// connectorPath runs from the bottom center of the parent to the top center of the child. Both
// control points sit half the vertical distance away from their anchor, which gives an S-curve
// whatever the horizontal displacement.
func connectorPath(from model.FlowNode, to model.FlowNode) model.CurvePath {
	start := model.Point{X: from.X + from.Width/2, Y: from.Y + from.Height}
	end := model.Point{X: to.X + to.Width/2, Y: to.Y}
	bend := (end.Y - start.Y) / 2
	return model.CurvePath{
		Start:    start,
		Control1: model.Point{X: start.X, Y: start.Y + bend},
		Control2: model.Point{X: end.X, Y: end.Y - bend},
		End:      end,
	}
}

func inputOrder(index *traceService.SpanIndex, node *traceService.TreeNode) int {
	return index.Position(node.Span.Id)
}
