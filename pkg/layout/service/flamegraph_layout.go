package service

import (
	"github.com/Avi18971911/Lens/pkg/layout/model"
	traceService "github.com/Avi18971911/Lens/pkg/trace/service"
)

type FlamegraphOptions struct {
	// Defaults to 100 so that positions read as percentages
	Width     float64
	RowHeight float64
	BarHeight float64
}

func DefaultFlamegraphOptions() FlamegraphOptions {
	return FlamegraphOptions{
		Width:     100,
		RowHeight: 60,
		BarHeight: 50,
	}
}

type FlamegraphLayoutService struct {
	options FlamegraphOptions
}

func NewFlamegraphLayoutService(options FlamegraphOptions) *FlamegraphLayoutService {
	return &FlamegraphLayoutService{
		options: options,
	}
}

// Layout puts every span of the same depth on the same row. Roots are drawn at their own start
// time; children are packed left to right from the parent's start, each advancing the cursor by
// its own duration in input order. Children that overlap in time are therefore drawn shifted.
func (fls *FlamegraphLayoutService) Layout(forest *traceService.Forest, width float64) model.FlameLayout {
	if width <= 0 {
		width = fls.options.Width
	}
	scale := forest.Scale()
	nodes := make([]model.FlameNode, 0, forest.SpanCount)
	maxDepth := 0
	var place func(node *traceService.TreeNode, offset float64)
	place = func(node *traceService.TreeNode, offset float64) {
		if node.Depth > maxDepth {
			maxDepth = node.Depth
		}
		nodes = append(nodes, model.FlameNode{
			Span:   node.Span,
			Depth:  node.Depth,
			Offset: offset,
			X:      offset / scale * width,
			Y:      float64(node.Depth) * fls.options.RowHeight,
			Width:  node.Span.Duration / scale * width,
			Height: fls.options.BarHeight,
			Style:  StyleFor(node.Span),
		})
		cursor := node.Span.StartTime
		for _, child := range node.Children {
			place(child, cursor)
			cursor += child.Span.Duration
		}
	}
	for _, root := range forest.Roots {
		place(root, root.Span.StartTime)
	}

	height := 0.0
	if len(nodes) > 0 {
		height = float64(maxDepth+1) * fls.options.RowHeight
	}
	return model.FlameLayout{
		Nodes:       nodes,
		Width:       width,
		Height:      height,
		MaxDepth:    maxDepth,
		MaxDuration: forest.MaxDuration,
	}
}
