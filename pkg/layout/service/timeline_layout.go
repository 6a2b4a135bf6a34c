package service

import (
	"github.com/Avi18971911/Lens/pkg/layout/model"
	traceService "github.com/Avi18971911/Lens/pkg/trace/service"
)

const tickCount = 10

type TimelineOptions struct {
	Width      float64
	RowHeight  float64
	BarHeight  float64
	TopPadding float64
}

func DefaultTimelineOptions() TimelineOptions {
	return TimelineOptions{
		Width:      800,
		RowHeight:  80,
		BarHeight:  50,
		TopPadding: 20,
	}
}

type TimelineLayoutService struct {
	options TimelineOptions
}

func NewTimelineLayoutService(options TimelineOptions) *TimelineLayoutService {
	return &TimelineLayoutService{
		options: options,
	}
}

// Layout stacks spans into rows in pre-order. Every subtree owns a contiguous block of rows, so
// sibling subtrees never share a row.
func (tls *TimelineLayoutService) Layout(forest *traceService.Forest, width float64) model.TimelineLayout {
	if width <= 0 {
		width = tls.options.Width
	}
	scale := forest.Scale()
	nodes := make([]model.TimelineNode, 0, forest.SpanCount)
	var place func(node *traceService.TreeNode, row int)
	place = func(node *traceService.TreeNode, row int) {
		rowSpan := forest.Index.DescendantCount(node.Span.Id) + 1
		nodes = append(nodes, model.TimelineNode{
			Span:    node.Span,
			Depth:   node.Depth,
			Row:     row,
			RowSpan: rowSpan,
			X:       node.Span.StartTime / scale * width,
			Y:       float64(row)*tls.options.RowHeight + tls.options.TopPadding,
			Width:   node.Span.Duration / scale * width,
			Height:  tls.options.BarHeight,
			Style:   TimelineStyleFor(node.Span),
		})
		childRow := row + 1
		for _, child := range node.Children {
			place(child, childRow)
			childRow += forest.Index.DescendantCount(child.Span.Id) + 1
		}
	}
	row := 0
	for _, root := range forest.Roots {
		place(root, row)
		row += forest.Index.DescendantCount(root.Span.Id) + 1
	}

	return model.TimelineLayout{
		Nodes:       nodes,
		Width:       width,
		Height:      float64(len(nodes)) * tls.options.RowHeight,
		MaxDuration: forest.MaxDuration,
		Ticks:       ticks(forest.MaxDuration, width),
	}
}

func ticks(maxDuration float64, width float64) []model.Tick {
	res := make([]model.Tick, 0, tickCount+1)
	for i := 0; i <= tickCount; i++ {
		fraction := float64(i) / tickCount
		res = append(res, model.Tick{
			Percent: fraction * 100,
			Offset:  fraction * maxDuration,
			X:       fraction * width,
		})
	}
	return res
}
