package handler

import (
	layoutModel "github.com/Avi18971911/Lens/pkg/layout/model"
)

func toTimelineResponseDTO(layout layoutModel.TimelineLayout) TimelineResponseDTO {
	nodes := make([]TimelineNodeDTO, len(layout.Nodes))
	for i, node := range layout.Nodes {
		nodes[i] = TimelineNodeDTO{
			Span:    toSpanSummaryDTO(node.Span),
			Depth:   node.Depth,
			Row:     node.Row,
			RowSpan: node.RowSpan,
			Box:     BoxDTO{X: node.X, Y: node.Y, Width: node.Width, Height: node.Height},
			Style:   toStyleDTO(node.Style),
		}
	}
	ticks := make([]TickDTO, len(layout.Ticks))
	for i, tick := range layout.Ticks {
		ticks[i] = TickDTO{Percent: tick.Percent, Offset: tick.Offset, X: tick.X}
	}
	return TimelineResponseDTO{
		Nodes:       nodes,
		Ticks:       ticks,
		Width:       layout.Width,
		Height:      layout.Height,
		MaxDuration: layout.MaxDuration,
	}
}

func toFlamegraphResponseDTO(layout layoutModel.FlameLayout) FlamegraphResponseDTO {
	nodes := make([]FlameNodeDTO, len(layout.Nodes))
	for i, node := range layout.Nodes {
		nodes[i] = FlameNodeDTO{
			Span:   toSpanSummaryDTO(node.Span),
			Depth:  node.Depth,
			Offset: node.Offset,
			Box:    BoxDTO{X: node.X, Y: node.Y, Width: node.Width, Height: node.Height},
			Style:  toStyleDTO(node.Style),
		}
	}
	return FlamegraphResponseDTO{
		Nodes:       nodes,
		Width:       layout.Width,
		Height:      layout.Height,
		MaxDepth:    layout.MaxDepth,
		MaxDuration: layout.MaxDuration,
	}
}

func toFlowchartResponseDTO(layout layoutModel.FlowLayout) FlowchartResponseDTO {
	nodes := make([]FlowNodeDTO, len(layout.Nodes))
	for i, node := range layout.Nodes {
		nodes[i] = FlowNodeDTO{
			Span:  toSpanSummaryDTO(node.Span),
			Level: node.Level,
			Index: node.Index,
			Box:   BoxDTO{X: node.X, Y: node.Y, Width: node.Width, Height: node.Height},
			Style: toStyleDTO(node.Style),
		}
	}
	connections := make([]FlowConnectionDTO, len(layout.Connections))
	for i, connection := range layout.Connections {
		path := connection.Path
		connections[i] = FlowConnectionDTO{
			FromSpanId: connection.FromSpanId,
			ToSpanId:   connection.ToSpanId,
			Points: []PointDTO{
				toPointDTO(path.Start),
				toPointDTO(path.Control1),
				toPointDTO(path.Control2),
				toPointDTO(path.End),
			},
			Svg: path.SVG(),
		}
	}
	return FlowchartResponseDTO{
		Nodes:       nodes,
		Connections: connections,
		Width:       layout.Width,
		Height:      layout.Height,
	}
}

func toStyleDTO(style layoutModel.Style) StyleDTO {
	return StyleDTO{Color: style.Color, Icon: style.Icon}
}

func toPointDTO(point layoutModel.Point) PointDTO {
	return PointDTO{X: point.X, Y: point.Y}
}
