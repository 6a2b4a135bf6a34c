package handler

// TimelineResponseDTO represents the timeline of a request
// @swagger:model TimelineResponseDTO
type TimelineResponseDTO struct {
	Nodes       []TimelineNodeDTO `json:"nodes"`
	Ticks       []TickDTO         `json:"ticks"`
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	MaxDuration float64           `json:"max_duration"`
}

// TimelineNodeDTO represents one bar of a timeline
// @swagger:model TimelineNodeDTO
type TimelineNodeDTO struct {
	Span    SpanSummaryDTO `json:"span"`
	Depth   int            `json:"depth"`
	Row     int            `json:"row"`
	RowSpan int            `json:"row_span"`
	Box     BoxDTO         `json:"box"`
	Style   StyleDTO       `json:"style"`
}

// TickDTO represents a marker of the time axis
// @swagger:model TickDTO
type TickDTO struct {
	Percent float64 `json:"percent"`
	Offset  float64 `json:"offset"`
	X       float64 `json:"x"`
}

// FlamegraphResponseDTO represents the flame graph of a request
// @swagger:model FlamegraphResponseDTO
type FlamegraphResponseDTO struct {
	Nodes       []FlameNodeDTO `json:"nodes"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	MaxDepth    int            `json:"max_depth"`
	MaxDuration float64        `json:"max_duration"`
}

// @swagger:model FlameNodeDTO
type FlameNodeDTO struct {
	Span   SpanSummaryDTO `json:"span"`
	Depth  int            `json:"depth"`
	Offset float64        `json:"offset"`
	Box    BoxDTO         `json:"box"`
	Style  StyleDTO       `json:"style"`
}

// FlowchartResponseDTO represents the flowchart of a request
// @swagger:model FlowchartResponseDTO
type FlowchartResponseDTO struct {
	Nodes       []FlowNodeDTO       `json:"nodes"`
	Connections []FlowConnectionDTO `json:"connections"`
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
}

// @swagger:model FlowNodeDTO
type FlowNodeDTO struct {
	Span  SpanSummaryDTO `json:"span"`
	Level int            `json:"level"`
	Index int            `json:"index"`
	Box   BoxDTO         `json:"box"`
	Style StyleDTO       `json:"style"`
}

// FlowConnectionDTO represents the connector drawn from a parent to one of its children
// @swagger:model FlowConnectionDTO
type FlowConnectionDTO struct {
	FromSpanId string `json:"from_span_id"`
	ToSpanId   string `json:"to_span_id"`
	// Cubic Bézier control points: start, control1, control2, end
	Points []PointDTO `json:"points"`
	// The same curve as an SVG path
	Svg string `json:"svg"`
}

type BoxDTO struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PointDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type StyleDTO struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}
