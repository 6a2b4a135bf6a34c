package model

import traceModel "github.com/Avi18971911/Lens/pkg/trace/model"

type TimelineLayout struct {
	// Nodes in pre-order of the span forest
	Nodes       []TimelineNode `json:"nodes"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	MaxDuration float64        `json:"max_duration"`
	Ticks       []Tick         `json:"ticks"`
}

type TimelineNode struct {
	Span  traceModel.Span `json:"span"`
	Depth int             `json:"depth"`
	Row   int             `json:"row"`
	// Rows occupied by the node and its descendants, starting at Row
	RowSpan int     `json:"row_span"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Style   Style   `json:"style"`
}

// LastRow is the last row covered by the node's subtree.
func (n TimelineNode) LastRow() int {
	return n.Row + n.RowSpan - 1
}

// Tick is a time axis marker.
type Tick struct {
	Percent float64 `json:"percent"`
	Offset  float64 `json:"offset"`
	X       float64 `json:"x"`
}
