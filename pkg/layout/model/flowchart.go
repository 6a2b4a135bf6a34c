package model

import (
	"fmt"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
)

type FlowLayout struct {
	Nodes       []FlowNode       `json:"nodes"`
	Connections []FlowConnection `json:"connections"`
	Levels      []FlowLevel      `json:"levels"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
}

type FlowNode struct {
	Span   traceModel.Span `json:"span"`
	Level  int             `json:"level"`
	Index  int             `json:"index"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Style  Style           `json:"style"`
}

type FlowLevel struct {
	Depth   int     `json:"depth"`
	Y       float64 `json:"y"`
	Count   int     `json:"count"`
	Spacing float64 `json:"spacing"`
}

type FlowConnection struct {
	FromSpanId string    `json:"from_span_id"`
	ToSpanId   string    `json:"to_span_id"`
	Path       CurvePath `json:"path"`
}

// CurvePath is a cubic Bézier segment.
type CurvePath struct {
	Start    Point `json:"start"`
	Control1 Point `json:"control1"`
	Control2 Point `json:"control2"`
	End      Point `json:"end"`
}

// SVG renders the curve as an SVG path.
func (c CurvePath) SVG() string {
	return fmt.Sprintf(
		"M %g %g C %g %g, %g %g, %g %g",
		c.Start.X, c.Start.Y,
		c.Control1.X, c.Control1.Y,
		c.Control2.X, c.Control2.Y,
		c.End.X, c.End.Y,
	)
}
