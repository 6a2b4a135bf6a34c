package model

import traceModel "github.com/Avi18971911/Lens/pkg/trace/model"

type FlameLayout struct {
	Nodes       []FlameNode `json:"nodes"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	MaxDepth    int         `json:"max_depth"`
	MaxDuration float64     `json:"max_duration"`
}

type FlameNode struct {
	Span  traceModel.Span `json:"span"`
	Depth int             `json:"depth"`
	// Offset in milliseconds at which the node is drawn, differs from the span start for children
	Offset float64 `json:"offset"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Style  Style   `json:"style"`
}
