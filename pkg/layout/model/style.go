package model

// Style tells the rendering surface how to paint a span.
type Style struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
