package handler

// SelectionDTO represents the current selection
// @swagger:model SelectionDTO
type SelectionDTO struct {
	Request    *RequestSummaryDTO `json:"request"`
	Span       *SpanSummaryDTO    `json:"span"`
	DrawerOpen bool               `json:"drawer_open"`
}

// SelectRequestDTO selects a request, or closes the drawer when the id is null
// @swagger:model SelectRequestDTO
type SelectRequestDTO struct {
	RequestId *string `json:"request_id"`
}

// SelectSpanDTO selects a span of the selected request, or clears the span when the id is null
// @swagger:model SelectSpanDTO
type SelectSpanDTO struct {
	SpanId *string `json:"span_id"`
}

// SelectionEventDTO is a message pushed to selection stream clients
// @swagger:model SelectionEventDTO
type SelectionEventDTO struct {
	// One of request, span, drawer or flowchart
	Type       string                `json:"type"`
	Request    *RequestSummaryDTO    `json:"request,omitempty"`
	Span       *SpanSummaryDTO       `json:"span,omitempty"`
	DrawerOpen *bool                 `json:"drawer_open,omitempty"`
	Flowchart  *FlowchartResponseDTO `json:"flowchart,omitempty"`
}

// ResizeMessageDTO is sent by selection stream clients when their flowchart canvas changes size
// @swagger:model ResizeMessageDTO
type ResizeMessageDTO struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
