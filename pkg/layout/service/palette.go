package service

import (
	"github.com/Avi18971911/Lens/pkg/layout/model"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
)

const (
	errorColor      = "#f93e3e"
	warningColor    = "#fca130"
	processingColor = "#61affe"
	defaultColor    = "#326ce5"
	defaultIcon     = "☸️"
)

var typeColors = map[traceModel.SpanType]string{
	traceModel.ClientSpan:   "#61affe",
	traceModel.ServerSpan:   "#49cc90",
	traceModel.DatabaseSpan: "#764ba2",
	traceModel.CacheSpan:    "#fca130",
	traceModel.QueueSpan:    "#50e3c2",
}

var typeIcons = map[traceModel.SpanType]string{
	traceModel.ClientSpan:   "🌐",
	traceModel.ServerSpan:   "⚙️",
	traceModel.DatabaseSpan: "💾",
	traceModel.CacheSpan:    "⚡",
	traceModel.QueueSpan:    "📬",
}

// StyleFor picks the color by status first and falls back to the span type. Used by the flame graph
// and the flowchart.
func StyleFor(span traceModel.Span) model.Style {
	if span.Status == traceModel.SpanProcessing {
		return model.Style{Color: processingColor, Icon: TypeIcon(span.Type)}
	}
	return TimelineStyleFor(span)
}

// TimelineStyleFor only highlights errors and warnings. Processing spans keep their type color.
func TimelineStyleFor(span traceModel.Span) model.Style {
	var color string
	switch span.Status {
	case traceModel.SpanError:
		color = errorColor
	case traceModel.SpanWarning:
		color = warningColor
	default:
		color = TypeColor(span.Type)
	}
	return model.Style{
		Color: color,
		Icon:  TypeIcon(span.Type),
	}
}

func TypeColor(spanType traceModel.SpanType) string {
	if color, ok := typeColors[spanType]; ok {
		return color
	}
	return defaultColor
}

func TypeIcon(spanType traceModel.SpanType) string {
	if icon, ok := typeIcons[spanType]; ok {
		return icon
	}
	return defaultIcon
}
