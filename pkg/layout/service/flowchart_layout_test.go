package service

import (
	"github.com/Avi18971911/Lens/pkg/layout/model"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestFlowchartLayout(t *testing.T) {
	fls := NewFlowchartLayoutService(DefaultFlowchartOptions())

	t.Run("should fill the canvas width exactly on every level", func(t *testing.T) {
		for _, width := range []float64{1200, 640, 300} {
			layout := fls.Layout(forestOf(
				span("A", "", 0, 100),
				span("B", "A", 0, 10),
				span("C", "A", 10, 10),
				span("D", "A", 20, 10),
				span("E", "B", 0, 5),
			), width, 0)
			for _, level := range layout.Levels {
				total := float64(level.Count)*180 + float64(level.Count+1)*level.Spacing
				assert.InDelta(t, width, total, 1e-9)
			}
		}
	})

	t.Run("should place levels at even fractions of the canvas height", func(t *testing.T) {
		layout := fls.Layout(forestOf(
			span("A", "", 0, 100),
			span("B", "A", 0, 10),
			span("C", "B", 0, 5),
		), 0, 0)
		require.Len(t, layout.Levels, 3)
		assert.Equal(t, 150.0, layout.Levels[0].Y)
		assert.Equal(t, 300.0, layout.Levels[1].Y)
		assert.Equal(t, 450.0, layout.Levels[2].Y)
		nodes := flowById(layout)
		assert.Equal(t, 510.0, nodes["A"].X)
		assert.Equal(t, 510.0, nodes["C"].X)
	})

	t.Run("should keep input order within a level", func(t *testing.T) {
		layout := fls.Layout(forestOf(
			span("R", "", 0, 100),
			span("A", "R", 0, 10),
			span("B", "R", 0, 10),
			span("B1", "B", 0, 5),
			span("A1", "A", 0, 5),
		), 0, 0)
		nodes := flowById(layout)
		assert.Equal(t, 0, nodes["B1"].Index)
		assert.Equal(t, 1, nodes["A1"].Index)
		assert.True(t, nodes["B1"].X < nodes["A1"].X)
	})

	t.Run("should connect parents to children with an S curve", func(t *testing.T) {
		layout := fls.Layout(forestOf(
			span("A", "", 0, 100),
			span("B", "A", 0, 10),
			span("C", "A", 10, 10),
		), 0, 0)
		require.Len(t, layout.Connections, 2)
		nodes := flowById(layout)
		for _, connection := range layout.Connections {
			assert.Equal(t, "A", connection.FromSpanId)
			child := nodes[connection.ToSpanId]
			path := connection.Path
			assert.Equal(t, model.Point{X: 600, Y: 280}, path.Start)
			assert.Equal(t, model.Point{X: child.X + 90, Y: 400}, path.End)
			assert.Equal(t, model.Point{X: 600, Y: 340}, path.Control1)
			assert.Equal(t, model.Point{X: child.X + 90, Y: 340}, path.Control2)
		}
		assert.Equal(t, "M 600 280 C 600 340, 600 340, 600 400", model.CurvePath{
			Start:    model.Point{X: 600, Y: 280},
			Control1: model.Point{X: 600, Y: 340},
			Control2: model.Point{X: 600, Y: 340},
			End:      model.Point{X: 600, Y: 400},
		}.SVG())
	})

	t.Run("should allow negative spacing when a level overflows", func(t *testing.T) {
		spans := []traceModel.Span{span("R", "", 0, 100)}
		for _, id := range []string{"a", "b", "c", "d"} {
			spans = append(spans, span(id, "R", 0, 10))
		}
		layout := fls.Layout(forestOf(spans...), 400, 0)
		assert.True(t, layout.Levels[1].Spacing < 0)
		assert.InDelta(t, 400, 4*180+5*layout.Levels[1].Spacing, 1e-9)
	})

	t.Run("should return empty collections for an empty trace", func(t *testing.T) {
		layout := fls.Layout(forestOf(), 0, 0)
		assert.NotNil(t, layout.Nodes)
		assert.Empty(t, layout.Nodes)
		assert.Empty(t, layout.Connections)
		assert.Empty(t, layout.Levels)
		assert.Equal(t, 1200.0, layout.Width)
	})
}

func flowById(layout model.FlowLayout) map[string]model.FlowNode {
	res := make(map[string]model.FlowNode, len(layout.Nodes))
	for _, node := range layout.Nodes {
		res[node.Span.Id] = node
	}
	return res
}
