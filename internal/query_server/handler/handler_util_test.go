package handler

import (
	layoutModel "github.com/Avi18971911/Lens/pkg/layout/model"
	traceModel "github.com/Avi18971911/Lens/pkg/trace/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"net/http/httptest"
	"testing"
)

func TestDecodeViewport(t *testing.T) {
	t.Run("should decode width and height", func(t *testing.T) {
		params, err := decodeViewport(httptest.NewRequest("GET", "/?width=640.5&height=480&other=1", nil))
		require.NoError(t, err)
		assert.Equal(t, ViewportParams{Width: 640.5, Height: 480}, params)
	})

	t.Run("should leave missing sizes at zero", func(t *testing.T) {
		params, err := decodeViewport(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, ViewportParams{}, params)
	})

	t.Run("should reject negative sizes", func(t *testing.T) {
		_, err := decodeViewport(httptest.NewRequest("GET", "/?height=-20", nil))
		assert.ErrorIs(t, err, ErrNegativeViewport)
	})

	t.Run("should reject sizes that are not finite", func(t *testing.T) {
		for _, query := range []string{"width=NaN", "width=Inf", "height=-Inf", "width=640&height=nan"} {
			_, err := decodeViewport(httptest.NewRequest("GET", "/?"+query, nil))
			assert.ErrorIs(t, err, ErrInvalidViewport, query)
		}
	})
}

func TestValidateViewport(t *testing.T) {
	t.Run("should accept zero and positive sizes", func(t *testing.T) {
		assert.NoError(t, validateViewport(0, 0))
		assert.NoError(t, validateViewport(1024, 768))
	})

	t.Run("should reject negative and non finite sizes", func(t *testing.T) {
		assert.ErrorIs(t, validateViewport(-1, 0), ErrNegativeViewport)
		assert.ErrorIs(t, validateViewport(math.NaN(), 0), ErrInvalidViewport)
		assert.ErrorIs(t, validateViewport(0, math.Inf(1)), ErrInvalidViewport)
	})
}

func TestToFlowchartResponseDTO(t *testing.T) {
	t.Run("should flatten connector control points in drawing order", func(t *testing.T) {
		path := layoutModel.CurvePath{
			Start:    layoutModel.Point{X: 600, Y: 280},
			Control1: layoutModel.Point{X: 600, Y: 340},
			Control2: layoutModel.Point{X: 300, Y: 340},
			End:      layoutModel.Point{X: 300, Y: 400},
		}
		res := toFlowchartResponseDTO(layoutModel.FlowLayout{
			Nodes: []layoutModel.FlowNode{
				{Span: traceModel.Span{Id: "span-1"}, X: 510, Y: 200, Width: 180, Height: 80},
			},
			Connections: []layoutModel.FlowConnection{
				{FromSpanId: "span-1", ToSpanId: "span-2", Path: path},
			},
			Width:  1200,
			Height: 600,
		})
		require.Len(t, res.Nodes, 1)
		assert.Equal(t, BoxDTO{X: 510, Y: 200, Width: 180, Height: 80}, res.Nodes[0].Box)
		require.Len(t, res.Connections, 1)
		assert.Equal(t, []PointDTO{{600, 280}, {600, 340}, {300, 340}, {300, 400}}, res.Connections[0].Points)
		assert.Equal(t, "M 600 280 C 600 340, 300 340, 300 400", res.Connections[0].Svg)
	})
}
