package service

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestResponsiveLayout(t *testing.T) {
	t.Run("should compute lazily and only on width changes", func(t *testing.T) {
		calls := 0
		rl := NewResponsiveLayout(func(width float64, height float64) float64 {
			calls++
			return width * height
		})
		_, ok := rl.Current()
		assert.False(t, ok)

		res, recomputed := rl.Resize(100, 10)
		assert.True(t, recomputed)
		assert.Equal(t, 1000.0, res)

		res, recomputed = rl.Resize(100, 20)
		assert.False(t, recomputed)
		assert.Equal(t, 1000.0, res)

		res, recomputed = rl.Resize(200, 20)
		assert.True(t, recomputed)
		assert.Equal(t, 4000.0, res)
		assert.Equal(t, 2, calls)

		current, ok := rl.Current()
		assert.True(t, ok)
		assert.Equal(t, 4000.0, current)
	})

	t.Run("should relayout a flowchart when the viewport narrows", func(t *testing.T) {
		fls := NewFlowchartLayoutService(DefaultFlowchartOptions())
		forest := forestOf(span("A", "", 0, 10), span("B", "A", 0, 5))
		rl := NewResponsiveLayout(func(width float64, height float64) float64 {
			return fls.Layout(forest, width, height).Nodes[0].X
		})
		wide, _ := rl.Resize(1200, 600)
		narrow, _ := rl.Resize(600, 600)
		assert.Equal(t, 510.0, wide)
		assert.Equal(t, 210.0, narrow)
	})
}
