package service

// ResponsiveLayout keeps the last layout computed for a viewport and recomputes it only when the
// viewport width changes. Height changes alone keep the current layout.
type ResponsiveLayout[T any] struct {
	compute  func(width float64, height float64) T
	current  T
	width    float64
	computed bool
}

func NewResponsiveLayout[T any](compute func(width float64, height float64) T) *ResponsiveLayout[T] {
	return &ResponsiveLayout[T]{
		compute: compute,
	}
}

// Resize returns the layout for the viewport and whether it was recomputed.
func (rl *ResponsiveLayout[T]) Resize(width float64, height float64) (T, bool) {
	if rl.computed && width == rl.width {
		return rl.current, false
	}
	rl.current = rl.compute(width, height)
	rl.width = width
	rl.computed = true
	return rl.current, true
}

// Current returns the last computed layout and false if nothing was computed yet.
func (rl *ResponsiveLayout[T]) Current() (T, bool) {
	return rl.current, rl.computed
}
