package service

// Predicate decides whether a single item is kept.
type Predicate[T any] func(item T) bool

// Apply keeps the items accepted by every predicate, preserving their order. It never modifies
// the input slice.
func Apply[T any](items []T, predicates ...Predicate[T]) []T {
	res := make([]T, 0, len(items))
	for _, item := range items {
		if acceptsAll(item, predicates) {
			res = append(res, item)
		}
	}
	return res
}

func acceptsAll[T any](item T, predicates []Predicate[T]) bool {
	for _, predicate := range predicates {
		if !predicate(item) {
			return false
		}
	}
	return true
}
