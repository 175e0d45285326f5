package stream

// Untyped erases the element type, handy for feeding heterogeneous sinks.
func (s Stream[T]) Untyped() Stream[any] {
	return Map(s, func(v T) any {
		return v
	})
}
