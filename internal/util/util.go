package util

func Zero[T any]() T {
	var zero T
	return zero
}

func Identity[T any]() func(v T) T {
	return func(v T) T {
		return v
	}
}

func Pointer[T any](v T) *T {
	return &v
}
