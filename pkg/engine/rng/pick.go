package rng

import "math"

// Choice is one weighted candidate for Weighted.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Item returns a uniformly selected element. ok is false for an empty slice.
func Item[T any](r *RNG, items []T) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}
	return items[int(math.Floor(r.GetUniform()*float64(len(items))))], true
}

// Shuffle returns a new slice holding a uniformly random permutation of items.
// It repeatedly picks one of the remaining elements and splices it out.
func Shuffle[T any](r *RNG, items []T) []T {
	rest := make([]T, len(items))
	copy(rest, items)
	result := make([]T, 0, len(items))
	for len(rest) > 0 {
		i := int(math.Floor(r.GetUniform() * float64(len(rest))))
		result = append(result, rest[i])
		rest = append(rest[:i], rest[i+1:]...)
	}
	return result
}

// Weighted treats each choice's weight as relative and returns the value whose
// cumulative interval contains the draw. If rounding pushes the draw past the
// total, the last choice is returned. ok is false for an empty slice.
func Weighted[T any](r *RNG, choices []Choice[T]) (value T, ok bool) {
	if len(choices) == 0 {
		return value, false
	}
	total := 0.0
	for _, c := range choices {
		total += c.Weight
	}
	draw := r.GetUniform() * total
	part := 0.0
	for _, c := range choices {
		part += c.Weight
		if draw < part {
			return c.Value, true
		}
	}
	return choices[len(choices)-1].Value, true
}
