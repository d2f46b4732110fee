// Package core provides fundamental types and utilities shared by the glider
// simulation and its hosts. It contains no external dependencies (especially
// no Bubble Tea) to keep simulation logic pure and testable.
package core

import "cmp"

// Clamp restricts v to [lo, hi]. When lo > hi the result is lo.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
