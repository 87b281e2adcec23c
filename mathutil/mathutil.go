// Package mathutil provides power-of-two helpers over any integer type.
package mathutil

import "golang.org/x/exp/constraints"

// IsPow2 reports whether n is a positive power of two.
func IsPow2[T constraints.Integer](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPow2 rounds n up to the next positive power of two. Values of zero or
// less round up to 1; powers of two map to themselves.
func NextPow2[T constraints.Integer](n T) T {
	if n <= 0 {
		return 1
	}
	if IsPow2(n) {
		return n
	}
	for n&(n-1) != 0 {
		n &= n - 1
	}
	return n << 1
}
