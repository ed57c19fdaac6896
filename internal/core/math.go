// Package core provides fundamental types and utilities for the arcade platform.
// It contains no terminal or windowing dependencies to keep game logic pure
// and testable.
package core

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
