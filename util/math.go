package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Max returns the largest of items, or the zero value when there are none.
func Max[T constraints.Ordered](items ...T) T {
	var best T
	for i, item := range items {
		if i == 0 || item > best {
			best = item
		}
	}
	return best
}

// Min returns the smallest of items, or the zero value when there are none.
func Min[T constraints.Ordered](items ...T) T {
	var best T
	for i, item := range items {
		if i == 0 || item < best {
			best = item
		}
	}
	return best
}

// Clamp bounds value to [low, high].
func Clamp[T constraints.Ordered](value, low, high T) T {
	return Min(Max(value, low), high)
}

// RoundTo rounds value to places decimals.
func RoundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
