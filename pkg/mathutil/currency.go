// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/prequal/pkg/constants"
)

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// NonNegative returns val when it is a finite, non-negative number and 0
// otherwise. NaN, ±Inf and negatives all collapse to 0.
func NonNegative(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) || val < 0 {
		return 0
	}
	return val
}

// FiniteRatio bounds a percentage to [0, constants.MaxRatio]. NaN and +Inf
// map to the cap so an overflowing ratio still fails every gate.
func FiniteRatio(val float64) float64 {
	switch {
	case math.IsNaN(val), val > constants.MaxRatio:
		return constants.MaxRatio
	case val < 0:
		return 0
	}
	return val
}

// Saturate replaces +Inf with the largest finite float64 and NaN with 0.
func Saturate(val float64) float64 {
	switch {
	case math.IsNaN(val):
		return 0
	case math.IsInf(val, 1):
		return math.MaxFloat64
	case math.IsInf(val, -1):
		return -math.MaxFloat64
	}
	return val
}
