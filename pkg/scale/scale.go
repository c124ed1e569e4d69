// Package scale rescales raw numeric arrays into bounded ranges for
// visual encoding (node sizes, edge widths).
package scale

import (
	"github.com/matzehuels/netplot/pkg/errors"
)

// Rescale maps values linearly onto [lo, hi]:
//
//	scaled[i] = (hi-lo) * (x[i]-min) / (max-min) + lo
//
// Returns an INVALID_INPUT error when lo >= hi or values is empty, and a
// DEGENERATE_RANGE error when all values are equal, since the formula
// would divide by zero and propagate NaN into rendered output. Callers
// that want a defined fallback for uniform inputs can catch that code and
// substitute a constant (see Midpoint).
func Rescale(values []float64, lo, hi float64) ([]float64, error) {
	if lo >= hi {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid target range [%v, %v]", lo, hi)
	}
	if len(values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot rescale an empty array")
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return nil, errors.New(errors.ErrCodeDegenerateRange,
			"all %d values equal %v; range is degenerate", len(values), min)
	}

	scaled := make([]float64, len(values))
	span := (hi - lo) / (max - min)
	for i, v := range values {
		scaled[i] = (v-min)*span + lo
	}
	return scaled, nil
}

// Midpoint returns the defined constant fallback for a degenerate input:
// the middle of the target range.
func Midpoint(lo, hi float64) float64 {
	return lo + (hi-lo)/2
}
