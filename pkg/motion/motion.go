// Package motion judges whether a tag is moving from a single accelerometer sample.
package motion

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mlsorensen/blemotion/pkg/frames/accel"
)

// Threshold is the population variance across the three axes, in raw
// accelerometer units squared, above which a sample counts as moving.
const Threshold = 50.0

// Label is the outcome of classifying a sample.
type Label uint8

const (
	Stationary Label = iota
	Moving
	Error // classification could not be made; callers warn and carry on
)

func (l Label) String() string {
	switch l {
	case Stationary:
		return "Stationary"
	case Moving:
		return "Moving"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Unknown Label (%d)", l)
	}
}

// Variance returns the population variance (divided by N, not N-1) of values.
// It reports false for empty input or a non-finite result.
func Variance(values []float64) (v float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	defer func() {
		if r := recover(); r != nil {
			v, ok = 0, false
		}
	}()

	v = stat.PopVariance(values, nil)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ClassifyValues labels an arbitrary set of axis values.
func ClassifyValues(values []float64) Label {
	v, ok := Variance(values)
	if !ok {
		return Error
	}
	if v > Threshold {
		return Moving
	}
	return Stationary
}

// Classify labels a decoded accelerometer sample.
func Classify(s accel.Sample) Label {
	return ClassifyValues(s.Values())
}
