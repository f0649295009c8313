package charts

import (
	"math"

	"github.com/samber/lo"
)

// targetIntervals is the number of axis intervals the nice rounding aims for
const targetIntervals = 5

// Scale is the derived value domain of one axis
type Scale struct {
	Min     float64 `json:"min"`
	NiceMax float64 `json:"nice_max"`
	Range   float64 `json:"range"`
}

// ComputeScale derives the axis domain for values.
//
// The domain always includes zero. The top is rounded up to a multiple of
// max(1, ceil(max/5)), so sub-unity series get an axis of at least 1.
func ComputeScale(values []float64) Scale {
	if len(values) == 0 {
		return Scale{}
	}

	minValue := math.Min(lo.Min(values), 0)
	maxValue := lo.Max(values)

	step := niceStep(maxValue)
	niceMax := math.Ceil(maxValue/step) * step
	if niceMax == 0 {
		niceMax = 0 // drop negative zero from all-negative series
	}

	return Scale{
		Min:     minValue,
		NiceMax: niceMax,
		Range:   niceMax - minValue,
	}
}

// niceStep is the rounding step for an axis whose largest value is max
func niceStep(max float64) float64 {
	return math.Max(1, math.Ceil(max/targetIntervals))
}

// Normalize maps v into [0,1] across the domain. A flat domain puts every
// value on the mid line.
func (s Scale) Normalize(v float64) float64 {
	if s.Range == 0 {
		return 0.5
	}
	return (v - s.Min) / s.Range
}

// IsZero reports whether the scale is the empty-series domain
func (s Scale) IsZero() bool {
	return s == Scale{}
}
