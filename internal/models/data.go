package models

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

// DataPoint is a single observation on a chart
type DataPoint struct {
	Timestamp      int64    `json:"timestamp"`                 // Unix seconds
	Value          float64  `json:"value"`                     // Primary (left) axis quantity
	SecondaryValue *float64 `json:"secondary_value,omitempty"` // Optional secondary (right) axis quantity
}

// HasSecondary reports whether the point defines a secondary value
func (p DataPoint) HasSecondary() bool {
	return p.SecondaryValue != nil
}

// Time returns the point timestamp as a UTC time
func (p DataPoint) Time() time.Time {
	return time.Unix(p.Timestamp, 0).UTC()
}

// Series is an ordered collection of data points feeding one chart
type Series []DataPoint

// Sorted returns a copy of the series ordered by ascending timestamp.
// The sort is stable and the receiver is left untouched.
func (s Series) Sorted() Series {
	out := make(Series, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// HasSecondary reports whether any point carries a secondary value
func (s Series) HasSecondary() bool {
	return lo.SomeBy(s, func(p DataPoint) bool { return p.HasSecondary() })
}

// Values returns the primary values in series order
func (s Series) Values() []float64 {
	return lo.Map(s, func(p DataPoint, _ int) float64 { return p.Value })
}

// SecondaryValues returns the defined secondary values in series order
func (s Series) SecondaryValues() []float64 {
	return lo.FilterMap(s, func(p DataPoint, _ int) (float64, bool) {
		if p.SecondaryValue == nil {
			return 0, false
		}
		return *p.SecondaryValue, true
	})
}

// Latest returns the point with the greatest timestamp
func (s Series) Latest() (DataPoint, bool) {
	if len(s) == 0 {
		return DataPoint{}, false
	}
	sorted := s.Sorted()
	return sorted[len(sorted)-1], true
}

// Float returns a pointer to v, for building optional secondary values
func Float(v float64) *float64 {
	return &v
}
