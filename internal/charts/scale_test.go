package charts

import (
	"math"
	"testing"
)

func TestComputeScale(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Scale
	}{
		{"empty", nil, Scale{}},
		{"rounds up to step", []float64{0, 3.2, 7.5}, Scale{Min: 0, NiceMax: 8, Range: 8}},
		{"exact multiple", []float64{100, 250}, Scale{Min: 0, NiceMax: 250, Range: 250}},
		{"sub unity", []float64{0.2, 0.7}, Scale{Min: 0, NiceMax: 1, Range: 1}},
		{"all zero", []float64{0, 0, 0}, Scale{Min: 0, NiceMax: 0, Range: 0}},
		{"negative minimum", []float64{-3, 4}, Scale{Min: -3, NiceMax: 4, Range: 7}},
		{"all negative", []float64{-5, -2}, Scale{Min: -5, NiceMax: -2, Range: 3}},
		{"negative fraction", []float64{-3, -0.5}, Scale{Min: -3, NiceMax: 0, Range: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScale(tt.values)
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
			if got.NiceMax == 0 && math.Signbit(got.NiceMax) {
				t.Errorf("Expected non-negative zero nice max, got %v", got.NiceMax)
			}
		})
	}
}

func TestComputeScaleContainsValues(t *testing.T) {
	inputs := [][]float64{
		{1, 2, 3},
		{0.01},
		{17, 4, 999},
		{-12, 0.5, 44.4},
		{1e6, 2.5e6},
	}

	for _, values := range inputs {
		s := ComputeScale(values)
		for _, v := range values {
			if v < s.Min || v > s.NiceMax {
				t.Errorf("Value %v outside scale %+v", v, s)
			}
		}
		if s.Min > 0 {
			t.Errorf("Expected scale to include zero, got min %v", s.Min)
		}
		if s.NiceMax > 0 && s.NiceMax < 1 {
			t.Errorf("Expected nice max of at least 1, got %v", s.NiceMax)
		}
	}
}

func TestScaleNormalize(t *testing.T) {
	s := ComputeScale([]float64{0, 3.2, 7.5})
	if got := s.Normalize(0); got != 0 {
		t.Errorf("Expected 0 at the bottom, got %v", got)
	}
	if got := s.Normalize(8); got != 1 {
		t.Errorf("Expected 1 at the top, got %v", got)
	}
	if got := s.Normalize(2); got != 0.25 {
		t.Errorf("Expected 0.25, got %v", got)
	}

	flat := ComputeScale([]float64{0, 0})
	if got := flat.Normalize(0); got != 0.5 {
		t.Errorf("Expected a flat scale to normalize to 0.5, got %v", got)
	}
}

func TestScaleIsZero(t *testing.T) {
	if !ComputeScale(nil).IsZero() {
		t.Error("Expected the empty scale to be zero")
	}
	if ComputeScale([]float64{1}).IsZero() {
		t.Error("Expected a populated scale not to be zero")
	}
}
