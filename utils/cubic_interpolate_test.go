// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
		tolerance      float32
	}{
		{"x=0 returns y1", 0, 1, 2, 3, 0, 1, 1e-6},
		{"x=1 returns y2", 0, 1, 2, 3, 1, 2, 1e-6},
		{"linear ramp stays linear", 1, 2, 3, 4, 0.25, 2.25, 1e-4},
		{"equal taps stay put", 0.5, 0.5, 0.5, 0.5, 0.7, 0.5, 1e-6},
		{"negative samples", -1, -2, -3, -4, 0.5, -2.5, 1e-4},
		{"midpoint of a peak overshoots the mean", 0, 1, 1, 0, 0.5, 1.125, 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if float32(math.Abs(float64(got-tt.want))) > tt.tolerance {
				t.Errorf("CubicInterpolate(%v, %v, %v, %v, %v) = %v, want %v",
					tt.y0, tt.y1, tt.y2, tt.y3, tt.x, got, tt.want)
			}
		})
	}
}

// A sine sampled coarsely and interpolated at midpoints should land near the
// true curve. This is the case the resampler leans on.
func TestCubicInterpolate_TracksSine(t *testing.T) {
	t.Parallel()

	sample := func(i int) float32 {
		return float32(math.Sin(2 * math.Pi * float64(i) / 16))
	}

	for i := 1; i < 12; i++ {
		got := CubicInterpolate(sample(i-1), sample(i), sample(i+1), sample(i+2), 0.5)
		want := float32(math.Sin(2 * math.Pi * (float64(i) + 0.5) / 16))
		if math.Abs(float64(got-want)) > 0.01 {
			t.Errorf("midpoint after sample %d = %v, want %v", i, got, want)
		}
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink = CubicInterpolate(0.1, 0.3, 0.5, 0.2, 0.42)
	}
	_ = sink
}
