package mathutil

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"pi stays", math.Pi, math.Pi},
		{"minus pi flips", -math.Pi, math.Pi},
		{"full turn", 2 * math.Pi, 0},
		{"three halves", 1.5 * math.Pi, -0.5 * math.Pi},
		{"negative three halves", -1.5 * math.Pi, 0.5 * math.Pi},
		{"nan", math.NaN(), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeAngle(tc.in)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tc.in, got, tc.want)
			}
			if got <= -math.Pi || got > math.Pi {
				t.Errorf("NormalizeAngle(%v) = %v, outside (-pi, pi]", tc.in, got)
			}
		})
	}
}

func TestFract(t *testing.T) {
	if got := Fract(2.25); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Fract(2.25) = %v", got)
	}
	if got := Fract(-0.25); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Fract(-0.25) = %v", got)
	}
	if got := Fract(3); got != 0 {
		t.Errorf("Fract(3) = %v", got)
	}
}

func TestClampHelpers(t *testing.T) {
	if Clamp(math.NaN(), 0, 1) != 0 {
		t.Error("NaN should clamp to lower bound")
	}
	if Clamp(5, 0, 1) != 1 {
		t.Error("Clamp should saturate at upper bound")
	}
	if ClampByte(300) != 255 || ClampByte(-4) != 0 || ClampByte(12.7) != 12 {
		t.Error("ClampByte saturation mismatch")
	}
	if ClampInt(-3, 0, 9) != 0 || ClampInt(12, 0, 9) != 9 || ClampInt(4, 0, 9) != 4 {
		t.Error("ClampInt mismatch")
	}
	if IntAbs(-7) != 7 || IntSign(-7) != -1 || IntSign(0) != 0 {
		t.Error("int helpers mismatch")
	}
}
