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
		{"quarter", math.Pi / 2, math.Pi / 2},
		{"wraps positive", 3 * math.Pi / 2, -math.Pi / 2},
		{"wraps negative", -3 * math.Pi / 2, math.Pi / 2},
		{"full turns", 4*math.Pi + 0.25, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngle(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got < -math.Pi || got > math.Pi {
				t.Errorf("NormalizeAngle(%v) = %v outside [-pi, pi]", tt.in, got)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := ClampInt(-3, 0, 10); got != 0 {
		t.Errorf("ClampInt low = %d", got)
	}
	if got := ClampInt(42, 0, 10); got != 10 {
		t.Errorf("ClampInt high = %d", got)
	}
	if got := ClampFloat(0.5, 0, 1); got != 0.5 {
		t.Errorf("ClampFloat mid = %v", got)
	}
	if got := ClampByte(300); got != 255 {
		t.Errorf("ClampByte(300) = %d", got)
	}
	if got := ClampByte(-1); got != 0 {
		t.Errorf("ClampByte(-1) = %d", got)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Errorf("Lerp = %v, want 15", got)
	}
}
