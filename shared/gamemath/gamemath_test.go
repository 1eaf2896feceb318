package gamemath

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMoveTowardDoesNotOvershoot(t *testing.T) {
	from := V3(0, 0, 0)
	target := V3(3, 0, 4)

	got := MoveToward(from, target, 1)
	if !almostEqual(got.Length(), 1) {
		t.Errorf("step length = %v, want 1", got.Length())
	}

	got = MoveToward(from, target, 10)
	if got != target {
		t.Errorf("overshoot: got %v, want %v", got, target)
	}
}

func TestYawToward(t *testing.T) {
	tests := []struct {
		name   string
		target Vec3
		want   float64
	}{
		{"forward", V3(0, 0, 1), 0},
		{"right", V3(1, 0, 0), math.Pi / 2},
		{"back", V3(0, 0, -1), math.Pi},
		{"ignores height", V3(1, 50, 0), math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YawToward(Vec3{}, tt.target); !almostEqual(got, tt.want) {
				t.Errorf("YawToward = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSmoothTowardConverges(t *testing.T) {
	y := 0.0
	for i := 0; i < 600; i++ {
		next := SmoothToward(y, 10, 8, 1.0/60)
		if next < y || next > 10 {
			t.Fatalf("step %d: %v -> %v is not monotone toward 10", i, y, next)
		}
		y = next
	}
	if math.Abs(y-10) > 1e-6 {
		t.Errorf("after 10s y = %v, want ~10", y)
	}
	if got := SmoothToward(3, 10, 8, 0); got != 3 {
		t.Errorf("zero dt moved value to %v", got)
	}
}

func TestHitRadius(t *testing.T) {
	b := Bounds{Min: V3(-0.5, 0, -1), Max: V3(0.5, 2, 1)}
	if got := HitRadius(b, 1.5); !almostEqual(got, 1.5) {
		t.Errorf("HitRadius = %v, want 1.5", got)
	}
}

func TestRampSurfaceY(t *testing.T) {
	if got := RampSurfaceY(5, 0, 0, 0, 10, 4, 0, 2, RampAlongX); !almostEqual(got, 1) {
		t.Errorf("mid ramp = %v, want 1", got)
	}
	if got := RampSurfaceY(50, 0, 0, 0, 10, 4, 0, 2, RampAlongX); !almostEqual(got, 2) {
		t.Errorf("past ramp end = %v, want 2", got)
	}
	if got := RampSurfaceY(5, 3, 0, 0, 10, 4, 1, 9, RampNone); got != 1 {
		t.Errorf("flat patch = %v, want 1", got)
	}
}

func TestSpheresOverlapBoundary(t *testing.T) {
	if !SpheresOverlap(V3(0, 0, 0), 0.5, V3(1, 0, 0), 0.5) {
		t.Error("touching spheres should overlap")
	}
	if SpheresOverlap(V3(0, 0, 0), 0.5, V3(1.01, 0, 0), 0.5) {
		t.Error("separated spheres should not overlap")
	}
}
