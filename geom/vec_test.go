package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestDerivedFields(t *testing.T) {
	tests := []struct {
		name    string
		v       Vec2
		wantMag float64
		wantDir float64
	}{
		{"zero", Vec2{}, 0, 0},
		{"unit x", New(1, 0), 1, 0},
		{"unit y", New(0, 1), 1, math.Pi / 2},
		{"3-4-5", New(3, 4), 5, math.Atan2(4, 3)},
		{"negative x", New(-2, 0), 2, math.Pi},
		{"third quadrant", New(-1, -1), math.Sqrt2, -3 * math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Magnitude(); !near(got, tt.wantMag) {
				t.Errorf("Magnitude() = %v, want %v", got, tt.wantMag)
			}
			if got := tt.v.Direction(); !near(got, tt.wantDir) {
				t.Errorf("Direction() = %v, want %v", got, tt.wantDir)
			}
		})
	}
}

func TestFromPolar(t *testing.T) {
	v := FromPolar(math.Pi/2, 15)
	if !near(v.X, 0) || !near(v.Y, 15) {
		t.Errorf("FromPolar(pi/2, 15) = %+v, want (0, 15)", v)
	}
	if !near(v.Magnitude(), 15) {
		t.Errorf("magnitude = %v, want 15", v.Magnitude())
	}
}

func TestDiffOperandOrder(t *testing.T) {
	a := New(1, 2)
	b := New(4, 6)

	d := Diff(a, b)
	if d != New(3, 4) {
		t.Errorf("Diff(a, b) = %+v, want (3, 4)", d)
	}
	if r := Diff(b, a); r != New(-3, -4) {
		t.Errorf("Diff(b, a) = %+v, want (-3, -4)", r)
	}
	if !near(Distance(a, b), 5) || !near(Distance(b, a), 5) {
		t.Errorf("Distance should be symmetric and equal 5")
	}
}

func TestOperationsDoNotAlias(t *testing.T) {
	v := New(3, 4)
	_ = v.Add(New(1, 1))
	_ = v.Scale(10)
	_, _ = v.Normalize()
	if v != New(3, 4) {
		t.Errorf("receiver modified: %+v", v)
	}
}

func TestNormalize(t *testing.T) {
	unit, ok := New(3, 4).Normalize()
	if !ok {
		t.Fatal("expected ok for non-zero vector")
	}
	if !near(unit.Magnitude(), 1) || !near(unit.X, 0.6) || !near(unit.Y, 0.8) {
		t.Errorf("Normalize() = %+v, want (0.6, 0.8)", unit)
	}

	if _, ok := Zero.Normalize(); ok {
		t.Error("expected zero vector to fail normalization")
	}
}

func TestSetAndClampMagnitude(t *testing.T) {
	v, ok := New(3, 4).SetMagnitude(10)
	if !ok || !near(v.X, 6) || !near(v.Y, 8) {
		t.Errorf("SetMagnitude(10) = %+v, %v", v, ok)
	}
	if _, ok := Zero.SetMagnitude(5); ok {
		t.Error("expected SetMagnitude on zero vector to report !ok")
	}

	long := New(30, 40)
	if c := long.ClampMagnitude(5); !near(c.Magnitude(), 5) || !near(c.Direction(), long.Direction()) {
		t.Errorf("ClampMagnitude(5) = %+v", c)
	}
	short := New(1, 1)
	if c := short.ClampMagnitude(5); c != short {
		t.Errorf("ClampMagnitude should not change short vector, got %+v", c)
	}
	if c := Zero.ClampMagnitude(5); c != Zero {
		t.Errorf("ClampMagnitude on zero = %+v", c)
	}
}
