package vmath

import (
	"math"
	"testing"
)

func TestV3FBasicOps(t *testing.T) {
	a := V3F(1, 2, 3)
	b := V3F(4, -5, 6)

	if got := V3FAdd(a, b); got != V3F(5, -3, 9) {
		t.Errorf("V3FAdd = %v", got)
	}
	if got := V3FSub(a, b); got != V3F(-3, 7, -3) {
		t.Errorf("V3FSub = %v", got)
	}
	if got := V3FScale(a, 2); got != V3F(2, 4, 6) {
		t.Errorf("V3FScale = %v", got)
	}
	if got := V3FAddScaled(a, b, 0.5); got != V3F(3, -0.5, 6) {
		t.Errorf("V3FAddScaled = %v", got)
	}
	if got := V3FDot(a, b); got != 4-10+18 {
		t.Errorf("V3FDot = %v", got)
	}
}

func TestV3FCrossOrthogonal(t *testing.T) {
	x := V3F(1, 0, 0)
	y := V3F(0, 1, 0)
	if got := V3FCross(x, y); got != V3F(0, 0, 1) {
		t.Errorf("x cross y = %v, want +Z", got)
	}
}

func TestV3FDistance(t *testing.T) {
	a := V3F(0, 0, 0)
	b := V3F(3, 4, 12)
	if got := V3FDist(a, b); got != 13 {
		t.Errorf("V3FDist = %v, want 13", got)
	}
	if got := V3FDistSq(a, b); got != 169 {
		t.Errorf("V3FDistSq = %v, want 169", got)
	}
}

func TestV3FNormalize(t *testing.T) {
	n := V3FNormalize(V3F(0, 3, 4))
	if math.Abs(V3FMag(n)-1) > 1e-12 {
		t.Errorf("normalized magnitude = %v", V3FMag(n))
	}
	if z := V3FNormalize(Vec3F{}); z != (Vec3F{}) {
		t.Errorf("zero vector normalize = %v, want zero", z)
	}
}

func TestV3FClampBox(t *testing.T) {
	lo := V3F(-1, -1, -1)
	hi := V3F(1, 1, 1)
	tests := []struct {
		in, want Vec3F
	}{
		{V3F(0, 0, 0), V3F(0, 0, 0)},
		{V3F(2, -3, 0.5), V3F(1, -1, 0.5)},
	}
	for _, tt := range tests {
		if got := V3FClampBox(tt.in, lo, hi); got != tt.want {
			t.Errorf("V3FClampBox(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestV3FRotate(t *testing.T) {
	v := V3FRotateY(V3F(1, 0, 0), math.Pi/2)
	if !V3FApproxEqual(v, V3F(0, 0, -1), 1e-12) {
		t.Errorf("RotateY(+X, 90deg) = %v", v)
	}
	v = V3FRotateX(V3F(0, 1, 0), math.Pi/2)
	if !V3FApproxEqual(v, V3F(0, 0, 1), 1e-12) {
		t.Errorf("RotateX(+Y, 90deg) = %v", v)
	}
}

func TestV3FLerp(t *testing.T) {
	got := V3FLerp(V3F(0, 0, 0), V3F(2, 4, 6), 0.5)
	if got != V3F(1, 2, 3) {
		t.Errorf("V3FLerp midpoint = %v", got)
	}
}
