package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector used for all cloth state
type Vec3F struct {
	X, Y, Z float64
}

// V3F builds a vector from components
func V3F(x, y, z float64) Vec3F {
	return Vec3F{x, y, z}
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

// V3FAddScaled returns a + v*s without an intermediate vector
func V3FAddScaled(a, v Vec3F, s float64) Vec3F {
	return Vec3F{a.X + v.X*s, a.Y + v.Y*s, a.Z + v.Z*s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FCross(a, b Vec3F) Vec3F {
	return Vec3F{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDistSq returns squared distance, skips the sqrt for comparisons
func V3FDistSq(a, b Vec3F) float64 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return dx*dx + dy*dy + dz*dz
}

func V3FDist(a, b Vec3F) float64 {
	return math.Sqrt(V3FDistSq(a, b))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLerp interpolates a→b by t without clamping t
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FClampBox clamps each component into [lo, hi]
func V3FClampBox(v, lo, hi Vec3F) Vec3F {
	return Vec3F{
		math.Max(lo.X, math.Min(hi.X, v.X)),
		math.Max(lo.Y, math.Min(hi.Y, v.Y)),
		math.Max(lo.Z, math.Min(hi.Z, v.Z)),
	}
}

// V3FApproxEqual compares component-wise within eps
func V3FApproxEqual(a, b Vec3F, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// V3FRotateY rotates v around the Y axis by angle radians
func V3FRotateY(v Vec3F, angle float64) Vec3F {
	s, c := math.Sincos(angle)
	return Vec3F{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

// V3FRotateX rotates v around the X axis by angle radians
func V3FRotateX(v Vec3F, angle float64) Vec3F {
	s, c := math.Sincos(angle)
	return Vec3F{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}
