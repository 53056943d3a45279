package cloth

import (
	"github.com/lixenwraith/cloth/vmath"
)

// Collider is an external rigid shape the cloth must not penetrate
// Resolve returns the corrected position and whether p was inside
type Collider interface {
	Resolve(p vmath.Vec3F) (vmath.Vec3F, bool)
}

// Sphere pushes penetrating points radially onto its surface
type Sphere struct {
	Center vmath.Vec3F
	Radius float64
}

func (s Sphere) Resolve(p vmath.Vec3F) (vmath.Vec3F, bool) {
	d := vmath.V3FSub(p, s.Center)
	distSq := vmath.V3FMagSq(d)
	if distSq >= s.Radius*s.Radius {
		return p, false
	}
	if distSq == 0 {
		// No radial direction at the exact center, exit through the top
		return vmath.V3FAdd(s.Center, vmath.Vec3F{Y: s.Radius}), true
	}
	return vmath.V3FAddScaled(s.Center, vmath.V3FNormalize(d), s.Radius), true
}

// Box is an axis-aligned box given by opposite corners
type Box struct {
	Min, Max vmath.Vec3F
}

// BoxAt builds a box from its center and full size
func BoxAt(center, size vmath.Vec3F) Box {
	half := vmath.V3FScale(size, 0.5)
	return Box{Min: vmath.V3FSub(center, half), Max: vmath.V3FAdd(center, half)}
}

// Center returns the box midpoint
func (b Box) Center() vmath.Vec3F {
	return vmath.V3FLerp(b.Min, b.Max, 0.5)
}

// Contains reports whether p lies inside or on the box
func (b Box) Contains(p vmath.Vec3F) bool {
	return vmath.V3FClampBox(p, b.Min, b.Max) == p
}

// Resolve moves an inside point onto the face of least penetration
// The face on each axis is chosen by the side of the center the point is on,
// ties prefer X, then Y, then Z
func (b Box) Resolve(p vmath.Vec3F) (vmath.Vec3F, bool) {
	if !b.Contains(p) {
		return p, false
	}
	c := b.Center()

	depthX, faceX := axisExit(p.X, c.X, b.Min.X, b.Max.X)
	depthY, faceY := axisExit(p.Y, c.Y, b.Min.Y, b.Max.Y)
	depthZ, faceZ := axisExit(p.Z, c.Z, b.Min.Z, b.Max.Z)

	switch {
	case depthX <= depthY && depthX <= depthZ:
		p.X = faceX
	case depthY <= depthZ:
		p.Y = faceY
	default:
		p.Z = faceZ
	}
	return p, true
}

// axisExit returns the distance to, and coordinate of, the face on the point's side of center
func axisExit(v, center, lo, hi float64) (depth, face float64) {
	if v >= center {
		return hi - v, hi
	}
	return v - lo, lo
}
