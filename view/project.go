package view

import (
	"math"

	"github.com/lixenwraith/cloth/cloth"
	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/vmath"
)

// Viewport describes the target surface
// CellAspect is cell height over width: 2 for terminals, 1 for pixels.
// Scale magnifies the world about the origin before projection.
type Viewport struct {
	Width, Height float64
	CellAspect    float64
	Scale         float64
}

func (vp Viewport) aspect() float64 {
	return vp.Width / (vp.Height * vp.CellAspect)
}

func (vp Viewport) scale() float64 {
	if vp.Scale <= 0 {
		return 1
	}
	return vp.Scale
}

// ScreenPoint is a projected position; Depth is the distance along the view axis
type ScreenPoint struct {
	X, Y  float64
	Depth float64
}

// Projector caches the camera frame for one render pass
type Projector struct {
	vp                 Viewport
	eye                vmath.Vec3F
	right, up, forward vmath.Vec3F
	focal              float64
}

// Projector snapshots the current camera state for vp
func (c *Camera) Projector(vp Viewport) Projector {
	right, up, forward := c.Basis()
	return Projector{
		vp:      vp,
		eye:     c.Eye(),
		right:   right,
		up:      up,
		forward: forward,
		focal:   1 / math.Tan(c.FOV/2),
	}
}

// Project maps a world point to surface coordinates; ok is false behind the near plane
func (p Projector) Project(w vmath.Vec3F) (ScreenPoint, bool) {
	d := vmath.V3FSub(vmath.V3FScale(w, p.vp.scale()), p.eye)
	z := vmath.V3FDot(d, p.forward)
	if z < parameter.CameraNear {
		return ScreenPoint{}, false
	}
	nx := p.focal * vmath.V3FDot(d, p.right) / z / p.vp.aspect()
	ny := p.focal * vmath.V3FDot(d, p.up) / z
	return ScreenPoint{
		X:     (nx + 1) / 2 * p.vp.Width,
		Y:     (1 - ny) / 2 * p.vp.Height,
		Depth: z,
	}, true
}

// Ray returns the world-space ray through surface point (sx, sy)
// Direction is unit length; origin accounts for the viewport scale
func (p Projector) Ray(sx, sy float64) (origin, dir vmath.Vec3F) {
	nx := 2*sx/p.vp.Width - 1
	ny := 1 - 2*sy/p.vp.Height
	dir = p.forward
	dir = vmath.V3FAddScaled(dir, p.right, nx*p.vp.aspect()/p.focal)
	dir = vmath.V3FAddScaled(dir, p.up, ny/p.focal)
	return vmath.V3FScale(p.eye, 1/p.vp.scale()), vmath.V3FNormalize(dir)
}

// Forward is the view direction, the normal of camera-facing drag planes
func (p Projector) Forward() vmath.Vec3F {
	return p.forward
}

// RayPlane intersects a ray with the plane through point with the given normal
func RayPlane(origin, dir, point, normal vmath.Vec3F) (vmath.Vec3F, bool) {
	denom := vmath.V3FDot(dir, normal)
	if math.Abs(denom) < 1e-9 {
		return vmath.Vec3F{}, false
	}
	t := vmath.V3FDot(vmath.V3FSub(point, origin), normal) / denom
	if t < 0 {
		return vmath.Vec3F{}, false
	}
	return vmath.V3FAddScaled(origin, dir, t), true
}

// Pick returns the particle closest to the ray within maxDist of it, preferring
// nearer particles when several are equally close to the ray
func Pick(origin, dir vmath.Vec3F, particles []cloth.Particle, maxDist float64) (int, bool) {
	best := -1
	bestSq := maxDist * maxDist
	bestT := math.Inf(1)
	for i := range particles {
		rel := vmath.V3FSub(particles[i].Position, origin)
		t := vmath.V3FDot(rel, dir)
		if t <= 0 {
			continue
		}
		closest := vmath.V3FAddScaled(origin, dir, t)
		d := vmath.V3FDistSq(closest, particles[i].Position)
		if d < bestSq || (d == bestSq && t < bestT) {
			best, bestSq, bestT = i, d, t
		}
	}
	return best, best >= 0
}

// DragPlane tracks a grabbed particle; the pointer slides on the plane through
// the grab point that faces the camera at grab time
type DragPlane struct {
	Index  int
	Point  vmath.Vec3F
	Normal vmath.Vec3F
	active bool
}

// Grab picks under (sx, sy) and starts a drag
func (g *DragPlane) Grab(p Projector, sx, sy float64, particles []cloth.Particle, maxDist float64) bool {
	origin, dir := p.Ray(sx, sy)
	i, ok := Pick(origin, dir, particles, maxDist)
	if !ok {
		g.Release()
		return false
	}
	g.Index = i
	g.Point = particles[i].Position
	g.Normal = p.Forward()
	g.active = true
	return true
}

// Pointer returns the world pointer for screen point (sx, sy), or nil when not dragging
func (g *DragPlane) Pointer(p Projector, sx, sy float64) *vmath.Vec3F {
	if !g.active {
		return nil
	}
	origin, dir := p.Ray(sx, sy)
	hit, ok := RayPlane(origin, dir, g.Point, g.Normal)
	if !ok {
		return nil
	}
	return &hit
}

func (g *DragPlane) Active() bool {
	return g.active
}

func (g *DragPlane) Release() {
	g.active = false
	g.Index = -1
}
