package view

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cloth/cloth"
	"github.com/lixenwraith/cloth/vmath"
)

// ringSegments is the polygon count used for sphere and cylinder outlines
const ringSegments = 16

// Segment is a projected line ready for a host to draw
type Segment struct {
	A, B  ScreenPoint
	Color colorful.Color
}

// Marker is a projected point, used for pinned particles
type Marker struct {
	At    ScreenPoint
	Color colorful.Color
}

// Scene projects everything a host draws for one frame
// Buffers are reused across frames
type Scene struct {
	Segments []Segment
	Markers  []Marker

	edges []cloth.Edge
}

// Build refills s from the engine state and scene objects
// near/far bound the depth fog; far <= near disables it
func (s *Scene) Build(e *cloth.Engine, objects []cloth.SceneObject, p Projector, pal Palette, near, far float64) {
	s.Segments = s.Segments[:0]
	s.Markers = s.Markers[:0]

	for _, o := range objects {
		if o.Visible {
			s.object(o, p, pal)
		}
	}

	particles := e.Particles()
	s.edges = e.VisibleEdges(s.edges)
	for _, edge := range s.edges {
		a, okA := p.Project(particles[edge.A].Position)
		b, okB := p.Project(particles[edge.B].Position)
		if !okA || !okB {
			continue
		}
		c := pal.Fog(pal.Strain(edge.Strain), (a.Depth+b.Depth)/2, near, far)
		s.Segments = append(s.Segments, Segment{A: a, B: b, Color: c})
	}

	for _, i := range e.PinnedIndices() {
		if at, ok := p.Project(particles[i].Position); ok {
			s.Markers = append(s.Markers, Marker{At: at, Color: pal.Pinned()})
		}
	}
}

func (s *Scene) line(p Projector, a, b vmath.Vec3F, c colorful.Color) {
	pa, okA := p.Project(a)
	pb, okB := p.Project(b)
	if okA && okB {
		s.Segments = append(s.Segments, Segment{A: pa, B: pb, Color: c})
	}
}

// ring outlines a circle of radius r around center in the plane spanned by u and v
func (s *Scene) ring(p Projector, center, u, v vmath.Vec3F, r float64, c colorful.Color) {
	prev := vmath.V3FAddScaled(center, u, r)
	for k := 1; k <= ringSegments; k++ {
		a := 2 * math.Pi * float64(k) / ringSegments
		next := vmath.V3FAdd(center, vmath.V3FAdd(
			vmath.V3FScale(u, r*math.Cos(a)),
			vmath.V3FScale(v, r*math.Sin(a)),
		))
		s.line(p, prev, next, c)
		prev = next
	}
}

func (s *Scene) object(o cloth.SceneObject, p Projector, pal Palette) {
	c := pal.Object()
	ux, uy, uz := vmath.V3F(1, 0, 0), vmath.V3F(0, 1, 0), vmath.V3F(0, 0, 1)

	switch o.Kind {
	case cloth.ObjectSphere:
		r := o.EffectiveRadius()
		s.ring(p, o.Position, ux, uy, r, c)
		s.ring(p, o.Position, ux, uz, r, c)
		s.ring(p, o.Position, uy, uz, r, c)

	case cloth.ObjectBox:
		b := cloth.BoxAt(o.Position, o.EffectiveSize())
		corner := func(i int) vmath.Vec3F {
			v := b.Min
			if i&1 != 0 {
				v.X = b.Max.X
			}
			if i&2 != 0 {
				v.Y = b.Max.Y
			}
			if i&4 != 0 {
				v.Z = b.Max.Z
			}
			return v
		}
		// Corners differing in exactly one bit share an edge
		for i := 0; i < 8; i++ {
			for bit := 1; bit < 8; bit <<= 1 {
				if j := i | bit; j != i {
					s.line(p, corner(i), corner(j), c)
				}
			}
		}

	case cloth.ObjectCylinder:
		r := o.EffectiveRadius()
		h := o.EffectiveHeight() / 2
		top := vmath.V3FAddScaled(o.Position, uy, h)
		bottom := vmath.V3FAddScaled(o.Position, uy, -h)
		s.ring(p, top, ux, uz, r, c)
		s.ring(p, bottom, ux, uz, r, c)
		for _, d := range []vmath.Vec3F{ux, uz, vmath.V3FScale(ux, -1), vmath.V3FScale(uz, -1)} {
			s.line(p, vmath.V3FAddScaled(top, d, r), vmath.V3FAddScaled(bottom, d, r), c)
		}
	}
}
