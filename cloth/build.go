package cloth

import (
	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/vmath"
)

// build lays out the lattice, links it and applies the configured pins
// Any previous state is discarded
func (e *Engine) build() {
	n := e.cfg.GridSize
	perLayer := n * n

	e.springs = e.cfg.springTable()
	e.particles = make([]Particle, 0, perLayer*e.cfg.Layers)
	e.time = 0
	e.stats = Stats{PointerTarget: -1}

	invMass := 1.0 / e.cfg.Mass
	for layer := 0; layer < e.cfg.Layers; layer++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				pos := e.latticePosition(layer, x, y)
				e.particles = append(e.particles, Particle{
					Position:         pos,
					PreviousPosition: pos,
					Mass:             e.cfg.Mass,
					InverseMass:      invMass,
					Layer:            layer,
					GridX:            x,
					GridY:            y,
					CustomStiffness:  1.0,
					CustomDampening:  1.0,
				})
			}
		}
	}

	e.link()
	e.ApplyPinMode(e.cfg.PinMode, e.cfg.CustomPins)
}

// latticePosition places a lattice point in world space for the configured orientation
func (e *Engine) latticePosition(layer, x, y int) vmath.Vec3F {
	n := float64(e.cfg.GridSize - 1)
	u := float64(x) / n
	v := float64(y) / n

	layerSpan := float64(e.cfg.Layers - 1)
	if layerSpan == 0 {
		layerSpan = 1
	}
	layerOffset := float64(layer) * (e.cfg.Thickness / layerSpan)

	wx := u*e.cfg.Width - e.cfg.Width/2
	if e.cfg.Orientation == Horizontal {
		return vmath.Vec3F{
			X: wx,
			Y: parameter.HorizontalOriginY + layerOffset,
			Z: v*e.cfg.Height - e.cfg.Height/2,
		}
	}
	// Row 0 is the physical top so the top-edge pin mode hangs the cloth
	return vmath.Vec3F{
		X: wx,
		Y: (1-v)*e.cfg.Height - e.cfg.Height/2 + parameter.VerticalOriginY,
		Z: layerOffset,
	}
}

// link creates constraints in a fixed order, which is also the solve order
func (e *Engine) link() {
	n := e.cfg.GridSize
	layers := e.cfg.Layers

	// Per cell: 2 structural, 2 shear, 2 bend, 1 inter-layer upper bound
	e.constraints = make([]Constraint, 0, n*n*layers*7)

	for layer := 0; layer < layers; layer++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				i := e.Index(layer, x, y)

				if x < n-1 {
					e.addConstraint(i, e.Index(layer, x+1, y), Structural)
				}
				if y < n-1 {
					e.addConstraint(i, e.Index(layer, x, y+1), Structural)
				}

				if x < n-1 && y < n-1 {
					e.addConstraint(i, e.Index(layer, x+1, y+1), Shear)
				}
				if x > 0 && y < n-1 {
					e.addConstraint(i, e.Index(layer, x-1, y+1), Shear)
				}

				if x < n-2 {
					e.addConstraint(i, e.Index(layer, x+2, y), Bend)
				}
				if y < n-2 {
					e.addConstraint(i, e.Index(layer, x, y+2), Bend)
				}

				if layer < layers-1 {
					e.addConstraint(i, e.Index(layer+1, x, y), Structural)
				}
			}
		}
	}
}

// addConstraint measures rest length from the actual positions, not the logical spacing
func (e *Engine) addConstraint(a, b int, typ ConstraintType) {
	spring := e.springs[typ]
	e.constraints = append(e.constraints, Constraint{
		A:          a,
		B:          b,
		RestLength: vmath.V3FDist(e.particles[a].Position, e.particles[b].Position),
		Type:       typ,
		Stiffness:  spring.Stiffness,
		Dampening:  spring.Dampening,
	})
}
