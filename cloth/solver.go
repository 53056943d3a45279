package cloth

import (
	"math"

	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/vmath"
)

// SatisfyConstraints runs one Gauss-Seidel relaxation pass in construction order
// Over-stretched constraints tear instead of correcting and stay torn
func (e *Engine) SatisfyConstraints() {
	threshold := e.cfg.TearThreshold

	for i := range e.constraints {
		c := &e.constraints[i]
		if c.Torn {
			continue
		}

		a := &e.particles[c.A]
		b := &e.particles[c.B]

		delta := vmath.V3FSub(b.Position, a.Position)
		distSq := vmath.V3FMagSq(delta)
		if distSq == 0 {
			// Coincident endpoints have no direction to correct along
			continue
		}
		dist := math.Sqrt(distSq)

		if dist > c.RestLength*threshold {
			e.tear(c)
			continue
		}

		k := c.Stiffness * a.CustomStiffness * b.CustomStiffness
		share := (dist - c.RestLength) / dist * k * parameter.ConstraintCorrectionShare
		corr := vmath.V3FScale(delta, share)

		if !a.Pinned {
			a.Position = vmath.V3FAdd(a.Position, corr)
		}
		if !b.Pinned {
			b.Position = vmath.V3FSub(b.Position, corr)
		}
	}
}

// tear tombstones c and flags both endpoints
func (e *Engine) tear(c *Constraint) {
	if c.Torn {
		return
	}
	c.Torn = true
	e.particles[c.A].Torn = true
	e.particles[c.B].Torn = true
	e.stats.TornTotal++
	e.stats.TornLastStep++
}

// ResolveCollisions pushes every unpinned particle out of each collider in order
func (e *Engine) ResolveCollisions(colliders []Collider) {
	for i := range e.particles {
		p := &e.particles[i]
		if p.Pinned {
			continue
		}
		for _, col := range colliders {
			if col == nil {
				continue
			}
			if out, hit := col.Resolve(p.Position); hit {
				p.Position = out
			}
		}
	}
}
