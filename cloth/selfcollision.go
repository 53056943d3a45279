package cloth

import (
	"math"

	"github.com/lixenwraith/cloth/vmath"
)

// SelfCollide runs one pairwise separation pass keeping unpinned particles at least
// Thickness apart. The pass is O(n²) and is skipped when the grid exceeds
// SelfCollisionGridLimit (a non-positive limit disables the gate)
func (e *Engine) SelfCollide() {
	limit := e.cfg.SelfCollisionGridLimit
	if limit > 0 && e.cfg.GridSize > limit {
		return
	}

	minDist := e.cfg.Thickness
	if minDist <= 0 {
		return
	}
	minDistSq := minDist * minDist

	for i := 0; i < len(e.particles); i++ {
		a := &e.particles[i]
		for j := i + 1; j < len(e.particles); j++ {
			b := &e.particles[j]
			if a.Pinned && b.Pinned {
				continue
			}

			delta := vmath.V3FSub(b.Position, a.Position)
			distSq := vmath.V3FMagSq(delta)
			if distSq >= minDistSq {
				continue
			}

			// Each side takes half of the overlap; coincident pairs split along +Y
			var push vmath.Vec3F
			if distSq == 0 {
				push = vmath.Vec3F{Y: minDist * 0.5}
			} else {
				dist := math.Sqrt(distSq)
				push = vmath.V3FScale(delta, (minDist-dist)*0.5/dist)
			}
			if !a.Pinned {
				a.Position = vmath.V3FSub(a.Position, push)
			}
			if !b.Pinned {
				b.Position = vmath.V3FAdd(b.Position, push)
			}
		}
	}
}
