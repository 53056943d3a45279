package cloth

import (
	"github.com/lixenwraith/cloth/vmath"
)

// Nearest returns the particle closest to point within radius
func (e *Engine) Nearest(point vmath.Vec3F, radius float64) (int, bool) {
	best := -1
	bestSq := radius * radius
	for i := range e.particles {
		d := vmath.V3FDistSq(e.particles[i].Position, point)
		// Strict: a particle exactly at the radius is outside capture
		if d < bestSq {
			bestSq = d
			best = i
		}
	}
	return best, best >= 0
}

// applyPointer affects only the single closest particle within the capture radius
func (e *Engine) applyPointer(point vmath.Vec3F, force float64, mode DragMode) {
	i, ok := e.Nearest(point, e.cfg.PointerRadius)
	if !ok {
		return
	}
	e.stats.PointerTarget = i
	e.stats.PointerApplied = mode

	p := &e.particles[i]
	switch mode {
	case DragMove:
		pull := vmath.V3FScale(vmath.V3FSub(point, p.Position), force)
		p.Acceleration = vmath.V3FAdd(p.Acceleration, pull)
	case DragPin:
		e.setPinned(i, true)
	case DragUnpin:
		e.setPinned(i, false)
	case DragTear:
		e.TearAt(i)
	}
}

// TearAt tears every constraint touching particle i and returns how many tore
func (e *Engine) TearAt(i int) int {
	if i < 0 || i >= len(e.particles) {
		return 0
	}
	torn := 0
	for k := range e.constraints {
		c := &e.constraints[k]
		if c.Torn || (c.A != i && c.B != i) {
			continue
		}
		e.tear(c)
		torn++
	}
	return torn
}
