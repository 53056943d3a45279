package cloth

import (
	"slices"

	"github.com/lixenwraith/cloth/vmath"
)

// UpdateProperties merges live settings without touching particle or constraint geometry
// A changed spring coefficient rewrites every constraint of that type;
// a changed pin mode (or a new custom list) re-applies pins
func (e *Engine) UpdateProperties(o Overrides) {
	prev := e.cfg
	next := e.cfg.Apply(o)

	// Pinning is applied below through ApplyPinMode, which owns those fields
	next.PinMode = prev.PinMode
	next.CustomPins = prev.CustomPins
	e.cfg = next

	newSprings := e.cfg.springTable()
	for t := range newSprings {
		if newSprings[t] != e.springs[t] {
			e.retuneSprings(ConstraintType(t), newSprings[t])
		}
	}
	e.springs = newSprings

	if o.PinMode != nil {
		mode := *o.PinMode
		custom := prev.CustomPins
		if o.CustomPins != nil {
			custom = o.CustomPins
		}
		if mode != prev.PinMode || (mode == PinCustom && o.CustomPins != nil) {
			e.ApplyPinMode(mode, custom)
		}
	} else if o.CustomPins != nil && prev.PinMode == PinCustom {
		e.ApplyPinMode(PinCustom, o.CustomPins)
	}
}

// retuneSprings rewrites stiffness and damping for every constraint of one type
func (e *Engine) retuneSprings(t ConstraintType, s Spring) {
	for i := range e.constraints {
		if e.constraints[i].Type == t {
			e.constraints[i].Stiffness = s.Stiffness
			e.constraints[i].Dampening = s.Dampening
		}
	}
}

// ParticleOverrides is a partial per-particle update; nil fields are left alone
type ParticleOverrides struct {
	Mass            *float64
	Pinned          *bool
	CustomStiffness *float64
	CustomDampening *float64

	// Position teleports the particle at rest (previous position follows)
	Position *vmath.Vec3F
}

// SetParticleProperties applies o to particle i; out-of-range indices are ignored
// Non-positive masses are ignored so InverseMass stays finite
func (e *Engine) SetParticleProperties(i int, o ParticleOverrides) {
	if i < 0 || i >= len(e.particles) {
		return
	}
	p := &e.particles[i]

	if o.Mass != nil && *o.Mass > 0 {
		p.Mass = *o.Mass
		p.InverseMass = 1.0 / *o.Mass
	}
	if o.CustomStiffness != nil {
		p.CustomStiffness = *o.CustomStiffness
	}
	if o.CustomDampening != nil {
		p.CustomDampening = *o.CustomDampening
	}
	if o.Position != nil {
		p.Position = *o.Position
		p.PreviousPosition = *o.Position
	}
	if o.Pinned != nil {
		e.setPinned(i, *o.Pinned)
	}
}

// SetParticlesProperties applies a batch of overrides keyed by index
func (e *Engine) SetParticlesProperties(batch map[int]ParticleOverrides) {
	keys := make([]int, 0, len(batch))
	for i := range batch {
		keys = append(keys, i)
	}
	slices.Sort(keys)
	for _, i := range keys {
		e.SetParticleProperties(i, batch[i])
	}
}
