package cloth

import (
	"math"

	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/vmath"
)

// Update advances the simulation by one fixed step
//
// dt must already be clamped by the caller (parameter.MaxTimeStep); explicit Verlet
// is unstable for large steps and the engine neither detects nor substeps.
// colliders are read-only for the duration of the call.
func (e *Engine) Update(dt float64, ptr Pointer, colliders []Collider) {
	e.time += dt
	e.stats.TornLastStep = 0
	e.stats.PointerTarget = -1

	e.accumulateForces()

	if ptr.Position != nil && ptr.Force != 0 {
		e.applyPointer(*ptr.Position, ptr.Force, ptr.Mode)
	}

	for iter := e.cfg.iterations(); iter > 0; iter-- {
		e.SatisfyConstraints()
		if len(colliders) > 0 {
			e.ResolveCollisions(colliders)
		}
	}

	e.integrate(dt)

	if e.cfg.SelfCollision {
		e.SelfCollide()
	}

	e.stats.Steps++
}

// accumulateForces resets acceleration to gravity and adds wind and air drag
func (e *Engine) accumulateForces() {
	gravity := vmath.Vec3F{Y: e.cfg.Gravity}

	var wind vmath.Vec3F
	if e.cfg.WindForce > 0 {
		wind = vmath.V3FScale(e.cfg.WindDirection, e.cfg.WindForce*WindGust(e.time))
	}

	drag := e.cfg.AirResistance
	for i := range e.particles {
		p := &e.particles[i]
		p.Acceleration = vmath.V3FAdd(gravity, wind)
		if drag != 0 {
			vel := vmath.V3FSub(p.Position, p.PreviousPosition)
			p.Acceleration = vmath.V3FAddScaled(p.Acceleration, vel, -drag*p.InverseMass)
		}
	}
}

// WindGust is the gust multiplier at time t: two superposed sines of unrelated frequency
func WindGust(t float64) float64 {
	return parameter.WindGustBase +
		parameter.WindGustAmp1*math.Sin(t*parameter.WindGustFreq1) +
		parameter.WindGustAmp2*math.Sin(t*parameter.WindGustFreq2+parameter.WindGustPhase2)
}

// integrate applies position Verlet to unpinned particles, then the ground clamp
func (e *Engine) integrate(dt float64) {
	dt2 := dt * dt
	ground := e.cfg.GroundHeight
	bounce := e.cfg.GroundBounce

	for i := range e.particles {
		p := &e.particles[i]
		if p.Pinned {
			continue
		}

		step := vmath.V3FAddScaled(vmath.V3FSub(p.Position, p.PreviousPosition), p.Acceleration, dt2)
		p.PreviousPosition = p.Position
		p.Position = vmath.V3FAdd(p.Position, step)

		if p.Position.Y < ground {
			p.Position.Y = ground
			// Previous sits below the floor so the implied velocity points back up, damped
			p.PreviousPosition.Y = ground + step.Y*bounce
		}
	}
}
