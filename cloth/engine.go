// Package cloth is a position-based cloth simulator.
//
// The engine owns a flat particle arena and a constraint arena addressed by index.
// A host builds it from a Config, calls Update once per frame with a pre-clamped dt,
// and pulls particle positions afterwards. Nothing is pushed to the host.
//
// The engine is not safe for concurrent use; callers serialize access.
package cloth

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/cloth/vmath"
)

// Engine owns all particle and constraint state
type Engine struct {
	cfg     Config
	springs [numConstraintTypes]Spring

	particles   []Particle
	constraints []Constraint
	pins        map[int]struct{}

	time  float64
	stats Stats
}

// New validates cfg and builds the lattice
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cloth config: %w", err)
	}
	cfg.CustomPins = slices.Clone(cfg.CustomPins)
	e := &Engine{cfg: cfg}
	e.build()
	return e, nil
}

// Reset discards all simulated state and rebuilds from the current config
func (e *Engine) Reset() {
	e.build()
}

// Config returns a copy of the live configuration
func (e *Engine) Config() Config {
	c := e.cfg
	c.CustomPins = slices.Clone(e.cfg.CustomPins)
	return c
}

// Springs returns the current per-type spring table
func (e *Engine) Springs() [3]Spring {
	return e.springs
}

// Particles exposes the particle arena for reading
// The slice is owned by the engine and valid until the next Reset
func (e *Engine) Particles() []Particle {
	return e.particles
}

// Constraints exposes the constraint arena for reading
func (e *Engine) Constraints() []Constraint {
	return e.constraints
}

// Particle returns a copy of particle i
func (e *Engine) Particle(i int) (Particle, bool) {
	if i < 0 || i >= len(e.particles) {
		return Particle{}, false
	}
	return e.particles[i], true
}

// Index maps lattice coordinates to the flat arena index
func (e *Engine) Index(layer, x, y int) int {
	n := e.cfg.GridSize
	return layer*n*n + y*n + x
}

// Len returns the particle count
func (e *Engine) Len() int {
	return len(e.particles)
}

// Time returns accumulated simulation time in seconds
func (e *Engine) Time() float64 {
	return e.time
}

// Stats returns the current counters
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Particles = len(e.particles)
	s.Constraints = len(e.constraints)
	s.SimTime = e.time
	return s
}

// Strain returns current length over rest length for constraint i, 0 when unavailable
func (e *Engine) Strain(i int) float64 {
	if i < 0 || i >= len(e.constraints) {
		return 0
	}
	c := &e.constraints[i]
	if c.RestLength == 0 {
		return 0
	}
	d := vmath.V3FDist(e.particles[c.A].Position, e.particles[c.B].Position)
	return d / c.RestLength
}

// Compact drops torn constraints from the arena and returns how many were removed
// Call between frames only; correctness never depends on it
func (e *Engine) Compact() int {
	before := len(e.constraints)
	e.constraints = slices.DeleteFunc(e.constraints, func(c Constraint) bool {
		return c.Torn
	})
	return before - len(e.constraints)
}
