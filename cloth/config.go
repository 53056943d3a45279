package cloth

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/vmath"
)

// Config is the full engine configuration
// Geometry fields (GridSize, Width, Height, Layers, Orientation, Mass) require a rebuild,
// everything else can be changed live through Overrides
type Config struct {
	GridSize    int
	Width       float64
	Height      float64
	Layers      int
	Orientation Orientation
	Mass        float64

	StructuralStiffness float64
	ShearStiffness      float64
	BendStiffness       float64
	Dampness            float64

	Gravity       float64
	WindForce     float64
	WindDirection vmath.Vec3F
	AirResistance float64

	TearThreshold    float64
	SelfCollision    bool
	Thickness        float64
	SolverIterations int

	PinMode    PinMode
	CustomPins []int

	// Tunables with no counterpart in the authored presets
	SelfCollisionGridLimit int
	GroundHeight           float64
	GroundBounce           float64
	PointerRadius          float64
}

// DefaultConfig returns the hero cloth
func DefaultConfig() Config {
	return Config{
		GridSize:    parameter.ClothGridSize,
		Width:       parameter.ClothWidth,
		Height:      parameter.ClothHeight,
		Layers:      parameter.ClothLayers,
		Orientation: Vertical,
		Mass:        parameter.ClothParticleMass,

		StructuralStiffness: parameter.StructuralStiffness,
		ShearStiffness:      parameter.ShearStiffness,
		BendStiffness:       parameter.BendStiffness,
		Dampness:            parameter.SpringDampness,

		Gravity:       parameter.Gravity,
		WindForce:     parameter.WindForce,
		WindDirection: vmath.V3F(1, 0, 0),
		AirResistance: parameter.AirResistance,

		TearThreshold:    parameter.TearThreshold,
		SelfCollision:    false,
		Thickness:        parameter.ClothThickness,
		SolverIterations: parameter.SolverIterations,

		PinMode: PinTopEdge,

		SelfCollisionGridLimit: parameter.SelfCollisionGridLimit,
		GroundHeight:           parameter.GroundHeight,
		GroundBounce:           parameter.GroundBounce,
		PointerRadius:          parameter.PointerCaptureRadius,
	}
}

// Validate checks the geometry fields that cannot be recovered from per frame
func (c Config) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("grid size %d: need at least 2", c.GridSize)
	}
	if c.Layers < 1 {
		return fmt.Errorf("layers %d: need at least 1", c.Layers)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("cloth extent %gx%g: must be positive", c.Width, c.Height)
	}
	if c.Mass <= 0 {
		return fmt.Errorf("particle mass %g: must be positive", c.Mass)
	}
	if c.Orientation > Horizontal {
		return fmt.Errorf("orientation %d out of range", c.Orientation)
	}
	if c.PinMode > PinCustom {
		return fmt.Errorf("pin mode %d out of range", c.PinMode)
	}
	return nil
}

// springTable derives the per-type spring entries
func (c Config) springTable() [numConstraintTypes]Spring {
	return [numConstraintTypes]Spring{
		Structural: {Stiffness: c.StructuralStiffness, Dampening: c.Dampness},
		Shear:      {Stiffness: c.ShearStiffness, Dampening: c.Dampness},
		Bend:       {Stiffness: c.BendStiffness, Dampening: c.Dampness},
	}
}

// Overrides is a partial live update; nil fields keep the current value
// Geometry is deliberately absent, changing it needs a rebuild
type Overrides struct {
	Gravity       *float64
	WindForce     *float64
	WindDirection *vmath.Vec3F
	AirResistance *float64

	TearThreshold    *float64
	SelfCollision    *bool
	Thickness        *float64
	SolverIterations *int

	StructuralStiffness *float64
	ShearStiffness      *float64
	BendStiffness       *float64
	Dampness            *float64

	PinMode    *PinMode
	CustomPins []int // nil keeps the current list
}

// Ptr returns a pointer to v, for building Overrides literals
func Ptr[T any](v T) *T {
	return &v
}

// Apply returns c with every non-nil override merged in
func (c Config) Apply(o Overrides) Config {
	out := c
	out.CustomPins = slices.Clone(c.CustomPins)

	setIf(&out.Gravity, o.Gravity)
	setIf(&out.WindForce, o.WindForce)
	setIf(&out.WindDirection, o.WindDirection)
	setIf(&out.AirResistance, o.AirResistance)
	setIf(&out.TearThreshold, o.TearThreshold)
	setIf(&out.SelfCollision, o.SelfCollision)
	setIf(&out.Thickness, o.Thickness)
	setIf(&out.SolverIterations, o.SolverIterations)
	setIf(&out.StructuralStiffness, o.StructuralStiffness)
	setIf(&out.ShearStiffness, o.ShearStiffness)
	setIf(&out.BendStiffness, o.BendStiffness)
	setIf(&out.Dampness, o.Dampness)
	setIf(&out.PinMode, o.PinMode)
	if o.CustomPins != nil {
		out.CustomPins = slices.Clone(o.CustomPins)
	}
	return out
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// iterations is the effective solver pass count
func (c Config) iterations() int {
	return max(1, c.SolverIterations)
}
