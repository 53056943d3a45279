package parameter

// Cloth lattice defaults (match the hero preset)
const (
	// ClothGridSize is particles per side of one layer
	ClothGridSize = 32

	// ClothWidth and ClothHeight are the physical extents in world units
	ClothWidth  = 2.0
	ClothHeight = 2.0

	// ClothLayers is the number of stacked lattices linked by inter-layer springs
	ClothLayers = 1

	// ClothParticleMass is the initial mass of every particle
	ClothParticleMass = 1.0

	// ClothThickness is the layer spacing and the self-collision minimum distance
	ClothThickness = 0.05
)

// Lattice placement offsets
const (
	// VerticalOriginY lifts a vertical cloth so its bottom edge sits at y=0
	VerticalOriginY = 1.0

	// HorizontalOriginY is the height a horizontal cloth is built at
	HorizontalOriginY = 0.6
)

// Spring table defaults per constraint type
const (
	StructuralStiffness = 0.9
	ShearStiffness      = 0.7
	BendStiffness       = 0.3

	// SpringDampness is shared by all three types unless overridden
	SpringDampness = 0.05
)

// Forces
const (
	// Gravity is Y acceleration in units/sec²
	Gravity = -9.8

	// WindForce is wind acceleration magnitude before gust modulation
	WindForce = 0.0

	// AirResistance scales the per-step velocity drag
	AirResistance = 0.02
)

// Wind gust waveform: gust = base + a1*sin(f1*t) + a2*sin(f2*t + phase)
const (
	WindGustBase   = 0.5
	WindGustAmp1   = 0.5
	WindGustFreq1  = 0.7
	WindGustAmp2   = 0.3
	WindGustFreq2  = 1.3
	WindGustPhase2 = 1.7
)

// Solver
const (
	// SolverIterations is the relaxation passes per update
	SolverIterations = 4

	// TearThreshold is the stretch ratio (current/rest) at which a constraint tears
	TearThreshold = 5.0

	// ConstraintCorrectionShare is the fraction of the correction each endpoint receives
	ConstraintCorrectionShare = 0.5
)

// Environment
const (
	// GroundHeight is the fixed floor plane
	GroundHeight = -2.0

	// GroundBounce is the fraction of vertical velocity reflected on floor contact
	GroundBounce = 0.8
)

// Interaction
const (
	// PointerCaptureRadius is the max distance from the pointer to an affected particle
	PointerCaptureRadius = 0.5

	// PointerForce is the default attraction scale for drag-move
	PointerForce = 0.6
)

// Self-collision
const (
	// SelfCollisionGridLimit disables the O(n²) pass above this grid size
	SelfCollisionGridLimit = 16
)

// Scene object defaults for colliders built from authored objects
const (
	SceneSphereRadius = 0.5
	SceneBoxSize      = 1.0
	SceneCylinderSize = 1.0
)
