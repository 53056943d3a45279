package cloth

import (
	"fmt"

	"github.com/lixenwraith/cloth/vmath"
)

// ConstraintType selects which spring table entry a constraint draws from
type ConstraintType uint8

const (
	// Structural links immediate grid neighbors and layer counterparts
	Structural ConstraintType = iota
	// Shear links diagonal neighbors
	Shear
	// Bend links neighbors two cells apart, resisting folds
	Bend

	numConstraintTypes
)

var constraintTypeNames = [numConstraintTypes]string{"structural", "shear", "bend"}

func (t ConstraintType) String() string {
	if t < numConstraintTypes {
		return constraintTypeNames[t]
	}
	return fmt.Sprintf("ConstraintType(%d)", t)
}

// Orientation is the plane the lattice is built in
type Orientation uint8

const (
	// Vertical builds the cloth in the XY plane, hanging like a curtain
	Vertical Orientation = iota
	// Horizontal builds the cloth in the XZ plane, lying like a sheet
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Orientation(%d)", o)
}

// ParseOrientation resolves a config name
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "vertical", "":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown orientation %q", s)
}

// PinMode is the policy selecting which particles are held fixed
type PinMode uint8

const (
	PinTopEdge PinMode = iota
	PinCorners
	PinNone
	PinCustom
)

func (m PinMode) String() string {
	switch m {
	case PinTopEdge:
		return "topEdge"
	case PinCorners:
		return "corners"
	case PinNone:
		return "none"
	case PinCustom:
		return "custom"
	}
	return fmt.Sprintf("PinMode(%d)", m)
}

// ParsePinMode resolves a config name
func ParsePinMode(s string) (PinMode, error) {
	switch s {
	case "topEdge", "":
		return PinTopEdge, nil
	case "corners":
		return PinCorners, nil
	case "none":
		return PinNone, nil
	case "custom":
		return PinCustom, nil
	}
	return PinNone, fmt.Errorf("unknown pin mode %q", s)
}

// DragMode selects what the pointer does to the particle it captures
type DragMode uint8

const (
	DragMove DragMode = iota
	DragPin
	DragUnpin
	DragTear
)

func (m DragMode) String() string {
	switch m {
	case DragMove:
		return "move"
	case DragPin:
		return "pin"
	case DragUnpin:
		return "unpin"
	case DragTear:
		return "tear"
	}
	return fmt.Sprintf("DragMode(%d)", m)
}

// ParseDragMode resolves a config name
func ParseDragMode(s string) (DragMode, error) {
	switch s {
	case "move", "":
		return DragMove, nil
	case "pin":
		return DragPin, nil
	case "unpin":
		return DragUnpin, nil
	case "tear":
		return DragTear, nil
	}
	return DragMove, fmt.Errorf("unknown drag mode %q", s)
}

// Next cycles through drag modes in declaration order
func (m DragMode) Next() DragMode {
	return (m + 1) % (DragTear + 1)
}

// Particle is one lattice point
// Velocity is implicit: Position - PreviousPosition
type Particle struct {
	Position         vmath.Vec3F
	PreviousPosition vmath.Vec3F
	Acceleration     vmath.Vec3F // Reset every step

	Mass        float64
	InverseMass float64

	Pinned bool

	// Origin coordinates, fixed for the particle's lifetime
	Layer int
	GridX int
	GridY int

	CustomStiffness float64
	CustomDampening float64

	// Torn is advisory: set when any attached constraint tore
	Torn bool
}

// Velocity returns the per-step displacement
func (p *Particle) Velocity() vmath.Vec3F {
	return vmath.V3FSub(p.Position, p.PreviousPosition)
}

// Constraint is a distance link between two particle indices
type Constraint struct {
	A, B int

	// RestLength is measured once at construction and never recomputed
	RestLength float64

	Type      ConstraintType
	Stiffness float64
	Dampening float64

	// Torn is a tombstone; torn constraints never correct again
	Torn bool
}

// Spring is one entry of the per-type spring table
type Spring struct {
	Stiffness float64
	Dampening float64
}

// Pointer carries one frame of host pointer input
type Pointer struct {
	// Position is the world-space pointer, nil when the pointer is off the cloth
	Position *vmath.Vec3F
	Force    float64
	Mode     DragMode
}

// Stats are counters exposed to hosts
type Stats struct {
	Particles      int
	Constraints    int
	TornTotal      int
	TornLastStep   int
	Steps          uint64
	SimTime        float64
	PointerTarget  int // Particle affected by the last pointer action, -1 if none
	PointerApplied DragMode
}
