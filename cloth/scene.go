package cloth

import (
	"fmt"

	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/vmath"
)

// ObjectKind is the shape of an authored scene object
type ObjectKind uint8

const (
	ObjectSphere ObjectKind = iota
	ObjectBox
	ObjectCylinder
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectSphere:
		return "sphere"
	case ObjectBox:
		return "box"
	case ObjectCylinder:
		return "cylinder"
	}
	return fmt.Sprintf("ObjectKind(%d)", k)
}

// ParseObjectKind resolves a config name
func ParseObjectKind(s string) (ObjectKind, error) {
	switch s {
	case "sphere":
		return ObjectSphere, nil
	case "box":
		return ObjectBox, nil
	case "cylinder":
		return ObjectCylinder, nil
	}
	return ObjectSphere, fmt.Errorf("unknown object kind %q", s)
}

// SceneObject is a host-authored shape; zero Radius/Size/Height mean defaults
type SceneObject struct {
	Kind     ObjectKind
	Position vmath.Vec3F
	Radius   float64
	Size     vmath.Vec3F
	Height   float64
	Visible  bool
}

// EffectiveRadius applies the default radius
func (o SceneObject) EffectiveRadius() float64 {
	if o.Radius > 0 {
		return o.Radius
	}
	return parameter.SceneSphereRadius
}

// EffectiveSize applies the default box size
func (o SceneObject) EffectiveSize() vmath.Vec3F {
	if o.Size == (vmath.Vec3F{}) {
		return vmath.V3F(parameter.SceneBoxSize, parameter.SceneBoxSize, parameter.SceneBoxSize)
	}
	return o.Size
}

// EffectiveHeight applies the default cylinder height
func (o SceneObject) EffectiveHeight() float64 {
	if o.Height > 0 {
		return o.Height
	}
	return parameter.SceneCylinderSize
}

// CollidersFrom translates visible scene objects into physics colliders
// Cylinders are drawn by hosts but never collide
func CollidersFrom(objects []SceneObject) []Collider {
	cols := make([]Collider, 0, len(objects))
	for _, o := range objects {
		if !o.Visible {
			continue
		}
		switch o.Kind {
		case ObjectSphere:
			cols = append(cols, Sphere{Center: o.Position, Radius: o.EffectiveRadius()})
		case ObjectBox:
			cols = append(cols, BoxAt(o.Position, o.EffectiveSize()))
		case ObjectCylinder:
		}
	}
	return cols
}
