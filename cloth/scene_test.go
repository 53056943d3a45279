package cloth

import (
	"testing"

	"github.com/lixenwraith/cloth/vmath"
)

func TestCollidersFrom(t *testing.T) {
	objects := []SceneObject{
		{Kind: ObjectSphere, Position: vmath.V3F(0, -0.6, 0), Radius: 0.45, Visible: true},
		{Kind: ObjectBox, Position: vmath.V3F(0.8, -1, 0), Size: vmath.V3F(0.5, 0.5, 0.5), Visible: true},
		{Kind: ObjectCylinder, Position: vmath.V3F(-1, 0, 0), Visible: true},
		{Kind: ObjectSphere, Position: vmath.V3F(3, 3, 3), Visible: false},
		{Kind: ObjectBox, Visible: true},
	}

	cols := CollidersFrom(objects)
	if len(cols) != 3 {
		t.Fatalf("collider count = %d, want 3", len(cols))
	}

	s, ok := cols[0].(Sphere)
	if !ok || s.Radius != 0.45 || s.Center != vmath.V3F(0, -0.6, 0) {
		t.Errorf("sphere collider = %#v", cols[0])
	}

	b, ok := cols[1].(Box)
	if !ok {
		t.Fatalf("second collider is %T, want Box", cols[1])
	}
	if !vmath.V3FApproxEqual(b.Min, vmath.V3F(0.55, -1.25, -0.25), eps) ||
		!vmath.V3FApproxEqual(b.Max, vmath.V3F(1.05, -0.75, 0.25), eps) {
		t.Errorf("box bounds = %v..%v", b.Min, b.Max)
	}

	def, ok := cols[2].(Box)
	if !ok || !vmath.V3FApproxEqual(vmath.V3FSub(def.Max, def.Min), vmath.V3F(1, 1, 1), eps) {
		t.Errorf("zero-size box should take the default size, got %#v", cols[2])
	}
}

func TestParseNames(t *testing.T) {
	if k, err := ParseObjectKind("cylinder"); err != nil || k != ObjectCylinder {
		t.Errorf("ParseObjectKind(cylinder) = %v, %v", k, err)
	}
	if _, err := ParseObjectKind("cone"); err == nil {
		t.Error("unknown object kind accepted")
	}
	for _, m := range []PinMode{PinTopEdge, PinCorners, PinNone, PinCustom} {
		got, err := ParsePinMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParsePinMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	for _, o := range []Orientation{Vertical, Horizontal} {
		got, err := ParseOrientation(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOrientation(%q) = %v, %v", o.String(), got, err)
		}
	}
	if DragTear.Next() != DragMove {
		t.Errorf("drag mode cycle should wrap, got %s", DragTear.Next())
	}
}

func TestCompact_DropsTornOnly(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.GridSize = 4
		c.PinMode = PinNone
	})
	total := len(e.Constraints())
	torn := e.TearAt(5)
	if torn == 0 {
		t.Fatal("TearAt(5) tore nothing")
	}

	if removed := e.Compact(); removed != torn {
		t.Errorf("Compact removed %d, want %d", removed, torn)
	}
	if got := len(e.Constraints()); got != total-torn {
		t.Errorf("constraints after compact = %d, want %d", got, total-torn)
	}
	for i, c := range e.Constraints() {
		if c.Torn {
			t.Errorf("constraint %d still torn after compact", i)
		}
	}
	if e.Stats().TornTotal != torn {
		t.Errorf("torn total = %d, want %d", e.Stats().TornTotal, torn)
	}
}

func TestVisibleEdges(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.GridSize = 3 })

	edges := e.VisibleEdges(nil)
	if len(edges) != 12 {
		t.Fatalf("visible edges = %d, want 12 structural", len(edges))
	}
	for _, ed := range edges {
		if ed.Type != Structural {
			t.Errorf("edge %d-%d has type %s", ed.A, ed.B, ed.Type)
		}
		if ed.Strain < 1-eps || ed.Strain > 1+eps {
			t.Errorf("rest edge %d-%d strain = %v, want 1", ed.A, ed.B, ed.Strain)
		}
	}

	e.TearAt(4)
	if got := len(e.VisibleEdges(edges)); got != 8 {
		t.Errorf("visible edges after tearing the center = %d, want 8", got)
	}
}

func TestStrain(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.GridSize = 2
		c.PinMode = PinNone
	})
	p0, _ := e.Particle(0)
	stretched := vmath.V3FAdd(p0.Position, vmath.V3F(3, 0, 0))
	e.SetParticleProperties(1, ParticleOverrides{Position: &stretched})

	if got := e.Strain(0); got < 1.5-eps || got > 1.5+eps {
		t.Errorf("strain = %v, want 1.5", got)
	}
	if e.Strain(-1) != 0 || e.Strain(100) != 0 {
		t.Error("out-of-range strain should be 0")
	}
}
