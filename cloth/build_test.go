package cloth

import (
	"testing"

	"github.com/lixenwraith/cloth/vmath"
)

// newTestEngine builds an engine from the default config with mutate applied
func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func countByType(e *Engine) map[ConstraintType]int {
	counts := make(map[ConstraintType]int)
	for _, c := range e.Constraints() {
		counts[c.Type]++
	}
	return counts
}

func TestNew_ParticleCountAndIndexInvariant(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.GridSize = 5
		c.Layers = 3
	})

	if got, want := e.Len(), 5*5*3; got != want {
		t.Fatalf("particle count = %d, want %d", got, want)
	}

	for i, p := range e.Particles() {
		if want := p.Layer*25 + p.GridY*5 + p.GridX; want != i {
			t.Errorf("particle %d has origin (%d,%d,%d) mapping to %d", i, p.Layer, p.GridX, p.GridY, want)
		}
		if p.CustomStiffness != 1 || p.CustomDampening != 1 {
			t.Errorf("particle %d custom multipliers = %v/%v, want 1/1", i, p.CustomStiffness, p.CustomDampening)
		}
		if p.Position != p.PreviousPosition {
			t.Errorf("particle %d starts with nonzero velocity", i)
		}
		if p.InverseMass != 1/p.Mass {
			t.Errorf("particle %d inverse mass %v does not match mass %v", i, p.InverseMass, p.Mass)
		}
	}
}

func TestNew_ConstraintCounts(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		layers int
		want   map[ConstraintType]int
	}{
		{
			name: "4x4 single layer", n: 4, layers: 1,
			want: map[ConstraintType]int{Structural: 2 * 4 * 3, Shear: 2 * 3 * 3, Bend: 2 * 4 * 2},
		},
		{
			name: "2x2 has no bend", n: 2, layers: 1,
			want: map[ConstraintType]int{Structural: 4, Shear: 2},
		},
		{
			name: "3x3 two layers adds counterparts", n: 3, layers: 2,
			want: map[ConstraintType]int{Structural: 2*(2*3*2) + 9, Shear: 2 * (2 * 2 * 2), Bend: 2 * (2 * 3 * 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, func(c *Config) {
				c.GridSize = tt.n
				c.Layers = tt.layers
			})
			got := countByType(e)
			for typ, want := range tt.want {
				if got[typ] != want {
					t.Errorf("%s constraints = %d, want %d", typ, got[typ], want)
				}
			}
			if got[Bend] != tt.want[Bend] {
				t.Errorf("bend constraints = %d, want %d", got[Bend], tt.want[Bend])
			}
		})
	}
}

func TestNew_RestLengthIsConstructionDistance(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.GridSize = 6
		c.Layers = 2
		c.Width = 3.0
		c.Height = 1.3
	})

	ps := e.Particles()
	for i, c := range e.Constraints() {
		want := vmath.V3FDist(ps[c.A].Position, ps[c.B].Position)
		if c.RestLength != want {
			t.Errorf("constraint %d (%s %d-%d) rest = %v, want %v", i, c.Type, c.A, c.B, c.RestLength, want)
		}
	}
}

func TestNew_ConstraintsCopySpringTable(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.GridSize = 4
		c.StructuralStiffness = 0.11
		c.ShearStiffness = 0.22
		c.BendStiffness = 0.33
		c.Dampness = 0.07
	})

	want := map[ConstraintType]float64{Structural: 0.11, Shear: 0.22, Bend: 0.33}
	for i, c := range e.Constraints() {
		if c.Stiffness != want[c.Type] {
			t.Errorf("constraint %d %s stiffness = %v, want %v", i, c.Type, c.Stiffness, want[c.Type])
		}
		if c.Dampening != 0.07 {
			t.Errorf("constraint %d dampening = %v, want 0.07", i, c.Dampening)
		}
	}
}

func TestNew_Orientation(t *testing.T) {
	t.Run("vertical", func(t *testing.T) {
		e := newTestEngine(t, func(c *Config) { c.GridSize = 3 })
		top, _ := e.Particle(e.Index(0, 0, 0))
		bottom, _ := e.Particle(e.Index(0, 0, 2))
		if top.Position.Y <= bottom.Position.Y {
			t.Errorf("row 0 y=%v should be above last row y=%v", top.Position.Y, bottom.Position.Y)
		}
		for i, p := range e.Particles() {
			if p.Position.Z != 0 {
				t.Errorf("particle %d z = %v, want 0 for a single vertical layer", i, p.Position.Z)
			}
		}
	})

	t.Run("horizontal", func(t *testing.T) {
		e := newTestEngine(t, func(c *Config) {
			c.GridSize = 3
			c.Orientation = Horizontal
		})
		for i, p := range e.Particles() {
			if p.Position.Y != 0.6 {
				t.Errorf("particle %d y = %v, want 0.6", i, p.Position.Y)
			}
		}
		first, _ := e.Particle(0)
		last, _ := e.Particle(e.Len() - 1)
		if first.Position.Z != -1 || last.Position.Z != 1 {
			t.Errorf("z span = [%v, %v], want [-1, 1]", first.Position.Z, last.Position.Z)
		}
	})

	t.Run("layers offset by thickness", func(t *testing.T) {
		e := newTestEngine(t, func(c *Config) {
			c.GridSize = 2
			c.Layers = 3
			c.Thickness = 0.1
		})
		p, _ := e.Particle(e.Index(2, 0, 0))
		if p.Position.Z < 0.1-1e-12 || p.Position.Z > 0.1+1e-12 {
			t.Errorf("top layer z = %v, want 0.1", p.Position.Z)
		}
	})
}

func TestNew_RejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"grid too small", func(c *Config) { c.GridSize = 1 }},
		{"no layers", func(c *Config) { c.Layers = 0 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero mass", func(c *Config) { c.Mass = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReset_DiscardsState(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.GridSize = 4 })
	initial := append([]Particle(nil), e.Particles()...)

	for range 30 {
		e.Update(1.0/60, Pointer{}, nil)
	}
	e.TearAt(5)
	e.Reset()

	for i, p := range e.Particles() {
		if p.Position != initial[i].Position {
			t.Errorf("particle %d not restored: %v vs %v", i, p.Position, initial[i].Position)
		}
	}
	for i, c := range e.Constraints() {
		if c.Torn {
			t.Errorf("constraint %d still torn after reset", i)
		}
	}
	if e.Time() != 0 || e.Stats().TornTotal != 0 {
		t.Errorf("counters not reset: time=%v torn=%d", e.Time(), e.Stats().TornTotal)
	}
}

func TestPositionsAndTriangles(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.GridSize = 3 })

	buf := e.Positions(nil)
	if len(buf) != 27 {
		t.Fatalf("positions length = %d, want 27", len(buf))
	}
	p, _ := e.Particle(4)
	if buf[12] != float32(p.Position.X) || buf[13] != float32(p.Position.Y) || buf[14] != float32(p.Position.Z) {
		t.Errorf("particle 4 flattened as %v, want %v", buf[12:15], p.Position)
	}

	reused := e.Positions(buf)
	if &reused[0] != &buf[0] {
		t.Error("Positions should reuse a large enough buffer")
	}

	tris := e.Triangles()
	if len(tris) != 2*2*6 {
		t.Fatalf("index count = %d, want 24", len(tris))
	}
	want := []uint32{0, 1, 3, 1, 4, 3}
	for i, w := range want {
		if tris[i] != w {
			t.Errorf("first quad = %v, want %v", tris[:6], want)
			break
		}
	}
}
