package cloth

// Positions flattens particle positions as x,y,z triples into dst, growing it as needed
// Hosts call this once per frame to refresh their vertex buffer
func (e *Engine) Positions(dst []float32) []float32 {
	need := len(e.particles) * 3
	if cap(dst) < need {
		dst = make([]float32, need)
	}
	dst = dst[:need]
	for i := range e.particles {
		p := e.particles[i].Position
		dst[i*3] = float32(p.X)
		dst[i*3+1] = float32(p.Y)
		dst[i*3+2] = float32(p.Z)
	}
	return dst
}

// Triangles returns the index buffer for the first layer, two triangles per quad
func (e *Engine) Triangles() []uint32 {
	n := e.cfg.GridSize
	out := make([]uint32, 0, (n-1)*(n-1)*6)
	for y := 0; y < n-1; y++ {
		for x := 0; x < n-1; x++ {
			a := uint32(y*n + x)
			b := uint32(y*n + x + 1)
			c := uint32((y+1)*n + x)
			d := uint32((y+1)*n + x + 1)
			out = append(out, a, b, c, b, d, c)
		}
	}
	return out
}

// Edge is a drawable segment between two particles
type Edge struct {
	A, B   int
	Type   ConstraintType
	Strain float64
}

// VisibleEdges returns intact structural constraints with their strain, for wireframe hosts
func (e *Engine) VisibleEdges(dst []Edge) []Edge {
	dst = dst[:0]
	for i := range e.constraints {
		c := &e.constraints[i]
		if c.Torn || c.Type != Structural {
			continue
		}
		dst = append(dst, Edge{A: c.A, B: c.B, Type: c.Type, Strain: e.Strain(i)})
	}
	return dst
}
