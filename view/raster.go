package view

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Cell is one character cell of a Raster; Rune 0 means empty
type Cell struct {
	Rune  rune
	Color colorful.Color
	Depth float64
}

// Raster is a depth-buffered character grid; nearer strokes win a cell
type Raster struct {
	W, H  int
	Cells []Cell
}

// Resize reallocates only when the area grows, then clears
func (r *Raster) Resize(w, h int) {
	r.W, r.H = max(w, 0), max(h, 0)
	if n := r.W * r.H; cap(r.Cells) < n {
		r.Cells = make([]Cell, n)
	} else {
		r.Cells = r.Cells[:n]
	}
	r.Clear()
}

func (r *Raster) Clear() {
	for i := range r.Cells {
		r.Cells[i] = Cell{Depth: math.Inf(1)}
	}
}

// At returns the cell at x, y; out of bounds reads as empty
func (r *Raster) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= r.W || y >= r.H {
		return Cell{Depth: math.Inf(1)}
	}
	return r.Cells[y*r.W+x]
}

// Plot writes ch when depth is nearer than what the cell holds
func (r *Raster) Plot(x, y int, ch rune, c colorful.Color, depth float64) {
	if x < 0 || y < 0 || x >= r.W || y >= r.H {
		return
	}
	cell := &r.Cells[y*r.W+x]
	if depth < cell.Depth {
		*cell = Cell{Rune: ch, Color: c, Depth: depth}
	}
}

// Line rasterizes s with Bresenham, picking a glyph from its screen slope.
// The segment is clipped to the raster first, so far off-screen ends cost nothing
func (r *Raster) Line(s Segment) {
	ch := slopeGlyph(s.B.X-s.A.X, s.B.Y-s.A.Y)
	a, b, ok := clipSegment(s.A, s.B, float64(r.W), float64(r.H))
	if !ok {
		return
	}
	s.A, s.B = a, b

	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Floor(b.X)), int(math.Floor(b.Y))

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	steps := max(dx, -dy)
	err := dx + dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		r.Plot(x0, y0, ch, s.Color, s.A.Depth+(s.B.Depth-s.A.Depth)*t)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Mark plots a marker slightly in front of lines at the same depth
func (r *Raster) Mark(m Marker, ch rune) {
	r.Plot(int(math.Floor(m.At.X)), int(math.Floor(m.At.Y)), ch, m.Color, m.At.Depth-1e-3)
}

// Draw rasterizes a whole scene
func (r *Raster) Draw(s *Scene, marker rune) {
	for _, seg := range s.Segments {
		r.Line(seg)
	}
	for _, m := range s.Markers {
		r.Mark(m, marker)
	}
}

// clipSegment trims a-b to [0,w]x[0,h] (Liang-Barsky), interpolating depth
func clipSegment(a, b ScreenPoint, w, h float64) (ScreenPoint, ScreenPoint, bool) {
	for _, v := range [...]float64{a.X, a.Y, b.X, b.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, b, false
		}
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a.X, w - a.X, a.Y, h - a.Y}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return a, b, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
	}
	if t0 > t1 {
		return a, b, false
	}

	at := func(t float64) ScreenPoint {
		return ScreenPoint{X: a.X + dx*t, Y: a.Y + dy*t, Depth: a.Depth + (b.Depth-a.Depth)*t}
	}
	ca, cb := a, b
	if t0 > 0 {
		ca = at(t0)
	}
	if t1 < 1 {
		cb = at(t1)
	}
	return ca, cb, true
}

// slopeGlyph picks a line character; cells are about twice as tall as wide
func slopeGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), 2*math.Abs(dy)
	switch {
	case ax == 0 && ay == 0:
		return '.'
	case ax > 2*ay:
		return '-'
	case ay > 2*ax:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	}
	return '/'
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
