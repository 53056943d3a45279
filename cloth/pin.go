package cloth

import (
	"slices"
)

// ApplyPinMode clears every pin, then pins the set selected by mode
// custom is only read for PinCustom; out-of-range indices are ignored
func (e *Engine) ApplyPinMode(mode PinMode, custom []int) {
	e.pins = make(map[int]struct{})
	for i := range e.particles {
		e.particles[i].Pinned = false
	}

	n := e.cfg.GridSize
	switch mode {
	case PinTopEdge:
		for x := 0; x < n; x++ {
			e.setPinned(e.Index(0, x, 0), true)
		}
	case PinCorners:
		e.setPinned(e.Index(0, 0, 0), true)
		e.setPinned(e.Index(0, n-1, 0), true)
	case PinCustom:
		for _, i := range custom {
			e.setPinned(i, true)
		}
	case PinNone:
	}

	e.cfg.PinMode = mode
	if mode == PinCustom {
		e.cfg.CustomPins = slices.Clone(custom)
	}
}

// setPinned keeps the particle flag and the pin set in step; out-of-range is a no-op
func (e *Engine) setPinned(i int, pinned bool) {
	if i < 0 || i >= len(e.particles) {
		return
	}
	e.particles[i].Pinned = pinned
	if pinned {
		e.pins[i] = struct{}{}
	} else {
		delete(e.pins, i)
	}
}

// IsPinned reports pin set membership
func (e *Engine) IsPinned(i int) bool {
	_, ok := e.pins[i]
	return ok
}

// PinnedIndices returns the pin set in ascending order
func (e *Engine) PinnedIndices() []int {
	out := make([]int, 0, len(e.pins))
	for i := range e.pins {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}
