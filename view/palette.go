package view

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Strain colouring spans rest length to this much stretch
const strainSpan = 0.5

var (
	slackTint  = colorful.Color{R: 0.35, G: 0.75, B: 1.0}
	tautTint   = colorful.Color{R: 1.0, G: 0.25, B: 0.1}
	pinnedTint = colorful.Color{R: 1.0, G: 0.85, B: 0.2}
	objectTint = colorful.Color{R: 0.45, G: 0.5, B: 0.55}
	fogTint    = colorful.Color{R: 0.05, G: 0.05, B: 0.08}
)

// Palette maps strain and depth to colours around a base material colour
type Palette struct {
	Material colorful.Color
}

// NewPalette parses a "#rrggbb" material colour
func NewPalette(hex string) (Palette, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Palette{}, fmt.Errorf("material colour %q: %w", hex, err)
	}
	return Palette{Material: c}, nil
}

// Strain blends the material toward a cool tint when compressed and a hot tint when stretched
// strain is current length over rest length
func (p Palette) Strain(strain float64) colorful.Color {
	t := (strain - 1) / strainSpan
	switch {
	case t > 0:
		return p.Material.BlendLab(tautTint, clamp(t, 0, 1)).Clamped()
	case t < 0:
		return p.Material.BlendLab(slackTint, clamp(-t, 0, 1)).Clamped()
	}
	return p.Material
}

// Fog fades c toward the background with depth between near and far
func (p Palette) Fog(c colorful.Color, depth, near, far float64) colorful.Color {
	if far <= near {
		return c
	}
	return c.BlendRgb(fogTint, clamp((depth-near)/(far-near), 0, 0.85)).Clamped()
}

func (p Palette) Pinned() colorful.Color {
	return pinnedTint
}

func (p Palette) Object() colorful.Color {
	return objectTint
}

// RGB8 converts to 8-bit channels for tcell and ebiten
func RGB8(c colorful.Color) (r, g, b uint8) {
	return c.Clamped().RGB255()
}
