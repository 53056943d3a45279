package config

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/cloth/cloth"
	"github.com/lixenwraith/cloth/vmath"
)

// DefaultPreset is used when neither the file nor the caller names one
const DefaultPreset = "hero"

// presetOrder is the cycling order hosts use
var presetOrder = []string{"hero", "flag", "water", "sail"}

// hero is the reference cloth every other preset is derived from
func hero() cloth.Config {
	c := cloth.DefaultConfig()
	c.Gravity = -9.81
	c.WindForce = 0.6
	c.WindDirection = vmath.V3F(0.25, 0, 1)
	return c
}

var presets = map[string]func() cloth.Config{
	"hero": hero,
	"flag": func() cloth.Config {
		c := hero()
		c.WindForce = 1.2
		c.WindDirection = vmath.V3F(0.6, 0, 1)
		c.PinMode = cloth.PinTopEdge
		c.SolverIterations = 6
		return c
	},
	"water": func() cloth.Config {
		c := hero()
		c.Orientation = cloth.Horizontal
		c.GridSize = 64
		c.WindForce = 0.4
		c.WindDirection = vmath.V3F(0, 0, 1)
		c.StructuralStiffness = 0.6
		c.ShearStiffness = 0.5
		c.BendStiffness = 0.15
		c.Dampness = 0.02
		c.PinMode = cloth.PinNone
		c.SolverIterations = 6
		return c
	},
	"sail": func() cloth.Config {
		c := hero()
		c.GridSize = 48
		c.WindForce = 0.9
		c.WindDirection = vmath.V3F(0.25, 0, 1.3)
		c.PinMode = cloth.PinCorners
		c.SolverIterations = 5
		return c
	},
}

// Preset returns a fresh copy of the named cloth configuration
func Preset(name string) (cloth.Config, error) {
	build, ok := presets[name]
	if !ok {
		return cloth.Config{}, fmt.Errorf("unknown preset %q (have %v)", name, presetOrder)
	}
	return build(), nil
}

// PresetNames lists presets in cycling order
func PresetNames() []string {
	return slices.Clone(presetOrder)
}

// NextPreset returns the preset after name, wrapping; unknown names restart the cycle
func NextPreset(name string) string {
	i := slices.Index(presetOrder, name)
	return presetOrder[(i+1)%len(presetOrder)]
}

// PresetColor is the cloth material colour a preset ships with
func PresetColor(name string) string {
	if name == "water" {
		return "#2f7fff"
	}
	return "#8844aa"
}

// PresetScale is the display scale a host applies for a cloth orientation
func PresetScale(o cloth.Orientation) float64 {
	if o == cloth.Horizontal {
		return 1.0
	}
	return 1.2
}
