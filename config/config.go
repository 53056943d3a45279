// Package config loads scene files: a cloth configuration, host options and scene objects
package config

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cloth/cloth"
	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/toml"
	"github.com/lixenwraith/cloth/vmath"
)

//go:embed default.toml
var defaultScene []byte

// DefaultSource names the embedded scene in Scene.Source
const DefaultSource = "embedded"

// File mirrors the on-disk layout; pointer fields distinguish "absent" from zero
type File struct {
	Cloth   ClothSection    `toml:"cloth"`
	Host    HostSection     `toml:"host"`
	Objects []ObjectSection `toml:"object"`
}

type ClothSection struct {
	Preset string `toml:"preset,omitempty"`

	GridSize    *int     `toml:"grid_size"`
	Width       *float64 `toml:"width"`
	Height      *float64 `toml:"height"`
	Layers      *int     `toml:"layers"`
	Orientation *string  `toml:"orientation"`
	Mass        *float64 `toml:"mass"`

	StructuralStiffness *float64 `toml:"structural_stiffness"`
	ShearStiffness      *float64 `toml:"shear_stiffness"`
	BendStiffness       *float64 `toml:"bend_stiffness"`
	Dampness            *float64 `toml:"dampness"`

	Gravity       *float64  `toml:"gravity"`
	WindForce     *float64  `toml:"wind_force"`
	WindDirection []float64 `toml:"wind_direction,omitempty"`
	AirResistance *float64  `toml:"air_resistance"`

	TearThreshold    *float64 `toml:"tear_threshold"`
	SelfCollision    *bool    `toml:"self_collision"`
	Thickness        *float64 `toml:"thickness"`
	SolverIterations *int     `toml:"solver_iterations"`

	PinMode    *string `toml:"pin_mode"`
	CustomPins []int   `toml:"custom_pins,omitempty"`

	SelfCollisionGridLimit *int     `toml:"self_collision_grid_limit"`
	GroundHeight           *float64 `toml:"ground_height"`
	GroundBounce           *float64 `toml:"ground_bounce"`
	PointerRadius          *float64 `toml:"pointer_radius"`
}

type HostSection struct {
	PointerForce *float64 `toml:"pointer_force"`
	DragMode     *string  `toml:"drag_mode"`
	Scale        *float64 `toml:"scale"`
	Color        *string  `toml:"color"`
}

type ObjectSection struct {
	Kind     string    `toml:"kind"`
	Position []float64 `toml:"position,omitempty"`
	Radius   *float64  `toml:"radius"`
	Size     []float64 `toml:"size,omitempty"`
	Height   *float64  `toml:"height"`
	Visible  *bool     `toml:"visible"`
}

// Host holds viewer options that never reach the engine
type Host struct {
	PointerForce float64
	DragMode     cloth.DragMode
	Scale        float64
	Color        string
}

// Scene is a fully resolved file
type Scene struct {
	Preset  string
	Cloth   cloth.Config
	Host    Host
	Objects []cloth.SceneObject

	// Source is the path the scene came from, or DefaultSource
	Source string
	// Unknown lists keys in the file that nothing consumed
	Unknown []string
}

// Colliders converts the scene's objects for Engine.Update
func (s *Scene) Colliders() []cloth.Collider {
	return cloth.CollidersFrom(s.Objects)
}

// Parse decodes and resolves a scene document
// preset, when non-empty, replaces the file's own preset choice
func Parse(data []byte, preset string) (*Scene, error) {
	var f File
	meta, err := toml.UnmarshalMeta(data, &f)
	if err != nil {
		return nil, err
	}
	s, err := f.Resolve(preset)
	if err != nil {
		return nil, err
	}
	s.Unknown = meta.Undecoded
	return s, nil
}

// Default returns the embedded scene
func Default(preset string) (*Scene, error) {
	s, err := Parse(defaultScene, preset)
	if err != nil {
		return nil, fmt.Errorf("embedded scene: %w", err)
	}
	s.Source = DefaultSource
	return s, nil
}

// LoadFile reads and resolves a scene from path
func LoadFile(path, preset string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data, preset)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	s.Source = path
	return s, nil
}

// LoadAuto resolves the scene by priority: customPath, then ./cloth.toml, then the embedded default
func LoadAuto(customPath, preset string) (*Scene, error) {
	if customPath != "" {
		return LoadFile(customPath, preset)
	}
	if fileExists(parameter.DefaultConfigFile) {
		return LoadFile(parameter.DefaultConfigFile, preset)
	}
	return Default(preset)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Resolve starts from the selected preset and overlays every field present in the file
func (f *File) Resolve(preset string) (*Scene, error) {
	name := preset
	if name == "" {
		name = f.Cloth.Preset
	}
	if name == "" {
		name = DefaultPreset
	}
	cfg, err := Preset(name)
	if err != nil {
		return nil, err
	}

	if err := f.Cloth.overlay(&cfg); err != nil {
		return nil, fmt.Errorf("[cloth]: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("[cloth]: %w", err)
	}

	host, err := f.Host.resolve(name, cfg.Orientation)
	if err != nil {
		return nil, fmt.Errorf("[host]: %w", err)
	}

	objects := make([]cloth.SceneObject, 0, len(f.Objects))
	for i, o := range f.Objects {
		obj, err := o.resolve()
		if err != nil {
			return nil, fmt.Errorf("[[object]] #%d: %w", i+1, err)
		}
		objects = append(objects, obj)
	}

	return &Scene{Preset: name, Cloth: cfg, Host: host, Objects: objects}, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func vec3(v []float64, what string) (vmath.Vec3F, error) {
	if len(v) != 3 {
		return vmath.Vec3F{}, fmt.Errorf("%s needs 3 components, got %d", what, len(v))
	}
	return vmath.V3F(v[0], v[1], v[2]), nil
}

func (c *ClothSection) overlay(cfg *cloth.Config) error {
	set(&cfg.GridSize, c.GridSize)
	set(&cfg.Width, c.Width)
	set(&cfg.Height, c.Height)
	set(&cfg.Layers, c.Layers)
	set(&cfg.Mass, c.Mass)
	set(&cfg.StructuralStiffness, c.StructuralStiffness)
	set(&cfg.ShearStiffness, c.ShearStiffness)
	set(&cfg.BendStiffness, c.BendStiffness)
	set(&cfg.Dampness, c.Dampness)
	set(&cfg.Gravity, c.Gravity)
	set(&cfg.WindForce, c.WindForce)
	set(&cfg.AirResistance, c.AirResistance)
	set(&cfg.TearThreshold, c.TearThreshold)
	set(&cfg.SelfCollision, c.SelfCollision)
	set(&cfg.Thickness, c.Thickness)
	set(&cfg.SolverIterations, c.SolverIterations)
	set(&cfg.SelfCollisionGridLimit, c.SelfCollisionGridLimit)
	set(&cfg.GroundHeight, c.GroundHeight)
	set(&cfg.GroundBounce, c.GroundBounce)
	set(&cfg.PointerRadius, c.PointerRadius)

	if c.WindDirection != nil {
		dir, err := vec3(c.WindDirection, "wind_direction")
		if err != nil {
			return err
		}
		cfg.WindDirection = dir
	}
	if c.Orientation != nil {
		o, err := cloth.ParseOrientation(*c.Orientation)
		if err != nil {
			return err
		}
		cfg.Orientation = o
	}
	if c.PinMode != nil {
		m, err := cloth.ParsePinMode(*c.PinMode)
		if err != nil {
			return err
		}
		cfg.PinMode = m
	}
	if c.CustomPins != nil {
		cfg.CustomPins = c.CustomPins
	}
	return nil
}

func (h *HostSection) resolve(preset string, o cloth.Orientation) (Host, error) {
	out := Host{
		PointerForce: parameter.PointerForce,
		DragMode:     cloth.DragMove,
		Scale:        PresetScale(o),
		Color:        PresetColor(preset),
	}
	set(&out.PointerForce, h.PointerForce)
	set(&out.Scale, h.Scale)
	set(&out.Color, h.Color)
	if _, err := colorful.Hex(out.Color); err != nil {
		return Host{}, fmt.Errorf("color %q: %w", out.Color, err)
	}
	if h.DragMode != nil {
		m, err := cloth.ParseDragMode(*h.DragMode)
		if err != nil {
			return Host{}, err
		}
		out.DragMode = m
	}
	if out.Scale <= 0 {
		return Host{}, fmt.Errorf("scale %g: must be positive", out.Scale)
	}
	return out, nil
}

func (o *ObjectSection) resolve() (cloth.SceneObject, error) {
	kind, err := cloth.ParseObjectKind(o.Kind)
	if err != nil {
		return cloth.SceneObject{}, err
	}
	obj := cloth.SceneObject{Kind: kind, Visible: true}
	if o.Position != nil {
		if obj.Position, err = vec3(o.Position, "position"); err != nil {
			return cloth.SceneObject{}, err
		}
	}
	if o.Size != nil {
		if obj.Size, err = vec3(o.Size, "size"); err != nil {
			return cloth.SceneObject{}, err
		}
	}
	set(&obj.Radius, o.Radius)
	set(&obj.Height, o.Height)
	set(&obj.Visible, o.Visible)
	return obj, nil
}

// Snapshot captures a running scene as a File that reloads to the same state
func Snapshot(cfg cloth.Config, host Host, objects []cloth.SceneObject) File {
	orientation := cfg.Orientation.String()
	pinMode := cfg.PinMode.String()
	dragMode := host.DragMode.String()

	f := File{
		Cloth: ClothSection{
			GridSize:               &cfg.GridSize,
			Width:                  &cfg.Width,
			Height:                 &cfg.Height,
			Layers:                 &cfg.Layers,
			Orientation:            &orientation,
			Mass:                   &cfg.Mass,
			StructuralStiffness:    &cfg.StructuralStiffness,
			ShearStiffness:         &cfg.ShearStiffness,
			BendStiffness:          &cfg.BendStiffness,
			Dampness:               &cfg.Dampness,
			Gravity:                &cfg.Gravity,
			WindForce:              &cfg.WindForce,
			WindDirection:          []float64{cfg.WindDirection.X, cfg.WindDirection.Y, cfg.WindDirection.Z},
			AirResistance:          &cfg.AirResistance,
			TearThreshold:          &cfg.TearThreshold,
			SelfCollision:          &cfg.SelfCollision,
			Thickness:              &cfg.Thickness,
			SolverIterations:       &cfg.SolverIterations,
			PinMode:                &pinMode,
			CustomPins:             cfg.CustomPins,
			SelfCollisionGridLimit: &cfg.SelfCollisionGridLimit,
			GroundHeight:           &cfg.GroundHeight,
			GroundBounce:           &cfg.GroundBounce,
			PointerRadius:          &cfg.PointerRadius,
		},
		Host: HostSection{
			PointerForce: &host.PointerForce,
			DragMode:     &dragMode,
			Scale:        &host.Scale,
			Color:        &host.Color,
		},
	}
	for _, o := range objects {
		sec := ObjectSection{
			Kind:     o.Kind.String(),
			Position: []float64{o.Position.X, o.Position.Y, o.Position.Z},
			Visible:  &o.Visible,
		}
		switch o.Kind {
		case cloth.ObjectSphere:
			sec.Radius = &o.Radius
		case cloth.ObjectBox:
			sec.Size = []float64{o.Size.X, o.Size.Y, o.Size.Z}
		case cloth.ObjectCylinder:
			sec.Radius = &o.Radius
			sec.Height = &o.Height
		}
		f.Objects = append(f.Objects, sec)
	}
	return f
}

// Write encodes f as TOML
func (f File) Write(w io.Writer) error {
	data, err := toml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Save writes f to path, replacing any existing file
func (f File) Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	if err := f.Write(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
