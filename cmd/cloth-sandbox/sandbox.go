package main

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cloth/audio"
	"github.com/lixenwraith/cloth/cloth"
	"github.com/lixenwraith/cloth/config"
	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/view"
	"github.com/lixenwraith/cloth/vmath"
)

const (
	hudRows       = 1
	statusTimeout = 3 * time.Second
	pinMarker     = 'o'
)

// Sandbox is the interactive terminal host: one engine, an orbit camera and mouse drag
type Sandbox struct {
	screen tcell.Screen
	sound  *audio.SoundManager

	configPath string
	scene      *config.Scene
	engine     *cloth.Engine
	colliders  []cloth.Collider

	camera  *view.Camera
	palette view.Palette
	frame   view.Scene
	raster  view.Raster

	drag           view.DragPlane
	dragMode       cloth.DragMode
	mouseX, mouseY float64
	cuePending     bool

	paused     bool
	stepOnce   bool
	savedWind  float64
	pinsEdited bool

	status      string
	statusUntil time.Time
}

// NewSandbox builds the engine for scene; configPath is reused when cycling presets
func NewSandbox(screen tcell.Screen, sound *audio.SoundManager, configPath string, scene *config.Scene) (*Sandbox, error) {
	s := &Sandbox{
		screen:     screen,
		sound:      sound,
		configPath: configPath,
	}
	s.drag.Release()
	if err := s.load(scene); err != nil {
		return nil, err
	}
	return s, nil
}

// load swaps in a resolved scene, rebuilding engine, palette and camera target
func (s *Sandbox) load(scene *config.Scene) error {
	e, err := cloth.New(scene.Cloth)
	if err != nil {
		return err
	}
	pal, err := view.NewPalette(scene.Host.Color)
	if err != nil {
		return err
	}

	s.scene = scene
	s.engine = e
	s.colliders = scene.Colliders()
	s.palette = pal
	s.dragMode = scene.Host.DragMode
	s.savedWind = scene.Cloth.WindForce
	s.pinsEdited = false
	s.drag.Release()

	target := vmath.V3FScale(centroid(e.Particles()), scene.Host.Scale)
	if s.camera == nil {
		s.camera = view.NewCamera(target)
	} else {
		s.camera.Target = target
	}

	s.sound.SetWind(scene.Cloth.WindForce)
	log.Printf("loaded preset %s from %s: %d particles, %d constraints",
		scene.Preset, scene.Source, e.Len(), len(e.Constraints()))
	return nil
}

func centroid(ps []cloth.Particle) vmath.Vec3F {
	var sum vmath.Vec3F
	for i := range ps {
		sum = vmath.V3FAdd(sum, ps[i].Position)
	}
	if len(ps) == 0 {
		return sum
	}
	return vmath.V3FScale(sum, 1/float64(len(ps)))
}

func (s *Sandbox) notify(format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
	s.statusUntil = time.Now().Add(statusTimeout)
	log.Print(s.status)
}

func (s *Sandbox) viewport() view.Viewport {
	w, h := s.screen.Size()
	return view.Viewport{
		Width:      float64(w),
		Height:     float64(max(h-hudRows, 1)),
		CellAspect: parameter.TerminalCellAspect,
		Scale:      s.scene.Host.Scale,
	}
}

func (s *Sandbox) projector() view.Projector {
	return s.camera.Projector(s.viewport())
}

// HandleEvent applies one input event; false means quit
func (s *Sandbox) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev)
	case *tcell.EventMouse:
		s.handleMouse(ev)
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *Sandbox) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		s.camera.Orbit(-parameter.CameraOrbitStep, 0)
	case tcell.KeyRight:
		s.camera.Orbit(parameter.CameraOrbitStep, 0)
	case tcell.KeyUp:
		s.camera.Orbit(0, parameter.CameraOrbitStep)
	case tcell.KeyDown:
		s.camera.Orbit(0, -parameter.CameraOrbitStep)
	case tcell.KeyRune:
		return s.handleRune(ev.Rune())
	}
	return true
}

func (s *Sandbox) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case '+', '=':
		s.camera.Zoom(1)
	case '-':
		s.camera.Zoom(-1)
	case ' ':
		s.paused = !s.paused
		if s.paused {
			s.sound.StopWind()
		} else {
			s.sound.SetWind(s.engine.Config().WindForce)
		}
	case '.':
		s.stepOnce = true
	case 'r':
		s.engine.Reset()
		s.pinsEdited = false
		s.notify("reset")
	case 'p':
		next := config.NextPreset(s.scene.Preset)
		scene, err := config.LoadAuto(s.configPath, next)
		if err == nil {
			err = s.load(scene)
		}
		if err != nil {
			s.notify("preset %s: %v", next, err)
		} else {
			s.notify("preset %s", next)
		}
	case 'm':
		s.dragMode = s.dragMode.Next()
		s.notify("drag mode %s", s.dragMode)
	case 'n':
		mode := nextPinMode(s.engine.Config().PinMode)
		s.engine.UpdateProperties(cloth.Overrides{PinMode: cloth.Ptr(mode)})
		s.pinsEdited = false
		s.notify("pins %s", mode)
	case 'w':
		s.toggleWind()
	case 'g':
		on := !s.engine.Config().SelfCollision
		s.engine.UpdateProperties(cloth.Overrides{SelfCollision: cloth.Ptr(on)})
		s.notify("self collision %v", on)
	case 'c':
		s.notify("compacted %d torn constraints", s.engine.Compact())
	case 's':
		s.saveSnapshot(parameter.SnapshotFile)
	case 'a':
		s.sound.SetMuted(!s.sound.Muted())
		s.notify("muted %v", s.sound.Muted())
	}
	return true
}

// nextPinMode cycles the fixed policies; a custom set returns to the top edge
func nextPinMode(m cloth.PinMode) cloth.PinMode {
	switch m {
	case cloth.PinTopEdge:
		return cloth.PinCorners
	case cloth.PinCorners:
		return cloth.PinNone
	}
	return cloth.PinTopEdge
}

func (s *Sandbox) toggleWind() {
	force := 0.0
	if s.engine.Config().WindForce == 0 {
		force = s.savedWind
		if force == 0 {
			force = parameter.SandboxWindForce
		}
	} else {
		s.savedWind = s.engine.Config().WindForce
	}
	s.engine.UpdateProperties(cloth.Overrides{WindForce: cloth.Ptr(force)})
	s.sound.SetWind(force)
	s.notify("wind %.2f", force)
}

// saveSnapshot writes the live configuration; hand-edited pins are saved as a custom set
func (s *Sandbox) saveSnapshot(path string) {
	cfg := s.engine.Config()
	if s.pinsEdited {
		cfg.PinMode = cloth.PinCustom
		cfg.CustomPins = s.engine.PinnedIndices()
	}
	host := s.scene.Host
	host.DragMode = s.dragMode
	if err := config.Snapshot(cfg, host, s.scene.Objects).Save(path); err != nil {
		s.notify("save failed: %v", err)
		return
	}
	s.notify("saved %s", path)
}

func (s *Sandbox) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	s.mouseX, s.mouseY = float64(x)+0.5, float64(y)+0.5

	if ev.Buttons()&tcell.Button1 == 0 {
		s.drag.Release()
		return
	}
	if !s.drag.Active() {
		if s.drag.Grab(s.projector(), s.mouseX, s.mouseY, s.engine.Particles(), parameter.PointerCaptureRadius) {
			s.cuePending = true
		}
	}
}

// Tick advances camera smoothing and, unless paused, one engine step
func (s *Sandbox) Tick(dt float64) {
	s.camera.Step()

	if s.paused && !s.stepOnce {
		return
	}
	s.stepOnce = false

	dt = math.Min(dt, parameter.MaxTimeStep)
	ptr := cloth.Pointer{Force: s.scene.Host.PointerForce, Mode: s.dragMode}
	if s.drag.Active() {
		ptr.Position = s.drag.Pointer(s.projector(), s.mouseX, s.mouseY)
	}
	s.engine.Update(dt, ptr, s.colliders)

	st := s.engine.Stats()
	if st.TornLastStep > 0 {
		s.sound.PlayTear(st.TornLastStep)
		log.Printf("step %d: %d constraints torn (%d total)", st.Steps, st.TornLastStep, st.TornTotal)
	}
	if s.cuePending && st.PointerTarget >= 0 {
		s.cuePending = false
		switch st.PointerApplied {
		case cloth.DragPin:
			s.pinsEdited = true
			s.sound.PlayPin()
		case cloth.DragUnpin:
			s.pinsEdited = true
			s.sound.PlayUnpin()
		}
	}
}

// Draw renders the cloth, scene objects and the HUD row
func (s *Sandbox) Draw() {
	w, h := s.screen.Size()
	s.screen.Clear()

	_, _, dist := s.camera.Angles()
	s.frame.Build(s.engine, s.scene.Objects, s.projector(), s.palette, dist-1.5, dist+2.5)
	s.raster.Resize(w, max(h-hudRows, 0))
	s.raster.Draw(&s.frame, pinMarker)

	for y := 0; y < s.raster.H; y++ {
		for x := 0; x < s.raster.W; x++ {
			c := s.raster.At(x, y)
			if c.Rune == 0 {
				continue
			}
			r, g, b := view.RGB8(c.Color)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			s.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}

	s.drawText(0, h-1, s.hud(), tcell.StyleDefault.Reverse(true))
	s.screen.Show()
}

func (s *Sandbox) hud() string {
	cfg := s.engine.Config()
	st := s.engine.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, " %s | drag %s | pins %s | wind %.2f | torn %d | t %.1fs",
		s.scene.Preset, s.dragMode, cfg.PinMode, cfg.WindForce, st.TornTotal, st.SimTime)
	if s.paused {
		b.WriteString(" | paused")
	}
	if s.status != "" && time.Now().Before(s.statusUntil) {
		b.WriteString(" | ")
		b.WriteString(s.status)
	}
	return b.String()
}

func (s *Sandbox) drawText(x, y int, text string, style tcell.Style) {
	w, _ := s.screen.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
}

// Run drives input and frames until the user quits
func (s *Sandbox) Run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 256)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !s.HandleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			s.Tick(now.Sub(last).Seconds())
			last = now
			s.Draw()
		}
	}
}
