package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/cloth/cloth"
	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/runner"
	"github.com/lixenwraith/cloth/view"
	"github.com/lixenwraith/cloth/vmath"
)

const (
	windowWidth  = 1024
	windowHeight = 768

	markerRadius = 3
	lineWidth    = 1
)

var (
	errQuit    = errors.New("quit")
	background = color.RGBA{R: 13, G: 13, B: 20, A: 255}
)

// game adapts a runner.Sim to ebiten.Game
type game struct {
	sim     *runner.Sim
	camera  *view.Camera
	palette view.Palette
	frame   view.Scene

	drag     view.DragPlane
	dragMode cloth.DragMode
	paused   bool

	width, height int
}

func newGame(sim *runner.Sim) (*game, error) {
	pal, err := view.NewPalette(sim.Scene.Host.Color)
	if err != nil {
		return nil, err
	}
	var sum vmath.Vec3F
	ps := sim.Engine.Particles()
	for i := range ps {
		sum = vmath.V3FAdd(sum, ps[i].Position)
	}
	target := vmath.V3FScale(sum, sim.Scene.Host.Scale/float64(max(len(ps), 1)))

	g := &game{
		sim:      sim,
		camera:   view.NewCamera(target),
		palette:  pal,
		dragMode: sim.Scene.Host.DragMode,
		width:    windowWidth,
		height:   windowHeight,
	}
	g.drag.Release()
	return g, nil
}

func (g *game) projector() view.Projector {
	return g.camera.Projector(view.Viewport{
		Width:      float64(g.width),
		Height:     float64(g.height),
		CellAspect: 1,
		Scale:      g.sim.Scene.Host.Scale,
	})
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return errQuit
	}

	orbit := parameter.CameraOrbitStep / 4
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.Orbit(-orbit, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.Orbit(orbit, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Orbit(0, orbit)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Orbit(0, -orbit)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.camera.Zoom(dy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.dragMode = g.dragMode.Next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Engine.Reset()
	}

	ptr := cloth.Pointer{Force: g.sim.Scene.Host.PointerForce, Mode: g.dragMode}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		p := g.projector()
		if !g.drag.Active() {
			g.drag.Grab(p, float64(cx), float64(cy), g.sim.Engine.Particles(), parameter.PointerCaptureRadius)
		}
		ptr.Position = g.drag.Pointer(p, float64(cx), float64(cy))
	} else {
		g.drag.Release()
	}

	g.camera.Step()
	if !g.paused {
		g.sim.Step(1/float64(ebiten.TPS()), ptr)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	_, _, dist := g.camera.Angles()
	g.frame.Build(g.sim.Engine, g.sim.Scene.Objects, g.projector(), g.palette, dist-1.5, dist+2.5)

	for _, s := range g.frame.Segments {
		vector.StrokeLine(screen, float32(s.A.X), float32(s.A.Y), float32(s.B.X), float32(s.B.Y),
			lineWidth, s.Color, true)
	}
	for _, m := range g.frame.Markers {
		vector.DrawFilledCircle(screen, float32(m.At.X), float32(m.At.Y), markerRadius, m.Color, true)
	}

	cfg := g.sim.Engine.Config()
	st := g.sim.Engine.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s | drag %s | pins %s | torn %d | %.0f fps",
		g.sim.Scene.Preset, g.dragMode, cfg.PinMode, st.TornTotal, ebiten.ActualFPS()))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
