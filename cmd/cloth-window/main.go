// cloth-window renders the cloth in a desktop window, or steps it headless for soak runs
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/cloth/config"
	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/runner"
)

var (
	configFlag   = flag.String("config", "", "scene file (default ./cloth.toml, then the embedded scene)")
	presetFlag   = flag.String("preset", "", "preset: hero, flag, water, sail (overrides the file)")
	headlessFlag = flag.Bool("headless", false, "step without opening a window")
	ticksFlag    = flag.Uint64("ticks", 0, "headless: stop after this many steps (0 = until interrupted)")
	hzFlag       = flag.Int("hz", parameter.HeadlessHz, "headless: steps per second")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	scene, err := config.LoadAuto(*configFlag, *presetFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cloth-window: %v\n", err)
		os.Exit(1)
	}
	for _, key := range scene.Unknown {
		log.Printf("%s: ignoring unknown key %s", scene.Source, key)
	}

	sim, err := runner.New(scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cloth-window: %v\n", err)
		os.Exit(1)
	}
	log.Printf("preset %s from %s: %d particles", scene.Preset, scene.Source, sim.Engine.Len())

	if *headlessFlag {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		st, err := runner.RunHeadless(ctx, sim, runner.HeadlessConfig{
			Hz:       *hzFlag,
			Ticks:    *ticksFlag,
			LogEvery: uint64(max(*hzFlag, 1)),
		})
		log.Printf("done: %d steps, %.2fs simulated, %d torn", st.Steps, st.SimTime, st.TornTotal)
		if err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "cloth-window: %v\n", err)
			os.Exit(1)
		}
		return
	}

	g, err := newGame(sim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cloth-window: %v\n", err)
		os.Exit(1)
	}
	ebiten.SetWindowTitle("Cloth (" + scene.Preset + ")")
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetTPS(parameter.HeadlessHz)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
