// cloth-sandbox is an interactive terminal cloth simulator
//
// Keys: arrows orbit, +/- zoom, space pause, . single step, r reset, p next preset,
// m drag mode, n pin mode, w wind, g self collision, c compact, s save snapshot,
// a mute, q quit. Drag with the left mouse button.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cloth/audio"
	"github.com/lixenwraith/cloth/config"
)

var (
	configFlag = flag.String("config", "", "scene file (default ./cloth.toml, then the embedded scene)")
	presetFlag = flag.String("preset", "", "preset: hero, flag, water, sail (overrides the file)")
	debugFlag  = flag.Bool("debug", false, "write logs to logs/cloth.log")
	muteFlag   = flag.Bool("mute", false, "start with audio muted")
)

func main() {
	var screen tcell.Screen

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCLOTH-SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	scene, err := config.LoadAuto(*configFlag, *presetFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cloth-sandbox: %v\n", err)
		os.Exit(1)
	}
	for _, key := range scene.Unknown {
		log.Printf("%s: ignoring unknown key %s", scene.Source, key)
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the sandbox runs silent
		log.Printf("Audio initialization failed: %v", err)
	} else {
		defer sound.Cleanup()
	}
	sound.SetMuted(*muteFlag)

	sb, err := NewSandbox(screen, sound, *configFlag, scene)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "cloth-sandbox: %v\n", err)
		os.Exit(1)
	}
	sb.Run()
}
