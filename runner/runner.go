// Package runner steps a scene on a fixed clock, for windowless runs and as the window host's model
package runner

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/lixenwraith/cloth/cloth"
	"github.com/lixenwraith/cloth/config"
	"github.com/lixenwraith/cloth/parameter"
)

// Sim couples an engine with the scene it was built from
type Sim struct {
	Scene     *config.Scene
	Engine    *cloth.Engine
	Colliders []cloth.Collider
}

// New builds the engine for scene
func New(scene *config.Scene) (*Sim, error) {
	e, err := cloth.New(scene.Cloth)
	if err != nil {
		return nil, fmt.Errorf("build cloth: %w", err)
	}
	return &Sim{Scene: scene, Engine: e, Colliders: scene.Colliders()}, nil
}

// Step advances one clamped engine step and returns the stats after it
func (s *Sim) Step(dt float64, ptr cloth.Pointer) cloth.Stats {
	s.Engine.Update(math.Min(dt, parameter.MaxTimeStep), ptr, s.Colliders)
	return s.Engine.Stats()
}

// HeadlessConfig controls the windowless runner
type HeadlessConfig struct {
	Hz    int
	Ticks uint64 // 0 runs until ctx is done

	// LogEvery logs stats each n ticks, 0 disables
	LogEvery uint64
}

// RunHeadless steps s once per tick until Ticks is reached or ctx ends
// dt is the nominal tick period, not wall time, so runs are reproducible
func RunHeadless(ctx context.Context, s *Sim, cfg HeadlessConfig) (cloth.Stats, error) {
	if cfg.Hz <= 0 {
		cfg.Hz = parameter.HeadlessHz
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return s.Engine.Stats(), fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	dt := d.Seconds()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return s.Engine.Stats(), ctx.Err()
		case <-t.C:
			st := s.Step(dt, cloth.Pointer{})
			tick++
			if cfg.LogEvery > 0 && tick%cfg.LogEvery == 0 {
				log.Printf("tick %d: t=%.2fs torn=%d constraints=%d", tick, st.SimTime, st.TornTotal, st.Constraints)
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return st, nil
			}
		}
	}
}
