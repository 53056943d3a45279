package parameter

import "time"

// Host loop timing
const (
	// FrameUpdateInterval is the host frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxTimeStep is the largest dt in seconds a host passes to Update
	// Explicit Verlet diverges for large steps, the engine does not substep
	MaxTimeStep = 0.016

	// HeadlessHz is the default tick rate for windowless runs
	HeadlessHz = 60
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "cloth.log"

	// MaxLogSize triggers rotation of the previous log on startup (10 MB)
	MaxLogSize = 10 * 1024 * 1024
)

// Config file lookup
const (
	// DefaultConfigFile is checked in the working directory when no -config is given
	DefaultConfigFile = "cloth.toml"
)

// Sandbox snapshot output, written to the working directory
const SnapshotFile = "cloth-snapshot.toml"

// SandboxWindForce is used when wind is toggled on for a preset without any
const SandboxWindForce = 0.6
