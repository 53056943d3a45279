package parameter

// Orbit camera
const (
	// CameraDistance is the initial eye distance from the target
	CameraDistance = 3.0

	// CameraDistanceMin/Max bound zoom
	CameraDistanceMin = 1.2
	CameraDistanceMax = 12.0

	// CameraPitch is the initial elevation in radians
	CameraPitch = 0.15

	// CameraPitchLimit clamps pitch in radians to avoid flipping over the pole
	CameraPitchLimit = 1.4

	// CameraFOV is the vertical field of view in radians (75 degrees)
	CameraFOV = 1.3089969389957472

	// CameraNear rejects points closer than this to the eye
	CameraNear = 0.1

	// CameraOrbitStep and CameraZoomStep are per-keypress increments
	CameraOrbitStep = 0.12
	CameraZoomStep  = 0.25
)

// Camera spring smoothing (harmonica)
const (
	// CameraSpringFPS is the update rate the spring coefficients are computed for
	CameraSpringFPS = 60

	// CameraSpringFrequency is angular frequency; higher settles faster
	CameraSpringFrequency = 6.0

	// CameraSpringDamping is the damping ratio; 1.0 is critical
	CameraSpringDamping = 0.9
)

// Terminal cells are about twice as tall as wide
const TerminalCellAspect = 2.0
