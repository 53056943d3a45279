// Package view turns engine state into screen space for the hosts: an orbit camera,
// perspective projection, pointer picking and the strain palette
package view

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/cloth/parameter"
	"github.com/lixenwraith/cloth/vmath"
)

// Camera orbits Target; Orbit and Zoom move goal values, Step eases toward them
type Camera struct {
	Target vmath.Vec3F
	FOV    float64

	goalYaw, goalPitch, goalDist float64

	yaw, pitch, dist    float64
	vYaw, vPitch, vDist float64

	spring harmonica.Spring
}

// NewCamera looks at target from the default distance, slightly above
func NewCamera(target vmath.Vec3F) *Camera {
	c := &Camera{
		Target:    target,
		FOV:       parameter.CameraFOV,
		goalDist:  parameter.CameraDistance,
		goalPitch: parameter.CameraPitch,
		spring: harmonica.NewSpring(
			harmonica.FPS(parameter.CameraSpringFPS),
			parameter.CameraSpringFrequency,
			parameter.CameraSpringDamping,
		),
	}
	c.Snap()
	return c
}

// Orbit rotates the goal; pitch is clamped short of the poles
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.goalYaw += dYaw
	c.goalPitch = clamp(c.goalPitch+dPitch, -parameter.CameraPitchLimit, parameter.CameraPitchLimit)
}

// Zoom moves the goal distance by steps of CameraZoomStep; positive steps move closer
func (c *Camera) Zoom(steps float64) {
	c.goalDist = clamp(c.goalDist-steps*parameter.CameraZoomStep, parameter.CameraDistanceMin, parameter.CameraDistanceMax)
}

// Step advances the smoothing springs by one frame
func (c *Camera) Step() {
	c.yaw, c.vYaw = c.spring.Update(c.yaw, c.vYaw, c.goalYaw)
	c.pitch, c.vPitch = c.spring.Update(c.pitch, c.vPitch, c.goalPitch)
	c.dist, c.vDist = c.spring.Update(c.dist, c.vDist, c.goalDist)
}

// Snap jumps to the goal with zero velocity
func (c *Camera) Snap() {
	c.yaw, c.pitch, c.dist = c.goalYaw, c.goalPitch, c.goalDist
	c.vYaw, c.vPitch, c.vDist = 0, 0, 0
}

// Settled reports whether the eased values are within eps of the goal
func (c *Camera) Settled(eps float64) bool {
	return math.Abs(c.yaw-c.goalYaw) < eps &&
		math.Abs(c.pitch-c.goalPitch) < eps &&
		math.Abs(c.dist-c.goalDist) < eps
}

// Angles returns the current eased yaw, pitch and distance
func (c *Camera) Angles() (yaw, pitch, dist float64) {
	return c.yaw, c.pitch, c.dist
}

// Eye is the current camera position
func (c *Camera) Eye() vmath.Vec3F {
	// +Z tilted up by pitch, then swung around Y by yaw
	offset := vmath.V3FRotateY(vmath.V3FRotateX(vmath.V3F(0, 0, 1), -c.pitch), c.yaw)
	return vmath.V3FAddScaled(c.Target, offset, c.dist)
}

// Basis returns the orthonormal right, up and forward vectors of the view
func (c *Camera) Basis() (right, up, forward vmath.Vec3F) {
	forward = vmath.V3FNormalize(vmath.V3FSub(c.Target, c.Eye()))
	right = vmath.V3FNormalize(vmath.V3FCross(forward, vmath.V3F(0, 1, 0)))
	up = vmath.V3FCross(right, forward)
	return right, up, forward
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
