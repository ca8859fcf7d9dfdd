package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/kestrelcg/raster3d/pkg/math3d"
)

// spinAxis integrates one rotation axis: velocity feeds position each frame
// and is spring-damped back toward zero so a flick coasts to a stop.
type spinAxis struct {
	position float64
	velocity float64

	spring   harmonica.Spring
	velAccel float64 // the spring's own internal velocity
}

func newSpinAxis(fps int) spinAxis {
	// Frequency 4.0 with damping 1.0: critically damped, no overshoot.
	return spinAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *spinAxis) update() {
	a.position += a.velocity
	a.velocity, a.velAccel = a.spring.Update(a.velocity, a.velAccel, 0)
}

// spinState holds the model's three spring-damped rotation axes.
type spinState struct {
	pitch, yaw, roll spinAxis
	fps              int
}

func newSpinState(fps int) *spinState {
	return &spinState{
		pitch: newSpinAxis(fps),
		yaw:   newSpinAxis(fps),
		roll:  newSpinAxis(fps),
		fps:   fps,
	}
}

func (s *spinState) update() {
	s.pitch.update()
	s.yaw.update()
	s.roll.update()
}

func (s *spinState) applyImpulse(pitch, yaw, roll float64) {
	s.pitch.velocity += pitch
	s.yaw.velocity += yaw
	s.roll.velocity += roll
}

func (s *spinState) reset() {
	s.pitch = newSpinAxis(s.fps)
	s.yaw = newSpinAxis(s.fps)
	s.roll = newSpinAxis(s.fps)
}

// viewState is the UI-side toggles: what to draw and where the light sits.
type viewState struct {
	textureEnabled bool
	wireframe      bool
	lightMode      bool
	lightDir       math3d.Vec3 // direction from the scene toward the light
	pendingLight   math3d.Vec3 // candidate while positioning
	showHUD        bool
}

func newViewState() *viewState {
	return &viewState{
		textureEnabled: true,
		lightDir:       math3d.V3(0.5, 1, 0.3).Normalize(),
	}
}

// screenToLightDir maps a terminal cell position onto a hemisphere over the
// model, giving the light direction a mouse position implies.
func screenToLightDir(screenX, screenY, width, height int) math3d.Vec3 {
	nx := (float64(screenX)/float64(width))*2 - 1
	ny := (float64(screenY)/float64(height))*2 - 1

	lenSq := nx*nx + ny*ny
	if lenSq > 1 {
		l := math.Sqrt(lenSq)
		nx /= l
		ny /= l
		lenSq = 1
	}
	nz := math.Sqrt(1 - lenSq)

	return math3d.V3(nx, -ny, nz).Normalize()
}
