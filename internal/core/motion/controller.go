// Package motion turns the four directional commands into agent movement,
// either as a target velocity for the physics body or as a kinematic
// position delta before physics is available.
package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/courier/internal/core/input"
	"github.com/zeusync/courier/internal/core/systems/physics"
)

// Axis convention on the play plane: Forward is -Z, Right is +X.
var axes = [...]struct {
	cmd  input.Command
	step mgl64.Vec2
}{
	{input.Forward, mgl64.Vec2{0, -1}},
	{input.Back, mgl64.Vec2{0, 1}},
	{input.Right, mgl64.Vec2{1, 0}},
	{input.Left, mgl64.Vec2{-1, 0}},
}

// Target is what the controller drives.
type Target interface {
	// Body is nil while the agent is kinematic.
	Body() physics.Body
	// Translate moves a kinematic agent and reports whether it could.
	Translate(delta mgl64.Vec3) bool
}

// Direction accumulates a unit step per pressed command; opposing commands
// cancel. A non-zero result is normalized, the X component maps to world X and
// the Y component to world Z.
func Direction(in input.Reader) mgl64.Vec2 {
	var dir mgl64.Vec2
	for _, a := range axes {
		if in.Pressed(a.cmd) {
			dir = dir.Add(a.step)
		}
	}
	if dir[0] == 0 && dir[1] == 0 {
		return dir
	}
	return dir.Normalize()
}

type Controller struct {
	speed float64
}

func NewController(speed float64) *Controller {
	return &Controller{speed: speed}
}

func (c *Controller) Speed() float64 { return c.speed }

// Advance applies one tick of input and returns the direction it used.
// With a body the planar velocity is replaced and the vertical one kept, so a
// released key stops the agent at once while gravity keeps acting. Without a
// body the kinematic position moves by direction*speed*dt. With neither, it
// does nothing.
func (c *Controller) Advance(t Target, in input.Reader, dt float64) mgl64.Vec2 {
	dir := Direction(in)
	planar := dir.Mul(c.speed)

	if body := t.Body(); body != nil {
		body.SetLinearVelocity(physics.WithPlanar(body.LinearVelocity(), planar))
		return dir
	}
	if planar[0] != 0 || planar[1] != 0 {
		t.Translate(mgl64.Vec3{planar[0] * dt, 0, planar[1] * dt})
	}
	return dir
}
