package agent

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/courier/internal/core/scene"
	"github.com/zeusync/courier/internal/core/systems/physics"
)

// Mode tells which representation of the agent is authoritative.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeKinematic
	ModePhysics
)

func (m Mode) String() string {
	switch m {
	case ModeKinematic:
		return "kinematic"
	case ModePhysics:
		return "physics"
	default:
		return "none"
	}
}

// Agent is the player-controlled entity. It starts as a kinematic placeholder
// node and switches at most once to a physics body with its own collider node;
// from then on the body is the only authority on position.
type Agent struct {
	placeholder *scene.Node
	collider    *scene.Node
	body        physics.Body
}

// New creates a kinematic agent. The placeholder is also the root of the
// agent's visual hierarchy.
func New(placeholder *scene.Node) *Agent {
	return &Agent{placeholder: placeholder}
}

func (a *Agent) Mode() Mode {
	switch {
	case a.body != nil:
		return ModePhysics
	case a.placeholder != nil && !a.placeholder.Disposed():
		return ModeKinematic
	default:
		return ModeNone
	}
}

// Position returns the authoritative absolute position. ok is false when the
// agent has no representation at all.
func (a *Agent) Position() (pos mgl64.Vec3, ok bool) {
	switch a.Mode() {
	case ModePhysics:
		return a.body.Position(), true
	case ModeKinematic:
		return a.placeholder.AbsolutePosition(), true
	default:
		return mgl64.Vec3{}, false
	}
}

// Body is nil until physics is attached.
func (a *Agent) Body() physics.Body { return a.body }

// Visual is the root of the agent's visual hierarchy.
func (a *Agent) Visual() *scene.Node { return a.placeholder }

// Collider is nil until physics is attached.
func (a *Agent) Collider() *scene.Node { return a.collider }

// Translate moves the kinematic placeholder by delta. It refuses once the
// physics body is authoritative.
func (a *Agent) Translate(delta mgl64.Vec3) bool {
	if a.Mode() != ModeKinematic {
		return false
	}
	a.placeholder.SetPosition(a.placeholder.Position().Add(delta))
	return true
}

// SyncTransform copies the body position onto the collider node so the
// visuals parented under it follow the simulation.
func (a *Agent) SyncTransform() {
	if a.body != nil && a.collider != nil {
		a.collider.SetPosition(a.body.Position())
	}
}

func (a *Agent) bind(body physics.Body, collider *scene.Node) error {
	if err := a.placeholder.SetParent(collider); err != nil {
		return err
	}
	a.placeholder.SetPosition(mgl64.Vec3{})
	a.body = body
	a.collider = collider
	return nil
}
