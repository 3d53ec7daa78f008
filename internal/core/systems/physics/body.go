package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrNotReady      = errors.New("physics engine is not ready")
	ErrInvalidParams = errors.New("invalid body parameters")
)

// Capsule is the collider shape used for agents. Height is the full height
// including both caps.
type Capsule struct {
	Height float64 `json:"height" yaml:"height" toml:"height"`
	Radius float64 `json:"radius" yaml:"radius" toml:"radius"`
}

// BodyParams are the dynamics parameters a body is created with.
type BodyParams struct {
	Capsule       Capsule `json:"capsule" yaml:"capsule" toml:"capsule"`
	Mass          float64 `json:"mass" yaml:"mass" toml:"mass"`
	Friction      float64 `json:"friction" yaml:"friction" toml:"friction"`
	Restitution   float64 `json:"restitution" yaml:"restitution" toml:"restitution"`
	LinearDamping float64 `json:"linear_damping" yaml:"linear_damping" toml:"linear_damping"`
}

func (p BodyParams) Validate() error {
	switch {
	case p.Capsule.Height <= 0 || p.Capsule.Radius <= 0:
		return fmt.Errorf("%w: capsule %vx%v", ErrInvalidParams, p.Capsule.Height, p.Capsule.Radius)
	case p.Capsule.Height < 2*p.Capsule.Radius:
		return fmt.Errorf("%w: capsule height %v shorter than its caps", ErrInvalidParams, p.Capsule.Height)
	case p.Mass <= 0:
		return fmt.Errorf("%w: mass %v", ErrInvalidParams, p.Mass)
	case p.Friction < 0 || p.Restitution < 0 || p.LinearDamping < 0:
		return fmt.Errorf("%w: negative friction, restitution or damping", ErrInvalidParams)
	}
	return nil
}

// Body is a dynamic rigid body owned by the physics engine.
type Body interface {
	Position() mgl64.Vec3
	LinearVelocity() mgl64.Vec3
	SetLinearVelocity(v mgl64.Vec3)
	// LockAngular zeroes the angular response on every axis so the body never topples.
	LockAngular()
	AngularLocked() bool
}

// Engine is the physics collaborator. It initializes asynchronously: until
// Readiness resolves, CreateBody fails with ErrNotReady and Step does nothing.
type Engine interface {
	Readiness() *Readiness
	CreateBody(at mgl64.Vec3, params BodyParams) (Body, error)
	AddObstacle(center mgl64.Vec3, radius float64)
	Step(dt float64)
}
