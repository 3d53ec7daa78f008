package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SimpleConfig configures SimpleEngine.
type SimpleConfig struct {
	Gravity mgl64.Vec3
	GroundY float64
}

// DefaultGravity matches the demos: 9.81 down the Y axis.
var DefaultGravity = mgl64.Vec3{0, -9.81, 0}

type obstacle struct {
	center mgl64.Vec3
	radius float64
}

// SimpleEngine is an in-process engine for hosts and tests. It integrates
// gravity and linear damping, rests capsules on a flat ground plane and pushes
// bodies out of static circular obstacles on the play plane.
type SimpleEngine struct {
	cfg       SimpleConfig
	ready     *Readiness
	bodies    []*simpleBody
	obstacles []obstacle
}

var _ Engine = (*SimpleEngine)(nil)

func NewSimpleEngine(cfg SimpleConfig) *SimpleEngine {
	return &SimpleEngine{cfg: cfg, ready: NewReadiness()}
}

func (e *SimpleEngine) Readiness() *Readiness { return e.ready }

func (e *SimpleEngine) CreateBody(at mgl64.Vec3, params BodyParams) (Body, error) {
	if !e.ready.Ready() {
		return nil, ErrNotReady
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := &simpleBody{pos: at, params: params}
	e.bodies = append(e.bodies, b)
	return b, nil
}

func (e *SimpleEngine) AddObstacle(center mgl64.Vec3, radius float64) {
	e.obstacles = append(e.obstacles, obstacle{center: center, radius: radius})
}

// Bodies returns the number of dynamic bodies created so far.
func (e *SimpleEngine) Bodies() int { return len(e.bodies) }

func (e *SimpleEngine) Step(dt float64) {
	if dt <= 0 || !e.ready.Ready() {
		return
	}
	for _, b := range e.bodies {
		e.integrate(b, dt)
	}
}

func (e *SimpleEngine) integrate(b *simpleBody, dt float64) {
	b.vel = b.vel.Add(e.cfg.Gravity.Mul(dt))
	if d := b.params.LinearDamping; d > 0 {
		b.vel = b.vel.Mul(1 / (1 + d*dt))
	}
	b.pos = b.pos.Add(b.vel.Mul(dt))

	half := b.params.Capsule.Height / 2
	if floor := e.cfg.GroundY + half; b.pos[1] < floor {
		b.pos[1] = floor
		if b.vel[1] < 0 {
			b.vel[1] = -b.vel[1] * b.params.Restitution
		}
	}

	for _, o := range e.obstacles {
		reach := o.radius + b.params.Capsule.Radius
		dx, dz := b.pos[0]-o.center[0], b.pos[2]-o.center[2]
		dist := math.Hypot(dx, dz)
		if dist >= reach {
			continue
		}
		if dist == 0 {
			dx, dz, dist = 1, 0, 1
		}
		nx, nz := dx/dist, dz/dist
		b.pos[0] = o.center[0] + nx*reach
		b.pos[2] = o.center[2] + nz*reach
		// drop the velocity component pointing into the obstacle
		if inward := b.vel[0]*nx + b.vel[2]*nz; inward < 0 {
			b.vel[0] -= inward * nx
			b.vel[2] -= inward * nz
		}
	}
}

type simpleBody struct {
	pos    mgl64.Vec3
	vel    mgl64.Vec3
	params BodyParams
	locked bool
}

func (b *simpleBody) Position() mgl64.Vec3           { return b.pos }
func (b *simpleBody) LinearVelocity() mgl64.Vec3     { return b.vel }
func (b *simpleBody) SetLinearVelocity(v mgl64.Vec3) { b.vel = v }
func (b *simpleBody) LockAngular()                   { b.locked = true }
func (b *simpleBody) AngularLocked() bool            { return b.locked }
