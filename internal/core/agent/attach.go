package agent

import (
	"errors"
	"fmt"

	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/core/scene"
	"github.com/zeusync/courier/internal/core/systems/physics"
)

var ErrAlreadyPhysics = errors.New("agent already has a physics body")

// AttachState is the state of the deferred physics attachment.
type AttachState uint8

const (
	StatePending AttachState = iota
	StateAttached
)

func (s AttachState) String() string {
	if s == StateAttached {
		return "attached"
	}
	return "pending"
}

// Attacher swaps the kinematic placeholder for a capsule body once the physics
// engine reports ready. The swap happens at most once; Attached is terminal.
type Attacher struct {
	state  AttachState
	engine physics.Engine
	graph  *scene.Graph
	params physics.BodyParams
	logger log.Log
}

func NewAttacher(engine physics.Engine, graph *scene.Graph, params physics.BodyParams, logger log.Log) *Attacher {
	return &Attacher{
		engine: engine,
		graph:  graph,
		params: params,
		logger: logger,
	}
}

func (t *Attacher) State() AttachState { return t.state }

// Tick polls readiness without blocking. It returns true on the single tick
// where the agent becomes physics-backed. On error the attacher stays pending
// and retries on the next tick.
func (t *Attacher) Tick(a *Agent) (bool, error) {
	if t.state == StateAttached || !t.engine.Readiness().Ready() {
		return false, nil
	}
	if a.body != nil {
		return false, ErrAlreadyPhysics
	}
	pos, ok := a.Position()
	if !ok {
		return false, nil
	}

	body, err := t.engine.CreateBody(pos, t.params)
	if err != nil {
		return false, fmt.Errorf("create agent body: %w", err)
	}
	body.LockAngular()

	collider := t.graph.NewNode("agent_collider", pos)
	if err = a.bind(body, collider); err != nil {
		collider.Dispose()
		return false, fmt.Errorf("reparent agent visuals: %w", err)
	}

	t.state = StateAttached
	t.logger.Info("agent physics attached",
		log.Float64("x", pos[0]),
		log.Float64("y", pos[1]),
		log.Float64("z", pos[2]),
	)
	return true, nil
}
