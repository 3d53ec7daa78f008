package session

import (
	"github.com/zeusync/courier/internal/core/agent"
	"github.com/zeusync/courier/internal/core/events"
	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/core/systems"
)

const (
	SystemAttach = "physics_attach"
	SystemMotion = "agent_motion"
	SystemStep   = "physics_step"
	SystemSync   = "transform_sync"
)

// attachSystem polls physics readiness until the agent is attached, then
// finishes and is never run again.
type attachSystem struct{ s *Session }

func (*attachSystem) Name() string                  { return SystemAttach }
func (*attachSystem) Phase() systems.ExecutionPhase { return systems.PhasePreUpdate }

func (a *attachSystem) Update(float64) error {
	attached, err := a.s.attacher.Tick(a.s.agent)
	if err != nil || !attached {
		return err
	}
	if a.s.bus != nil {
		pos, _ := a.s.agent.Position()
		if err = a.s.bus.Publish(events.NewAttach("agent", pos)); err != nil {
			a.s.logger.Warn("attach event handler failed", log.Error(err))
		}
	}
	return nil
}

func (a *attachSystem) Finished() bool {
	return a.s.attacher.State() == agent.StateAttached
}

type motionSystem struct{ s *Session }

func (*motionSystem) Name() string                  { return SystemMotion }
func (*motionSystem) Phase() systems.ExecutionPhase { return systems.PhaseUpdate }

func (m *motionSystem) Update(dt float64) error {
	m.s.steer(m.s.controller.Advance(m.s.agent, &m.s.input, dt))
	return nil
}

type stepSystem struct{ s *Session }

func (*stepSystem) Name() string                  { return SystemStep }
func (*stepSystem) Phase() systems.ExecutionPhase { return systems.PhaseFixedUpdate }

func (p *stepSystem) Update(dt float64) error {
	p.s.engine.Step(dt)
	return nil
}

// syncSystem copies the body onto the scene and carries the held item along.
type syncSystem struct{ s *Session }

func (*syncSystem) Name() string                  { return SystemSync }
func (*syncSystem) Phase() systems.ExecutionPhase { return systems.PhaseLateUpdate }

func (y *syncSystem) Update(float64) error {
	y.s.agent.SyncTransform()
	if pos, ok := y.s.agent.Position(); ok {
		y.s.machine.Follow(pos)
	}
	return nil
}
