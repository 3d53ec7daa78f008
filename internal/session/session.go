// Package session owns one running world: the scene, the agent, the carry
// machine and the systems that advance them. A Session is driven by a single
// goroutine; hosts serialize input and ticks onto it.
package session

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/zeusync/courier/internal/config"
	"github.com/zeusync/courier/internal/core/agent"
	"github.com/zeusync/courier/internal/core/carry"
	"github.com/zeusync/courier/internal/core/events/bus"
	"github.com/zeusync/courier/internal/core/input"
	"github.com/zeusync/courier/internal/core/motion"
	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/core/placement"
	"github.com/zeusync/courier/internal/core/scene"
	"github.com/zeusync/courier/internal/core/systems"
	"github.com/zeusync/courier/internal/core/systems/physics"
)

type Session struct {
	cfg    config.Config
	logger log.Log
	bus    bus.EventBus
	engine physics.Engine

	graph      *scene.Graph
	keys       *input.KeyMap
	input      input.State
	agent      *agent.Agent
	attacher   *agent.Attacher
	controller *motion.Controller
	machine    *carry.Machine
	runner     *systems.Runner

	delivery  *scene.Node
	obstacles []*scene.Node
	layout    placement.Set

	// heading is kept from the last non-zero movement direction.
	heading float64
	tick    uint64
}

// Build lays out the world described by cfg. The agent starts kinematic and
// is attached to engine once the engine reports ready.
func Build(cfg config.Config, engine physics.Engine, eventBus bus.EventBus, logger log.Log) (*Session, error) {
	keys, err := cfg.KeyMap()
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:        cfg,
		logger:     logger.With(log.String("component", "session")),
		bus:        eventBus,
		engine:     engine,
		graph:      scene.NewGraph(),
		keys:       keys,
		controller: motion.NewController(cfg.Motion.Speed),
		runner:     systems.NewRunner(),
	}

	s.delivery = s.graph.NewNode("delivery_zone", cfg.World.Delivery.Vec())

	items := make([]*carry.Carryable, 0, len(cfg.World.SpawnPoints))
	for i, p := range cfg.World.SpawnPoints {
		name := fmt.Sprintf("package_%d", i+1)
		items = append(items, carry.NewCarryable(uuid.New(), name, s.graph.NewNode(name, p.Vec())))
	}
	s.machine = carry.NewMachine(cfg.CarryMachine(), items, eventBus, s.logger)

	s.agent = agent.New(s.graph.NewNode("agent", cfg.World.AgentStart.Vec()))
	s.attacher = agent.NewAttacher(engine, s.graph, cfg.Body(), s.logger)

	if s.layout, err = placement.Place(cfg.Placement(), cfg.Zones()); err != nil {
		return nil, fmt.Errorf("place obstacles: %w", err)
	}
	for i, p := range s.layout.Positions() {
		s.obstacles = append(s.obstacles, s.graph.NewNode(fmt.Sprintf("obstacle_%d", i+1), p))
		if cfg.World.ObstacleRadius > 0 {
			engine.AddObstacle(p, cfg.World.ObstacleRadius)
		}
	}
	s.logger.Info("world built",
		log.Int("carryables", len(items)),
		log.Int("obstacles", s.layout.Len()),
		log.Uint64("layout", s.layout.Fingerprint()),
	)

	for _, sys := range []systems.System{
		&attachSystem{s: s},
		&motionSystem{s: s},
		&stepSystem{s: s},
		&syncSystem{s: s},
	} {
		if err = s.runner.Register(sys); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Advance runs one tick of dt seconds.
func (s *Session) Advance(dt float64) error {
	s.tick++
	return s.runner.Tick(dt)
}

// HandleKey applies a key edge. When the edge is the trigger going down the
// pickup/deliver action runs at once and its outcome is returned with true.
func (s *Session) HandleKey(ev input.Event) (carry.Outcome, bool) {
	if !s.keys.Apply(&s.input, ev) {
		return 0, false
	}
	return s.TriggerPickupOrDeliver(), true
}

func (s *Session) TriggerPickupOrDeliver() carry.Outcome {
	pos, ok := s.agent.Position()
	if !ok {
		return carry.OutcomeNothingInRange
	}
	return s.machine.Trigger(pos)
}

func (s *Session) Score() uint64 { return s.machine.Score() }

func (s *Session) Carrying() (*carry.Carryable, bool) { return s.machine.Carrying() }

func (s *Session) Mode() agent.Mode { return s.agent.Mode() }

func (s *Session) Agent() *agent.Agent { return s.agent }

func (s *Session) Items() []*carry.Carryable { return s.machine.Items() }

func (s *Session) Layout() placement.Set { return s.layout }

func (s *Session) Bus() bus.EventBus { return s.bus }

func (s *Session) Runner() *systems.Runner { return s.runner }

func (s *Session) Config() config.Config { return s.cfg }

// Heading in radians, clockwise from Forward (-Z).
func (s *Session) Heading() float64 { return s.heading }

func (s *Session) Tick() uint64 { return s.tick }

func (s *Session) steer(dir mgl64.Vec2) {
	if dir[0] == 0 && dir[1] == 0 {
		return
	}
	s.heading = math.Atan2(dir[0], -dir[1])
}
