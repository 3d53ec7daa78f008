// Package carry implements the pickup/delivery protocol between the agent and
// the carryable entities: at most one item is carried at a time, a single
// trigger either picks up the nearest item or delivers the carried one.
package carry

import (
	"bytes"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/courier/internal/core/events"
	"github.com/zeusync/courier/internal/core/events/bus"
	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/core/systems/physics"
)

const eventSource = "carry"

type State uint8

const (
	StateEmpty State = iota
	StateCarrying
)

func (s State) String() string {
	if s == StateCarrying {
		return "carrying"
	}
	return "empty"
}

// Outcome reports what a trigger did. Only PickedUp and Delivered change state.
type Outcome uint8

const (
	OutcomeNothingInRange Outcome = iota
	OutcomePickedUp
	OutcomeNotInDeliveryZone
	OutcomeDelivered
)

func (o Outcome) String() string {
	switch o {
	case OutcomePickedUp:
		return "picked_up"
	case OutcomeNotInDeliveryZone:
		return "not_in_delivery_zone"
	case OutcomeDelivered:
		return "delivered"
	default:
		return "nothing_in_range"
	}
}

func (o Outcome) Changed() bool {
	return o == OutcomePickedUp || o == OutcomeDelivered
}

type Config struct {
	PickupRadius     float64
	DeliveryRadius   float64
	DeliveryPosition mgl64.Vec3
	// CarryOffset is where a carried item rides relative to the agent.
	CarryOffset mgl64.Vec3
	// DropHeight is the Y of a delivered item.
	DropHeight float64
	// DropJitter is the width of the random square a delivered item lands in,
	// centered on the delivery position.
	DropJitter float64
	Seed       uint64
}

// Relation is the carry ownership: while carrying, the agent alone decides
// where Item is, at Offset from its own position.
type Relation struct {
	Item   *Carryable
	Offset mgl64.Vec3
}

type Machine struct {
	cfg    Config
	items  []*Carryable
	carry  *Relation
	score  uint64
	rng    *rand.Rand
	bus    bus.EventBus
	logger log.Log
}

// NewMachine starts in StateEmpty. eventBus may be nil.
func NewMachine(cfg Config, items []*Carryable, eventBus bus.EventBus, logger log.Log) *Machine {
	return &Machine{
		cfg:    cfg,
		items:  append([]*Carryable(nil), items...),
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		bus:    eventBus,
		logger: logger,
	}
}

func (m *Machine) Add(item *Carryable) { m.items = append(m.items, item) }

func (m *Machine) Items() []*Carryable { return append([]*Carryable(nil), m.items...) }

func (m *Machine) State() State {
	if m.carry != nil {
		return StateCarrying
	}
	return StateEmpty
}

func (m *Machine) Carrying() (*Carryable, bool) {
	if m.carry == nil {
		return nil, false
	}
	return m.carry.Item, true
}

func (m *Machine) Score() uint64 { return m.score }

func (m *Machine) Config() Config { return m.cfg }

// Nearest finds the closest undelivered item strictly within the pickup
// radius of pos. Equal distances go to the lowest ID.
func (m *Machine) Nearest(pos mgl64.Vec3) (*Carryable, float64, bool) {
	var best *Carryable
	bestDist := 0.0
	for _, it := range m.items {
		if it.delivered || (m.carry != nil && m.carry.Item == it) {
			continue
		}
		d := physics.PlanarDistance(pos, it.Position())
		if d >= m.cfg.PickupRadius {
			continue
		}
		if best == nil || d < bestDist || (d == bestDist && bytes.Compare(it.id[:], best.id[:]) < 0) {
			best, bestDist = it, d
		}
	}
	return best, bestDist, best != nil
}

// Trigger runs the single pickup-or-deliver action against the agent position.
func (m *Machine) Trigger(agentPos mgl64.Vec3) Outcome {
	if m.carry == nil {
		return m.pickup(agentPos)
	}
	return m.deliver(agentPos)
}

// Follow keeps the carried item at its offset from the agent.
func (m *Machine) Follow(agentPos mgl64.Vec3) {
	if m.carry == nil {
		return
	}
	m.carry.Item.moveTo(agentPos.Add(m.carry.Offset))
}

func (m *Machine) pickup(agentPos mgl64.Vec3) Outcome {
	item, dist, ok := m.Nearest(agentPos)
	if !ok {
		m.logger.Debug("no carryable in range", log.Float64("radius", m.cfg.PickupRadius))
		m.publish(events.TypeNothingInRange, events.Carry{Score: m.score})
		return OutcomeNothingInRange
	}

	m.carry = &Relation{Item: item, Offset: m.cfg.CarryOffset}
	m.Follow(agentPos)

	m.logger.Info("carryable picked up",
		log.String("item", item.name),
		log.Stringer("id", item.id),
		log.Float64("distance", dist),
	)
	m.publish(events.TypePickedUp, events.Carry{ItemID: item.id, ItemName: item.name, Distance: dist, Score: m.score})
	return OutcomePickedUp
}

func (m *Machine) deliver(agentPos mgl64.Vec3) Outcome {
	item := m.carry.Item
	dist := physics.PlanarDistance(agentPos, m.cfg.DeliveryPosition)
	if dist >= m.cfg.DeliveryRadius {
		m.logger.Debug("not in delivery zone", log.Float64("distance", dist))
		m.publish(events.TypeNotInDeliveryZone, events.Carry{ItemID: item.id, ItemName: item.name, Distance: dist, Score: m.score})
		return OutcomeNotInDeliveryZone
	}

	m.carry = nil
	item.moveTo(m.dropPosition())
	item.delivered = true
	m.score++

	m.logger.Info("carryable delivered",
		log.String("item", item.name),
		log.Stringer("id", item.id),
		log.Uint64("score", m.score),
	)
	m.publish(events.TypeDelivered, events.Carry{ItemID: item.id, ItemName: item.name, Distance: dist, Score: m.score})
	return OutcomeDelivered
}

func (m *Machine) dropPosition() mgl64.Vec3 {
	p := m.cfg.DeliveryPosition
	p[0] += (m.rng.Float64() - 0.5) * m.cfg.DropJitter
	p[2] += (m.rng.Float64() - 0.5) * m.cfg.DropJitter
	p[1] = m.cfg.DropHeight
	return p
}

func (m *Machine) publish(typ string, payload events.Carry) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(events.NewCarry(typ, eventSource, payload)); err != nil {
		m.logger.Warn("carry event handler failed", log.String("event", typ), log.Error(err))
	}
}
