// Package events names the notices the gameplay core publishes on the bus.
// Hosts subscribe to them for UI feedback; nothing in the core depends on a
// subscriber being present.
package events

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/zeusync/courier/internal/core/events/bus"
)

const (
	TypePickedUp           = "carry.picked_up"
	TypeDelivered          = "carry.delivered"
	TypeNothingInRange     = "carry.nothing_in_range"
	TypeNotInDeliveryZone  = "carry.not_in_delivery_zone"
	TypeAgentPhysicsAttach = "agent.physics_attached"
)

// Carry is the payload of the carry.* events.
type Carry struct {
	ItemID   uuid.UUID
	ItemName string
	// Distance is the agent's distance to the item on pickup, or to the
	// delivery zone otherwise. It is zero for nothing_in_range.
	Distance float64
	Score    uint64
}

// Attach is the payload of agent.physics_attached.
type Attach struct {
	Position mgl64.Vec3
}

func NewCarry(typ, src string, c Carry) bus.Event {
	return bus.NewEvent(typ, src, c)
}

func NewAttach(src string, pos mgl64.Vec3) bus.Event {
	return bus.NewEvent(TypeAgentPhysicsAttach, src, Attach{Position: pos})
}
