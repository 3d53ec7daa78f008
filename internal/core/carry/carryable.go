package carry

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/zeusync/courier/internal/core/scene"
)

// Carryable is an entity the agent can pick up and deliver. Once delivered it
// stays delivered and is never offered for pickup again.
type Carryable struct {
	id        uuid.UUID
	name      string
	node      *scene.Node
	delivered bool
}

func NewCarryable(id uuid.UUID, name string, node *scene.Node) *Carryable {
	return &Carryable{id: id, name: name, node: node}
}

func (c *Carryable) ID() uuid.UUID        { return c.id }
func (c *Carryable) Name() string         { return c.name }
func (c *Carryable) Node() *scene.Node    { return c.node }
func (c *Carryable) Delivered() bool      { return c.delivered }
func (c *Carryable) Position() mgl64.Vec3 { return c.node.AbsolutePosition() }

func (c *Carryable) moveTo(pos mgl64.Vec3) {
	if c.node.Parent() != nil {
		pos = pos.Sub(c.node.Parent().AbsolutePosition())
	}
	c.node.SetPosition(pos)
}
