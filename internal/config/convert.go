package config

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/courier/internal/core/carry"
	"github.com/zeusync/courier/internal/core/input"
	"github.com/zeusync/courier/internal/core/placement"
	"github.com/zeusync/courier/internal/core/systems/physics"
)

func (v Vec3) Vec() mgl64.Vec3 { return mgl64.Vec3(v) }

func (c Config) Placement() placement.Params {
	return placement.Params{
		HalfExtent:    c.World.HalfExtent,
		CellSize:      c.World.CellSize,
		MaxCount:      c.World.MaxObstacles,
		MinSeparation: c.World.MinSeparation,
		Height:        c.World.ObstacleHeight,
	}
}

// Zones are the exclusion zones around every spawn point, the delivery
// position and the agent start.
func (c Config) Zones() []placement.Zone {
	zones := make([]placement.Zone, 0, len(c.World.SpawnPoints)+2)
	for _, p := range c.World.SpawnPoints {
		zones = append(zones, placement.Zone{Kind: placement.ZoneSpawn, Center: p.Vec(), Radius: c.World.SpawnRadius})
	}
	return append(zones,
		placement.Zone{Kind: placement.ZoneDelivery, Center: c.World.Delivery.Vec(), Radius: c.World.DeliveryRadius},
		placement.Zone{Kind: placement.ZoneAgentStart, Center: c.World.AgentStart.Vec(), Radius: c.World.AgentRadius},
	)
}

func (c Config) Body() physics.BodyParams {
	return physics.BodyParams{
		Capsule:       physics.Capsule{Height: c.Physics.CapsuleHeight, Radius: c.Physics.CapsuleRadius},
		Mass:          c.Physics.Mass,
		Friction:      c.Physics.Friction,
		Restitution:   c.Physics.Restitution,
		LinearDamping: c.Physics.LinearDamping,
	}
}

func (c Config) Engine() physics.SimpleConfig {
	return physics.SimpleConfig{
		Gravity: mgl64.Vec3{0, c.Physics.Gravity, 0},
		GroundY: c.Physics.GroundY,
	}
}

func (c Config) CarryMachine() carry.Config {
	return carry.Config{
		PickupRadius:     c.Carry.PickupRadius,
		DeliveryRadius:   c.Carry.DeliveryRadius,
		DeliveryPosition: c.World.Delivery.Vec(),
		CarryOffset:      c.Carry.Offset.Vec(),
		DropHeight:       c.Carry.DropHeight,
		DropJitter:       c.Carry.DropJitter,
		Seed:             c.Carry.Seed,
	}
}

// ReadyDelay parses Physics.ReadyAfter. Empty means immediately.
func (c Config) ReadyDelay() (time.Duration, error) {
	if c.Physics.ReadyAfter == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Physics.ReadyAfter)
	if err != nil {
		return 0, fmt.Errorf("physics.ready_after: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("physics.ready_after: negative duration %s", d)
	}
	return d, nil
}

// KeyMap is the default bindings with Keys applied on top.
func (c Config) KeyMap() (*input.KeyMap, error) {
	km := input.NewKeyMap(input.DefaultBindings())
	for key, cmd := range c.Keys {
		if err := km.BindNamed(key, cmd); err != nil {
			return nil, fmt.Errorf("keys.%s: %w", key, err)
		}
	}
	return km, nil
}

// TickInterval is the wall-clock length of one simulation tick.
func (c Config) TickInterval() time.Duration {
	if c.Host.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Host.TickRate)
}
