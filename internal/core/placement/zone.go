package placement

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/courier/internal/core/systems/physics"
)

type ZoneKind uint8

const (
	ZoneSpawn ZoneKind = iota
	ZoneDelivery
	ZoneAgentStart
)

func (k ZoneKind) String() string {
	switch k {
	case ZoneSpawn:
		return "spawn"
	case ZoneDelivery:
		return "delivery"
	case ZoneAgentStart:
		return "agent_start"
	default:
		return "unknown"
	}
}

// Zone forbids placements whose planar distance to Center is below Radius.
type Zone struct {
	Kind   ZoneKind
	Center mgl64.Vec3
	Radius float64
}

// Excludes reports whether pos falls inside the zone.
func (z Zone) Excludes(pos mgl64.Vec3) bool {
	return physics.PlanarDistance(pos, z.Center) < z.Radius
}
