// Package config holds the tunables of a courier session. Defaults describe
// the taxi map; files may be YAML or TOML and are validated against an
// embedded JSON Schema before use.
package config

import (
	"errors"
	"fmt"

	"github.com/zeusync/courier/internal/core/observability/log"
)

var ErrInvalid = errors.New("invalid config")

// Vec3 is a position in world units, [x, y, z].
type Vec3 [3]float64

type Config struct {
	Log     log.Config    `json:"log" yaml:"log" toml:"log"`
	World   WorldConfig   `json:"world" yaml:"world" toml:"world"`
	Motion  MotionConfig  `json:"motion" yaml:"motion" toml:"motion"`
	Physics PhysicsConfig `json:"physics" yaml:"physics" toml:"physics"`
	Carry   CarryConfig   `json:"carry" yaml:"carry" toml:"carry"`
	// Keys overrides or extends the default bindings, key -> command name.
	Keys map[string]string `json:"keys,omitempty" yaml:"keys,omitempty" toml:"keys,omitempty"`
	Host HostConfig        `json:"host" yaml:"host" toml:"host"`
}

type WorldConfig struct {
	HalfExtent     float64 `json:"half_extent" yaml:"half_extent" toml:"half_extent"`
	CellSize       float64 `json:"cell_size" yaml:"cell_size" toml:"cell_size"`
	MaxObstacles   int     `json:"max_obstacles" yaml:"max_obstacles" toml:"max_obstacles"`
	MinSeparation  float64 `json:"min_separation" yaml:"min_separation" toml:"min_separation"`
	ObstacleHeight float64 `json:"obstacle_height" yaml:"obstacle_height" toml:"obstacle_height"`
	// ObstacleRadius is the footprint of the static collider behind each obstacle.
	ObstacleRadius float64 `json:"obstacle_radius" yaml:"obstacle_radius" toml:"obstacle_radius"`
	SpawnPoints    []Vec3  `json:"spawn_points" yaml:"spawn_points" toml:"spawn_points"`
	SpawnRadius    float64 `json:"spawn_radius" yaml:"spawn_radius" toml:"spawn_radius"`
	DeliveryRadius float64 `json:"delivery_radius" yaml:"delivery_radius" toml:"delivery_radius"`
	AgentRadius    float64 `json:"agent_radius" yaml:"agent_radius" toml:"agent_radius"`
	Delivery       Vec3    `json:"delivery" yaml:"delivery" toml:"delivery"`
	AgentStart     Vec3    `json:"agent_start" yaml:"agent_start" toml:"agent_start"`
}

type MotionConfig struct {
	// Speed in world units per second.
	Speed float64 `json:"speed" yaml:"speed" toml:"speed"`
}

type PhysicsConfig struct {
	CapsuleHeight float64 `json:"capsule_height" yaml:"capsule_height" toml:"capsule_height"`
	CapsuleRadius float64 `json:"capsule_radius" yaml:"capsule_radius" toml:"capsule_radius"`
	Mass          float64 `json:"mass" yaml:"mass" toml:"mass"`
	Friction      float64 `json:"friction" yaml:"friction" toml:"friction"`
	Restitution   float64 `json:"restitution" yaml:"restitution" toml:"restitution"`
	LinearDamping float64 `json:"linear_damping" yaml:"linear_damping" toml:"linear_damping"`
	Gravity       float64 `json:"gravity" yaml:"gravity" toml:"gravity"`
	GroundY       float64 `json:"ground_y" yaml:"ground_y" toml:"ground_y"`
	// ReadyAfter delays the simulated engine's readiness, e.g. "1500ms".
	ReadyAfter string `json:"ready_after" yaml:"ready_after" toml:"ready_after"`
}

type CarryConfig struct {
	PickupRadius   float64 `json:"pickup_radius" yaml:"pickup_radius" toml:"pickup_radius"`
	DeliveryRadius float64 `json:"delivery_radius" yaml:"delivery_radius" toml:"delivery_radius"`
	Offset         Vec3    `json:"offset" yaml:"offset" toml:"offset"`
	DropHeight     float64 `json:"drop_height" yaml:"drop_height" toml:"drop_height"`
	DropJitter     float64 `json:"drop_jitter" yaml:"drop_jitter" toml:"drop_jitter"`
	Seed           uint64  `json:"seed" yaml:"seed" toml:"seed"`
}

type HostConfig struct {
	// Mode is "term" or "ws".
	Mode string `json:"mode" yaml:"mode" toml:"mode"`
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// TickRate is simulation ticks per second.
	TickRate int `json:"tick_rate" yaml:"tick_rate" toml:"tick_rate"`
}

// Default returns the taxi map: three packages near (10, 10), the drop-off
// at (-18, -10) and a capsule agent.
func Default() Config {
	return Config{
		Log: log.Config{
			Level:    "info",
			Encoding: "console",
			Outputs:  []string{"stderr"},
		},
		World: WorldConfig{
			HalfExtent:     30,
			CellSize:       20,
			MaxObstacles:   12,
			MinSeparation:  15,
			ObstacleHeight: 5,
			ObstacleRadius: 1.5,
			SpawnPoints:    []Vec3{{10, 1, 10}, {12, 1, 8}, {8, 1, 12}},
			SpawnRadius:    4,
			DeliveryRadius: 5,
			AgentRadius:    3,
			Delivery:       Vec3{-18, 0.01, -10},
			AgentStart:     Vec3{10, 0.5, 0},
		},
		Motion: MotionConfig{Speed: 3},
		Physics: PhysicsConfig{
			CapsuleHeight: 1.2,
			CapsuleRadius: 0.35,
			Mass:          1,
			Friction:      0.8,
			Restitution:   0,
			LinearDamping: 0.3,
			Gravity:       -9.81,
			GroundY:       0,
			ReadyAfter:    "1s",
		},
		Carry: CarryConfig{
			PickupRadius:   2,
			DeliveryRadius: 4,
			Offset:         Vec3{0, 1.2, 0.2},
			DropHeight:     0.3,
			DropJitter:     2,
			Seed:           1,
		},
		Host: HostConfig{
			Mode:     "term",
			Addr:     ":8080",
			TickRate: 60,
		},
	}
}

// Validate checks the config against the embedded schema and then the
// cross-field rules the schema cannot express.
func (c Config) Validate() error {
	if err := validateSchema(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var errs []error
	if c.Physics.CapsuleRadius*2 > c.Physics.CapsuleHeight {
		errs = append(errs, errors.New("physics.capsule_radius is too large for capsule_height"))
	}
	if _, err := c.ReadyDelay(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.KeyMap(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
