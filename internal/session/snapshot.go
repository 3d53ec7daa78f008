package session

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is a read-only view of the world after a tick, as hosts render or
// stream it.
type Snapshot struct {
	Tick      uint64       `json:"tick"`
	Agent     AgentView    `json:"agent"`
	Items     []ItemView   `json:"items"`
	Obstacles []mgl64.Vec3 `json:"obstacles"`
	Delivery  mgl64.Vec3   `json:"delivery"`
	Score     uint64       `json:"score"`
	// Carrying is the carried item's ID, empty when the agent is empty-handed.
	Carrying string `json:"carrying,omitempty"`
	// Digest changes whenever any position or the score changes.
	Digest uint64 `json:"digest"`
}

type AgentView struct {
	Position mgl64.Vec3 `json:"position"`
	Heading  float64    `json:"heading"`
	Mode     string     `json:"mode"`
}

type ItemView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Position  mgl64.Vec3 `json:"position"`
	Delivered bool       `json:"delivered"`
}

func (s *Session) Snapshot() Snapshot {
	pos, _ := s.agent.Position()
	snap := Snapshot{
		Tick: s.tick,
		Agent: AgentView{
			Position: pos,
			Heading:  s.heading,
			Mode:     s.agent.Mode().String(),
		},
		Obstacles: s.layout.Positions(),
		Delivery:  s.delivery.AbsolutePosition(),
		Score:     s.machine.Score(),
	}
	if held, ok := s.machine.Carrying(); ok {
		snap.Carrying = held.ID().String()
	}
	for _, it := range s.machine.Items() {
		snap.Items = append(snap.Items, ItemView{
			ID:        it.ID().String(),
			Name:      it.Name(),
			Position:  it.Position(),
			Delivered: it.Delivered(),
		})
	}
	snap.Digest = snap.digest()
	return snap
}

func (snap Snapshot) digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	for _, f := range snap.Agent.Position {
		put(f)
	}
	put(snap.Agent.Heading)
	for _, it := range snap.Items {
		for _, f := range it.Position {
			put(f)
		}
	}
	binary.LittleEndian.PutUint64(buf[:], snap.Score)
	_, _ = h.Write(buf[:])
	return h.Sum64()
}
