package placement

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Set is the ordered, immutable output of Place.
type Set struct {
	positions []mgl64.Vec3
}

func (s Set) Len() int { return len(s.positions) }

func (s Set) At(i int) mgl64.Vec3 { return s.positions[i] }

// Positions returns a copy of the accepted positions in acceptance order.
func (s Set) Positions() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(s.positions))
	copy(out, s.positions)
	return out
}

// Fingerprint digests the ordered coordinates. Equal inputs to Place always
// yield equal fingerprints.
func (s Set) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, p := range s.positions {
		for _, c := range p {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}
