// Package placement distributes obstacles over a square play area. The result
// depends only on its inputs: candidates are enumerated in a fixed order and
// never shuffled.
package placement

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/courier/internal/core/systems/physics"
)

var ErrInvalidParams = errors.New("invalid placement parameters")

// Params bounds a placement run.
type Params struct {
	// HalfExtent of the square area [-HalfExtent, HalfExtent]² on X/Z.
	HalfExtent float64
	// CellSize is the spacing of the candidate grid.
	CellSize float64
	// MaxCount caps the number of accepted positions.
	MaxCount int
	// MinSeparation is the smallest planar distance allowed between two placements.
	MinSeparation float64
	// Height is the Y given to every emitted position.
	Height float64
}

func (p Params) validate() error {
	var errs []error
	if !(p.CellSize > 0) {
		errs = append(errs, fmt.Errorf("%w: cell size %v", ErrInvalidParams, p.CellSize))
	}
	if !(p.HalfExtent >= 0) {
		errs = append(errs, fmt.Errorf("%w: half extent %v", ErrInvalidParams, p.HalfExtent))
	}
	if p.MaxCount < 0 {
		errs = append(errs, fmt.Errorf("%w: max count %d", ErrInvalidParams, p.MaxCount))
	}
	if !(p.MinSeparation >= 0) {
		errs = append(errs, fmt.Errorf("%w: min separation %v", ErrInvalidParams, p.MinSeparation))
	}
	return errors.Join(errs...)
}

// MaxCandidates bounds the grid a single run may walk.
const MaxCandidates = 1 << 26

// gridSide is the number of tiles per axis. Grids beyond MaxCandidates,
// including non-finite extents, are rejected.
func gridSide(halfExtent, cellSize float64) (int, error) {
	f := (2*halfExtent)/cellSize + 1e-9
	if math.IsNaN(f) || math.IsInf(f, 0) || f*f > MaxCandidates {
		return 0, fmt.Errorf("%w: grid of %v/%v exceeds %d candidates", ErrInvalidParams, 2*halfExtent, cellSize, MaxCandidates)
	}
	return int(f), nil
}

func center(halfExtent, cellSize float64, i, j int) mgl64.Vec3 {
	return mgl64.Vec3{
		-halfExtent + cellSize*(float64(i)+0.5),
		0,
		-halfExtent + cellSize*(float64(j)+0.5),
	}
}

// Candidates lists the centers of a cellSize grid tiling [-halfExtent, halfExtent]²,
// outer loop on X, inner loop on Z. Every center sits cellSize/2 inside its
// tile; tiles that would cross the boundary are not generated. Invalid or
// oversized grids yield nil.
func Candidates(halfExtent, cellSize float64) []mgl64.Vec3 {
	if cellSize <= 0 || halfExtent < 0 {
		return nil
	}
	n, err := gridSide(halfExtent, cellSize)
	if err != nil {
		return nil
	}
	out := make([]mgl64.Vec3, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out = append(out, center(halfExtent, cellSize, i, j))
		}
	}
	return out
}

// Place walks the candidate grid in order and accepts every candidate that is
// outside all zones and at least MinSeparation from what was accepted before,
// until MaxCount positions are taken. A short or empty result is not an error.
func Place(params Params, zones []Zone) (Set, error) {
	if err := params.validate(); err != nil {
		return Set{}, err
	}
	for _, z := range zones {
		if z.Radius < 0 || math.IsNaN(z.Radius) {
			return Set{}, fmt.Errorf("%w: %s zone radius %v", ErrInvalidParams, z.Kind, z.Radius)
		}
	}
	n, err := gridSide(params.HalfExtent, params.CellSize)
	if err != nil {
		return Set{}, err
	}

	accepted := make([]mgl64.Vec3, 0, min(params.MaxCount, n*n))
	for i := 0; i < n && len(accepted) < params.MaxCount; i++ {
		for j := 0; j < n && len(accepted) < params.MaxCount; j++ {
			c := center(params.HalfExtent, params.CellSize, i, j)
			if !admissible(c, zones, accepted, params.MinSeparation) {
				continue
			}
			accepted = append(accepted, mgl64.Vec3{c[0], params.Height, c[2]})
		}
	}
	return Set{positions: accepted}, nil
}

func admissible(c mgl64.Vec3, zones []Zone, accepted []mgl64.Vec3, minSep float64) bool {
	for _, z := range zones {
		if z.Excludes(c) {
			return false
		}
	}
	for _, p := range accepted {
		if physics.PlanarDistance(c, p) < minSep {
			return false
		}
	}
	return true
}
