package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Only X and Z are meaningful on the play plane; Y belongs to gravity.

// Planar projects v onto the play plane: X stays X, Z becomes the second component.
func Planar(v mgl64.Vec3) mgl64.Vec2 { return mgl64.Vec2{v[0], v[2]} }

// WithPlanar replaces the X/Z components of v and keeps its Y.
func WithPlanar(v mgl64.Vec3, p mgl64.Vec2) mgl64.Vec3 { return mgl64.Vec3{p[0], v[1], p[1]} }

// PlanarDistance computes the Euclidean distance between a and b ignoring Y.
func PlanarDistance(a, b mgl64.Vec3) float64 { return math.Hypot(b[0]-a[0], b[2]-a[2]) }
