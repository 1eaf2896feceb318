// Package spatial answers the geometric questions agents ask each tick:
// where the ground is under a point and whether a target can be seen.
package spatial

import (
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Hit is the nearest intersection of a cast with scene geometry.
type Hit struct {
	Point  gamemath.Vec3
	Normal gamemath.Vec3
}

// GroundQuery samples walkable surfaces below a point.
type GroundQuery interface {
	// CastDown returns the highest surface at or below origin within
	// maxDist, or false when nothing is there.
	CastDown(origin gamemath.Vec3, maxDist float64) (Hit, bool)
}

// SightQuery resolves sight lines and target proximity on the ground plane.
type SightQuery interface {
	// Raycast returns the first wall hit by a horizontal ray.
	Raycast(origin, dir gamemath.Vec3, maxDist float64) (Hit, bool)
	// ClearLine reports whether no wall blocks the segment from a to b.
	ClearLine(a, b gamemath.Vec3) bool
	// Nearest returns the closest registered target within maxDist.
	Nearest(from gamemath.Vec3, maxDist float64) (donburi.Entity, bool)
}
