// Package leveldata parses TMX levels into plain data shared by the
// simulation and its hosts. Tiled pixels become world units at one unit
// per tile; the map's y axis becomes world z.
package leveldata

import "github.com/automoto/doomerang-crypt/shared/gamemath"

// Level holds everything the simulation spawns from a TMX file.
type Level struct {
	Name         string
	Width        float64 // world units along x
	Depth        float64 // world units along z
	Ground       []GroundRect
	Walls        []Segment
	EnemySpawns  []EnemySpawn
	PlayerSpawns []PlayerSpawn
}

// GroundRect is a walkable footprint. RampAxis other than RampNone makes
// the surface rise from Height to RampTo across the rect.
type GroundRect struct {
	X, Z, W, D float64
	Height     float64
	RampTo     float64
	RampAxis   gamemath.RampAxis
}

// Segment is a wall on the ground plane.
type Segment struct {
	A, B gamemath.Vec3
}

type EnemySpawn struct {
	X, Z      float64
	Archetype string
	Model     string // optional override of the archetype model
}

// PlayerSpawn represents a player spawn location.
type PlayerSpawn struct {
	X, Z  float64
	Index int
}
