package factory

import (
	"log"

	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/shared/leveldata"
	"github.com/automoto/doomerang-crypt/spatial"
)

// CreateGround indexes the level's ground rects.
func CreateGround(level *leveldata.Level) *spatial.Ground {
	ground := spatial.NewGround(0, 0, level.Width, level.Depth, cfg.Spatial.CellSize)
	for _, r := range level.Ground {
		ground.Add(spatial.Patch{
			X: r.X, Z: r.Z, W: r.W, D: r.D,
			Y0: r.Height, Y1: r.RampTo,
			Axis: r.RampAxis,
		})
	}
	return ground
}

// CreateSight indexes the level's walls.
func CreateSight(level *leveldata.Level) *spatial.Sight {
	sight := spatial.NewSight(cfg.Spatial.SightSlop)
	for _, s := range level.Walls {
		sight.AddWall(s.A, s.B)
	}
	return sight
}

// SpawnHeight samples the ground under a spawn point, zero when none.
func SpawnHeight(ground spatial.GroundQuery, x, z float64) float64 {
	origin := gamemath.V3(x, cfg.Agent.GroundCastDepth, z)
	if hit, ok := ground.CastDown(origin, 2*cfg.Agent.GroundCastDepth); ok {
		return hit.Point.Y
	}
	return 0
}

// CreateLevelSpaces builds both spatial indexes for a level.
func CreateLevelSpaces(level *leveldata.Level) (*spatial.Ground, *spatial.Sight) {
	ground := CreateGround(level)
	sight := CreateSight(level)
	log.Printf("Loaded level %s: %d ground rects, %d walls, %d enemies, %d player spawns",
		level.Name, len(level.Ground), len(level.Walls), len(level.EnemySpawns), len(level.PlayerSpawns))
	return ground, sight
}
