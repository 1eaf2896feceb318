package core

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/automoto/doomerang-crypt/shared/leveldata"
)

// LoadAllServerLevels loads all .tmx levels under levels/ in fsys,
// returning them keyed by stem name plus a sorted name list.
func LoadAllServerLevels(fsys fs.FS) (map[string]*leveldata.Level, []string, error) {
	levels, names, err := leveldata.LoadAll(fsys, "levels")
	if err != nil {
		return nil, nil, fmt.Errorf("load all levels: %w", err)
	}

	for _, name := range names {
		l := levels[name]
		log.Printf("[server] level %s: %d ground rects, %d walls, %d enemy spawns, %d player spawns, %.0fx%.0f",
			name, len(l.Ground), len(l.Walls), len(l.EnemySpawns), len(l.PlayerSpawns), l.Width, l.Depth)
	}

	return levels, names, nil
}
