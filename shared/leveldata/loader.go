package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/lafriks/go-tiled"
)

// Load parses a TMX file. It takes an fs.FS so callers can pass embed.FS
// or os.DirFS.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, fmt.Errorf("load TMX %s: invalid tile size %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	sx := 1 / float64(levelMap.TileWidth)
	sz := 1 / float64(levelMap.TileHeight)

	level := &Level{
		Name:  strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width: float64(levelMap.Width),
		Depth: float64(levelMap.Height),
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Ground":
			for _, o := range og.Objects {
				height := o.Properties.GetFloat("height")
				r := GroundRect{
					X:      o.X * sx,
					Z:      o.Y * sz,
					W:      o.Width * sx,
					D:      o.Height * sz,
					Height: height,
					RampTo: height,
				}
				switch strings.ToLower(o.Properties.GetString("rampAxis")) {
				case "x":
					r.RampAxis = gamemath.RampAlongX
					r.RampTo = o.Properties.GetFloat("rampTo")
				case "z":
					r.RampAxis = gamemath.RampAlongZ
					r.RampTo = o.Properties.GetFloat("rampTo")
				}
				level.Ground = append(level.Ground, r)
			}
		case "Walls":
			for _, o := range og.Objects {
				level.Walls = append(level.Walls, wallSegments(o, sx, sz)...)
			}
		case "EnemySpawn":
			for _, o := range og.Objects {
				archetype := o.Properties.GetString("archetype")
				if archetype == "" {
					archetype = o.Class
				}
				if archetype == "" {
					archetype = o.Type //nolint:staticcheck // TMX uses type= attribute
				}
				level.EnemySpawns = append(level.EnemySpawns, EnemySpawn{
					X:         o.X * sx,
					Z:         o.Y * sz,
					Archetype: archetype,
					Model:     o.Properties.GetString("model"),
				})
			}
		case "PlayerSpawn":
			for _, o := range og.Objects {
				level.PlayerSpawns = append(level.PlayerSpawns, PlayerSpawn{
					X:     o.X * sx,
					Z:     o.Y * sz,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
			sort.Slice(level.PlayerSpawns, func(i, j int) bool {
				return level.PlayerSpawns[i].Index < level.PlayerSpawns[j].Index
			})
		}
	}

	return level, nil
}

// wallSegments turns a polyline into consecutive segments, or a plain
// rectangle object into its four edges.
func wallSegments(o *tiled.Object, sx, sz float64) []Segment {
	pt := func(x, z float64) gamemath.Vec3 {
		return gamemath.V3(x*sx, 0, z*sz)
	}

	if len(o.PolyLines) > 0 {
		polyline := o.PolyLines[0]
		if polyline.Points == nil || len(*polyline.Points) < 2 {
			return nil
		}
		var segs []Segment
		var prev gamemath.Vec3
		for i, p := range *polyline.Points {
			cur := pt(o.X+p.X, o.Y+p.Y)
			if i > 0 {
				segs = append(segs, Segment{A: prev, B: cur})
			}
			prev = cur
		}
		return segs
	}

	if o.Width <= 0 || o.Height <= 0 {
		return nil
	}
	a := pt(o.X, o.Y)
	b := pt(o.X+o.Width, o.Y)
	c := pt(o.X+o.Width, o.Y+o.Height)
	d := pt(o.X, o.Y+o.Height)
	return []Segment{{a, b}, {b, c}, {c, d}, {d, a}}
}

// LoadAll discovers all .tmx files in levelsDir within fsys and returns
// them keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		level, err := Load(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
