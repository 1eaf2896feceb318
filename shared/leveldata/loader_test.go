package leveldata

import (
	"os"
	"testing"

	"github.com/automoto/doomerang-crypt/shared/gamemath"
)

func TestLoadArena(t *testing.T) {
	level, err := Load(os.DirFS("testdata"), "arena.tmx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if level.Name != "arena" || level.Width != 20 || level.Depth != 10 {
		t.Errorf("level = %q %vx%v", level.Name, level.Width, level.Depth)
	}

	if len(level.Ground) != 2 {
		t.Fatalf("ground rects = %d, want 2", len(level.Ground))
	}
	ramp := level.Ground[1]
	want := GroundRect{X: 10, Z: 2, W: 4, D: 2, Height: 1, RampTo: 3, RampAxis: gamemath.RampAlongZ}
	if ramp != want {
		t.Errorf("ramp = %+v, want %+v", ramp, want)
	}
	if level.Ground[0].RampAxis != gamemath.RampNone || level.Ground[0].RampTo != 0 {
		t.Errorf("floor = %+v", level.Ground[0])
	}

	// two polyline segments plus four rectangle edges
	if len(level.Walls) != 6 {
		t.Fatalf("walls = %d, want 6", len(level.Walls))
	}
	first := level.Walls[0]
	if first.A != gamemath.V3(2, 0, 1) || first.B != gamemath.V3(4, 0, 1) {
		t.Errorf("first wall = %+v", first)
	}

	if len(level.EnemySpawns) != 2 {
		t.Fatalf("enemy spawns = %d", len(level.EnemySpawns))
	}
	goblin := level.EnemySpawns[0]
	if goblin.Archetype != "goblin" || goblin.Model != "models/goblin_alt.yaml" || goblin.X != 3 || goblin.Z != 5 {
		t.Errorf("goblin spawn = %+v", goblin)
	}
	if level.EnemySpawns[1].Archetype != "wraith" {
		t.Errorf("second spawn archetype = %q", level.EnemySpawns[1].Archetype)
	}

	if len(level.PlayerSpawns) != 2 || level.PlayerSpawns[0].Index != 0 || level.PlayerSpawns[0].X != 1 {
		t.Errorf("player spawns = %+v", level.PlayerSpawns)
	}
}

func TestLoadAllBundledLevels(t *testing.T) {
	levels, names, err := LoadAll(os.DirFS("../../assets"), "levels")
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(names) == 0 || levels[names[0]] == nil {
		t.Fatalf("names = %v", names)
	}
	crypt := levels["crypt"]
	if crypt == nil {
		t.Fatal("crypt level missing")
	}
	if len(crypt.EnemySpawns) == 0 || len(crypt.PlayerSpawns) == 0 || len(crypt.Ground) == 0 {
		t.Errorf("crypt = %d enemies, %d players, %d ground", len(crypt.EnemySpawns), len(crypt.PlayerSpawns), len(crypt.Ground))
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(os.DirFS("testdata"), "nope.tmx"); err == nil {
		t.Error("expected error for missing file")
	}
}
