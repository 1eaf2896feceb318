package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync"

	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/projectile"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/shared/leveldata"
	"github.com/automoto/doomerang-crypt/sim"
	"github.com/automoto/doomerang-crypt/vfx"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
)

// LocalScene runs the simulation in-process: WASD moves the player, the
// mouse aims and left click fires. Number keys spawn archetypes at the
// cursor, R reloads the level and P pauses.
type LocalScene struct {
	level  *leveldata.Level
	sim    *sim.Simulation
	over   *overlay
	view   view
	player donburi.Entity
	paused bool
	once   sync.Once

	moveSpeed float64
	lastFire  float64
}

func NewLocalScene(level *leveldata.Level) *LocalScene {
	return &LocalScene{level: level, moveSpeed: 4}
}

func (ls *LocalScene) configure() {
	ls.over = newOverlay()
	ls.view = newView()
	ls.sim = sim.New(sim.Options{Collaborators: ls.over})
	ls.load()
}

func (ls *LocalScene) load() {
	agents := ls.sim.LoadLevel(ls.level)
	if ls.player == donburi.Null || !ls.sim.MovePlayer(ls.player, ls.spawn()) {
		ls.player = ls.sim.AddPlayer("you", 0, ls.spawn())
	}
	ls.lastFire = -1
	log.Printf("[sandbox] %s: %d agents", ls.level.Name, len(agents))
}

func (ls *LocalScene) spawn() gamemath.Vec3 {
	if pos, ok := ls.sim.PlayerSpawn(0); ok {
		return pos
	}
	return gamemath.V3(1, 0, 1)
}

func (ls *LocalScene) Update() {
	ls.once.Do(ls.configure)

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ls.paused = !ls.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ls.load()
	}
	if ls.paused {
		return
	}

	delta := 1 / float64(ebiten.TPS())
	ls.handleInput(delta)
	ls.sim.Tick(delta)
}

var spawnKeys = map[ebiten.Key]cfg.Archetype{
	ebiten.Key1: cfg.Default,
	ebiten.Key2: cfg.Goblin,
	ebiten.Key3: cfg.Vampire,
	ebiten.Key4: cfg.Boss,
}

func (ls *LocalScene) handleInput(delta float64) {
	pos, ok := ls.playerPosition()
	if !ok {
		return
	}

	var dir gamemath.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dir.Z--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dir.Z++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dir.X++
	}
	next := pos.Add(dir.Normalize().Scale(ls.moveSpeed * delta))
	next.X = gamemath.Clamp(next.X, 0, ls.level.Width)
	next.Z = gamemath.Clamp(next.Z, 0, ls.level.Depth)
	next.Y = ls.sim.GroundHeight(next.X, next.Z)
	ls.sim.MovePlayer(ls.player, next)

	cursor := ls.view.toWorld(ebiten.CursorPosition())
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && ls.sim.Now()-ls.lastFire >= 0.2 {
		aim := cursor.Sub(next)
		aim.Y = 0
		if aim.LengthSq() > 0 {
			ls.sim.Fire(next, aim)
			ls.lastFire = ls.sim.Now()
		}
	}

	for key, a := range spawnKeys {
		if inpututil.IsKeyJustPressed(key) {
			cursor.Y = ls.sim.GroundHeight(cursor.X, cursor.Z)
			ls.sim.SpawnEnemy(a.String(), cursor)
		}
	}
}

func (ls *LocalScene) playerPosition() (gamemath.Vec3, bool) {
	for _, p := range ls.sim.Players() {
		if p.ID == ls.player {
			return p.Position, true
		}
	}
	return gamemath.Vec3{}, false
}

func (ls *LocalScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if ls.sim == nil {
		return
	}

	ls.view.drawLevel(screen, ls.level)

	for _, l := range ls.over.lights {
		if l.placed {
			ls.view.drawLight(screen, l.position)
		}
	}

	agents := ls.sim.Agents()
	for _, a := range agents {
		ls.view.drawAgent(screen, a.Position, a.Yaw, a.HitRadius, a.State, a.Inert)
		if bar, ok := ls.over.bars[a.ID]; ok {
			ls.view.drawHealthBar(screen, a.Position, bar.fraction)
		}
	}

	for _, p := range ls.sim.Players() {
		ls.view.drawPlayer(screen, p.Position, p.Name, p.Health, p.MaxHealth)
	}

	ls.sim.Projectiles().Each(func(_ int, p *projectile.Projectile) {
		ls.view.drawProjectile(screen, p.Position, ls.sim.Projectiles().Radius())
	})

	now := ls.sim.Now()
	ls.sim.Particles().Each(func(b *vfx.Batch) {
		for i := range b.Particles {
			if pos, alpha, ok := b.Sample(i, now); ok {
				ls.view.drawParticle(screen, pos, alpha)
			}
		}
	})

	st := ls.sim.Stats()
	lines := []string{
		fmt.Sprintf("%s  t=%.1fs  movement=%s", ls.level.Name, st.Now, cfg.Sim.Movement),
		fmt.Sprintf("agents %d (loading %d)  kills %d  shots %d  hits %d", st.Agents, ls.sim.Loading(), st.Kills, st.ShotsFired, st.ProjectileHits),
		fmt.Sprintf("projectiles %d/%d  bursts %d  pending hits %d", st.ActiveProjectiles, ls.sim.Projectiles().Capacity(), st.ActiveBursts, st.PendingHits),
	}
	if nearest, ok := nearestAgent(agents, ls.view.toWorld(ebiten.CursorPosition())); ok {
		lines = append(lines, agentLabel(nearest.Archetype.String(), nearest.State, nearest.Clip))
	}
	if ls.paused {
		lines = append(lines, "PAUSED")
	}
	drawHUD(screen, lines...)
}

func nearestAgent(agents []sim.AgentView, at gamemath.Vec3) (sim.AgentView, bool) {
	best, bestD := sim.AgentView{}, 4.0
	found := false
	for _, a := range agents {
		flat := a.Position
		flat.Y = 0
		if d := gamemath.DistanceSq(flat, at); d < bestD {
			best, bestD, found = a, d, true
		}
	}
	return best, found
}
