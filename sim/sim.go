// Package sim runs the enemy combat simulation one tick at a time.
package sim

import (
	"github.com/automoto/doomerang-crypt/assets"
	"github.com/automoto/doomerang-crypt/components"
	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/host"
	"github.com/automoto/doomerang-crypt/projectile"
	"github.com/automoto/doomerang-crypt/schedule"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/shared/leveldata"
	"github.com/automoto/doomerang-crypt/spatial"
	"github.com/automoto/doomerang-crypt/systems"
	"github.com/automoto/doomerang-crypt/systems/factory"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/automoto/doomerang-crypt/vfx"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Options configures a Simulation. Nil fields get headless defaults.
type Options struct {
	Loader        assets.ModelLoader
	Collaborators host.Collaborators
	Seed          uint64
}

// Simulation owns the world and everything the tick touches. It is not
// safe for concurrent use; hosts call it from a single goroutine.
type Simulation struct {
	World donburi.World

	ecs *ecs.ECS
	env *components.EnvData

	now  float64
	tick uint64

	ground *spatial.Ground
	sight  *spatial.Sight

	loader assets.ModelLoader
	collab host.Collaborators
	level  *leveldata.Level
}

func New(opts Options) *Simulation {
	if opts.Loader == nil {
		opts.Loader = assets.NewManifestLoader(assets.FS)
	}
	if opts.Collaborators == nil {
		opts.Collaborators = host.Nop{}
	}
	if opts.Seed == 0 {
		opts.Seed = cfg.Sim.Seed
	}

	s := &Simulation{
		World:  donburi.NewWorld(),
		ground: spatial.NewGround(0, 0, 1, 1, cfg.Spatial.CellSize),
		sight:  spatial.NewSight(cfg.Spatial.SightSlop),
		loader: opts.Loader,
		collab: opts.Collaborators,
	}
	entry := factory.CreateEnv(s.World, components.EnvData{
		Ground:      s.ground,
		Sight:       s.sight,
		Attacks:     schedule.NewQueue(),
		Projectiles: projectile.NewSystem(cfg.Projectile, s.Now),
		Effects:     vfx.NewPool(cfg.Particles, s.Now, opts.Seed),
	})
	s.env = components.Env.Get(entry)

	// Agents act before projectiles collide, and projectiles before
	// particles age.
	s.ecs = ecs.NewECS(s.World)
	s.ecs.AddSystem(systems.UpdateModelLoads)
	s.ecs.AddSystem(systems.SyncSight)
	s.ecs.AddSystem(systems.UpdateEnemies)
	s.ecs.AddSystem(systems.ApplyDeferredDamage)
	s.ecs.AddSystem(systems.NewUpdateProjectiles())
	s.ecs.AddSystem(systems.UpdateDeaths)
	s.ecs.AddSystem(systems.UpdateParticles)
	return s
}

// Now is the simulation clock in seconds.
func (s *Simulation) Now() float64 {
	return s.now
}

// Tick advances the simulation by delta seconds.
func (s *Simulation) Tick(delta float64) {
	if delta < 0 {
		delta = 0
	}
	s.now += delta
	s.tick++
	s.env.Now = s.now
	s.env.Delta = delta
	s.env.Deaths = s.env.Deaths[:0]

	s.ecs.Update()
}

// ApplyTuning pushes the current projectile and particle config into the
// pools. Shots and bursts already running keep their values.
func (s *Simulation) ApplyTuning() {
	s.env.Projectiles.SetConfig(cfg.Projectile)
	s.env.Effects.SetConfig(cfg.Particles)
}

// LoadLevel replaces the current level: agents are removed, pools are
// emptied and the spatial indexes rebuilt before the new spawns.
func (s *Simulation) LoadLevel(level *leveldata.Level) []donburi.Entity {
	s.UnloadLevel()

	s.level = level
	s.ground, s.sight = factory.CreateLevelSpaces(level)
	s.env.Ground = s.ground
	s.env.Sight = s.sight

	ids := make([]donburi.Entity, 0, len(level.EnemySpawns))
	for _, sp := range level.EnemySpawns {
		y := factory.SpawnHeight(s.ground, sp.X, sp.Z)
		e := factory.CreateEnemy(s.World, factory.EnemySpawn{
			Archetype: sp.Archetype,
			Position:  gamemath.V3(sp.X, y, sp.Z),
			Model:     sp.Model,
		}, s.loader, s.collab)
		ids = append(ids, e.Entity())
	}
	return ids
}

// UnloadLevel removes every agent without death effects and empties the
// projectile and particle pools. Players stay.
func (s *Simulation) UnloadLevel() {
	systems.RemoveAllEnemies(s.World, s.env)
	s.env.Attacks.Clear()
	s.env.Projectiles.Reset()
	s.env.Effects.Reset()
	s.level = nil
}

func (s *Simulation) Level() *leveldata.Level {
	return s.level
}

// SpawnEnemy adds one agent outside of level loading.
func (s *Simulation) SpawnEnemy(archetype string, pos gamemath.Vec3) donburi.Entity {
	e := factory.CreateEnemy(s.World, factory.EnemySpawn{Archetype: archetype, Position: pos}, s.loader, s.collab)
	return e.Entity()
}

// RemoveEnemy drops an agent and releases its collaborators.
func (s *Simulation) RemoveEnemy(id donburi.Entity) bool {
	if !s.World.Valid(id) {
		return false
	}
	e := s.World.Entry(id)
	if !e.HasComponent(tags.Enemy) {
		return false
	}
	systems.RemoveEnemy(s.World, s.env, e)
	return true
}

// AddPlayer registers a player target at pos. See PlayerSpawn for the
// level's spawn points.
func (s *Simulation) AddPlayer(name string, index int, pos gamemath.Vec3) donburi.Entity {
	return factory.CreatePlayer(s.World, name, index, pos).Entity()
}

// PlayerSpawn returns the level spawn point for index.
func (s *Simulation) PlayerSpawn(index int) (gamemath.Vec3, bool) {
	if s.level == nil || len(s.level.PlayerSpawns) == 0 {
		return gamemath.Vec3{}, false
	}
	sp := s.level.PlayerSpawns[0]
	for _, p := range s.level.PlayerSpawns {
		if p.Index == index {
			sp = p
			break
		}
	}
	y := factory.SpawnHeight(s.ground, sp.X, sp.Z)
	return gamemath.V3(sp.X, y, sp.Z), true
}

// GroundHeight samples the level ground under (x, z), zero off the map.
func (s *Simulation) GroundHeight(x, z float64) float64 {
	return factory.SpawnHeight(s.ground, x, z)
}

// MovePlayer updates a player's position. Players are driven by the host.
func (s *Simulation) MovePlayer(id donburi.Entity, pos gamemath.Vec3) bool {
	e, ok := s.player(id)
	if !ok {
		return false
	}
	components.Transform.Get(e).Position = pos
	return true
}

func (s *Simulation) RemovePlayer(id donburi.Entity) bool {
	if _, ok := s.player(id); !ok {
		return false
	}
	s.World.Remove(id)
	s.sight.RemoveTarget(id)
	return true
}

func (s *Simulation) player(id donburi.Entity) (*donburi.Entry, bool) {
	if !s.World.Valid(id) {
		return nil, false
	}
	e := s.World.Entry(id)
	if !e.HasComponent(tags.Player) {
		return nil, false
	}
	return e, true
}

// Fire launches a projectile and returns its pool slot.
func (s *Simulation) Fire(origin, dir gamemath.Vec3) int {
	return s.env.Projectiles.Fire(origin, dir)
}

// Deaths lists the agents killed during the last tick. The slice is
// reused by the next Tick.
func (s *Simulation) Deaths() []components.Death {
	return s.env.Deaths
}

// Projectiles exposes the projectile pool for drawing and mirroring.
func (s *Simulation) Projectiles() *projectile.System {
	return s.env.Projectiles
}

// Particles exposes the particle pool for drawing.
func (s *Simulation) Particles() *vfx.Pool {
	return s.env.Effects
}

// Ground exposes the ground index.
func (s *Simulation) Ground() spatial.GroundQuery {
	return s.ground
}

// Loading counts agents whose model has not arrived yet.
func (s *Simulation) Loading() int {
	n := 0
	components.Model.Each(s.World, func(e *donburi.Entry) {
		if components.Model.Get(e).Pending != nil {
			n++
		}
	})
	return n
}
