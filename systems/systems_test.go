package systems

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/automoto/doomerang-crypt/assets"
	"github.com/automoto/doomerang-crypt/assets/animations"
	"github.com/automoto/doomerang-crypt/components"
	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/host"
	"github.com/automoto/doomerang-crypt/projectile"
	"github.com/automoto/doomerang-crypt/schedule"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/spatial"
	"github.com/automoto/doomerang-crypt/systems/factory"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/automoto/doomerang-crypt/vfx"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// instantLoader resolves every load before the first tick.
type instantLoader struct {
	err error
}

func (l instantLoader) Load(path string) <-chan assets.Result {
	ch := make(chan assets.Result, 1)
	if l.err != nil {
		ch <- assets.Result{Err: l.err}
		return ch
	}
	ch <- assets.Result{Model: &assets.Model{
		Path:   path,
		Bounds: gamemath.Bounds{Min: gamemath.V3(-0.5, 0, -0.25), Max: gamemath.V3(0.5, 2, 0.25)},
		Clips: []animations.Clip{
			{Name: cfg.ClipIdle, Duration: 1, Loop: true},
			{Name: cfg.ClipRun, Duration: 0.8, Loop: true},
			{Name: cfg.ClipAttack, Duration: 0.5},
		},
	}}
	return ch
}

type recordingBar struct {
	last    float64
	removed bool
}

func (b *recordingBar) SetHealth(cur, _ float64) { b.last = cur }
func (b *recordingBar) Remove()                  { b.removed = true }

type recordingCollab struct {
	bars map[donburi.Entity]*recordingBar
}

func (c *recordingCollab) NewHealthBar(e donburi.Entity) host.HealthBar {
	b := &recordingBar{}
	c.bars[e] = b
	return b
}

func (c *recordingCollab) NewLight(donburi.Entity) host.Light {
	return host.Nop{}.NewLight(donburi.Null)
}

type fixture struct {
	w   donburi.World
	ecs *ecs.ECS
	env *components.EnvData
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Cleanup(cfg.Reset)
	w := donburi.NewWorld()
	entry := factory.CreateEnv(w, components.EnvData{Attacks: schedule.NewQueue()})
	return &fixture{
		w:   w,
		ecs: ecs.NewECS(w),
		env: components.Env.Get(entry),
	}
}

func (f *fixture) tick(delta float64) {
	f.env.Now += delta
	f.env.Delta = delta
	UpdateModelLoads(f.ecs)
	UpdateEnemies(f.ecs)
	ApplyDeferredDamage(f.ecs)
	UpdateDeaths(f.ecs)
}

func (f *fixture) enemy(t *testing.T, pos gamemath.Vec3, profile func(*cfg.AgentBehaviorProfile)) *donburi.Entry {
	t.Helper()
	e := factory.CreateEnemy(f.w, factory.EnemySpawn{Archetype: "default", Position: pos}, instantLoader{}, nil)
	if profile != nil {
		profile(&components.Agent.Get(e).Profile)
	}
	UpdateModelLoads(f.ecs)
	if !components.Agent.Get(e).Ready {
		t.Fatal("agent not ready after load")
	}
	return e
}

func (f *fixture) player(pos gamemath.Vec3) *donburi.Entry {
	return factory.CreatePlayer(f.w, "p1", 0, pos)
}

func target(e, p *donburi.Entry) {
	components.Agent.Get(e).Target = p.Entity()
}

func TestAttackScenario(t *testing.T) {
	f := newFixture(t)
	p := f.player(gamemath.V3(0, 0, 0))
	start := gamemath.V3(1, 0, 0)
	e := f.enemy(t, start, func(pr *cfg.AgentBehaviorProfile) {
		pr.AttackRange = 1.5
		pr.DetectionRange = 12
	})
	target(e, p)

	f.tick(1.0 / 60)

	agent := components.Agent.Get(e)
	if agent.State != cfg.Attacking {
		t.Errorf("state = %v, want attacking", agent.State)
	}
	if got := components.Transform.Get(e).Position; got != start {
		t.Errorf("attacking agent moved to %+v", got)
	}
	if f.env.Attacks.PendingFor(e.Entity()) != 1 {
		t.Error("no deferred hit scheduled")
	}
}

func TestChaseScenario(t *testing.T) {
	tests := []struct {
		name     string
		movement cfg.MovementMode
		delta    float64
		wantStep float64
	}{
		{"per tick", cfg.MovePerTick, 1.0 / 60, 2},
		{"per second", cfg.MovePerSecond, 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cfg.Sim.Movement = tt.movement

			p := f.player(gamemath.V3(0, 0, 0))
			e := f.enemy(t, gamemath.V3(6, 0, 8), func(pr *cfg.AgentBehaviorProfile) {
				pr.Speed = 2
				pr.AttackRange = 2
				pr.DetectionRange = 12
			})
			target(e, p)

			f.tick(tt.delta)

			if s := components.Agent.Get(e).State; s != cfg.Chasing {
				t.Fatalf("state = %v, want chasing", s)
			}
			pos := components.Transform.Get(e).Position
			if d := 10 - gamemath.Distance(pos, gamemath.Vec3{}); math.Abs(d-tt.wantStep) > 1e-9 {
				t.Errorf("step = %v, want %v", d, tt.wantStep)
			}
			want := gamemath.YawToward(pos, gamemath.Vec3{})
			if yaw := components.Transform.Get(e).Yaw; math.Abs(yaw-want) > 1e-9 {
				t.Errorf("yaw = %v, want %v", yaw, want)
			}
		})
	}
}

func TestStateFollowsDistance(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewPCG(42, 1))
	p := f.player(gamemath.Vec3{})

	for i := 0; i < 500; i++ {
		attack := 0.5 + rng.Float64()*3
		detect := attack + rng.Float64()*15
		target3 := gamemath.V3(rng.Float64()*40-20, 0, rng.Float64()*40-20)
		pos := gamemath.V3(rng.Float64()*40-20, 0, rng.Float64()*40-20)
		components.Transform.Get(p).Position = target3

		e := f.enemy(t, pos, func(pr *cfg.AgentBehaviorProfile) {
			pr.AttackRange = attack
			pr.DetectionRange = detect
		})
		target(e, p)

		dist := gamemath.Distance(pos, target3)
		want := cfg.Idle
		switch {
		case dist < attack:
			want = cfg.Attacking
		case dist < detect:
			want = cfg.Chasing
		}

		f.env.Now += 1.0 / 60
		f.env.Delta = 1.0 / 60
		UpdateEnemies(f.ecs)

		if got := components.Agent.Get(e).State; got != want {
			t.Fatalf("case %d: dist=%.3f attack=%.3f detect=%.3f state=%v want %v", i, dist, attack, detect, got, want)
		}
		RemoveEnemy(f.w, f.env, e)
	}
}

func TestAttackCooldownAndHealthClamp(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewPCG(9, 9))

	p := f.player(gamemath.V3(0, 0, 0))
	e := f.enemy(t, gamemath.V3(0.5, 0, 0), func(pr *cfg.AgentBehaviorProfile) {
		pr.AttackCooldownSeconds = 0.7
		pr.AttackDamage = 9
	})
	target(e, p)
	health := components.Health.Get(p)

	var hitTimes []float64
	last := health.Current
	for i := 0; i < 2000 && health.Current > 0; i++ {
		f.tick(0.005 + rng.Float64()*0.05)
		if health.Current < 0 || health.Current > health.Max {
			t.Fatalf("player health %v outside [0, %v]", health.Current, health.Max)
		}
		if health.Current < last {
			hitTimes = append(hitTimes, f.env.Now)
			last = health.Current
		}
	}

	if len(hitTimes) < 3 {
		t.Fatalf("only %d hits landed", len(hitTimes))
	}
	for i := 1; i < len(hitTimes); i++ {
		// Hits land on the first tick at or after their fire time, so the
		// observed gap can shrink by at most one tick.
		if gap := hitTimes[i] - hitTimes[i-1]; gap < 0.7-0.055 {
			t.Errorf("hits %d and %d only %.3fs apart", i-1, i, gap)
		}
	}
	if health.Current != 0 {
		t.Errorf("player health = %v, want clamped 0", health.Current)
	}
}

func TestDeferredHitOnRemovedTargetIsDropped(t *testing.T) {
	f := newFixture(t)
	p := f.player(gamemath.V3(0, 0, 0))
	e := f.enemy(t, gamemath.V3(1, 0, 0), nil)
	target(e, p)

	f.tick(0.01)
	if f.env.Attacks.Len() != 1 {
		t.Fatal("no hit scheduled")
	}
	f.w.Remove(p.Entity())

	for i := 0; i < 100; i++ {
		f.tick(0.01)
	}
	if f.env.Counters.DroppedHits != 1 {
		t.Errorf("dropped = %d, want 1", f.env.Counters.DroppedHits)
	}
	if s := components.Agent.Get(e).State; s != cfg.Idle {
		t.Errorf("agent without target state = %v", s)
	}
}

func TestRemoveEnemyCancelsHitsAndReleases(t *testing.T) {
	f := newFixture(t)
	collab := &recordingCollab{bars: make(map[donburi.Entity]*recordingBar)}
	p := f.player(gamemath.V3(0, 0, 0))
	e := factory.CreateEnemy(f.w, factory.EnemySpawn{Archetype: "goblin", Position: gamemath.V3(0.5, 0, 0)}, instantLoader{}, collab)
	target(e, p)
	f.tick(0.01)

	id := e.Entity()
	if f.env.Attacks.PendingFor(id) == 0 {
		t.Fatal("no pending hit")
	}
	RemoveEnemy(f.w, f.env, e)

	if f.w.Valid(id) {
		t.Error("entity still valid")
	}
	if f.env.Attacks.PendingFor(id) != 0 {
		t.Error("pending hit survived removal")
	}
	if !collab.bars[id].removed {
		t.Error("health bar not released")
	}
}

func TestDeathSpawnsBurst(t *testing.T) {
	f := newFixture(t)
	clock := func() float64 { return f.env.Now }
	f.env.Effects = vfx.NewPool(cfg.Particles, clock, 1)
	collab := &recordingCollab{bars: make(map[donburi.Entity]*recordingBar)}

	e := factory.CreateEnemy(f.w, factory.EnemySpawn{Archetype: "vampire"}, instantLoader{}, collab)
	UpdateModelLoads(f.ecs)
	id := e.Entity()

	DamageAgent(f.w, f.env, id, 1000)
	if bar := collab.bars[id]; bar.last != 0 {
		t.Errorf("health bar shows %v", bar.last)
	}
	f.tick(0.01)

	if f.w.Valid(id) {
		t.Fatal("dead agent not removed")
	}
	if f.env.Effects.Active() != 1 {
		t.Errorf("active bursts = %d", f.env.Effects.Active())
	}
	if f.env.Counters.AgentKills != 1 {
		t.Errorf("kills = %d", f.env.Counters.AgentKills)
	}
}

func TestGroundSnapping(t *testing.T) {
	f := newFixture(t)
	ground := spatial.NewGround(-10, -10, 10, 10, 4)
	ground.Add(spatial.Patch{X: -10, Z: -10, W: 20, D: 20, Y0: 2, Y1: 2})
	f.env.Ground = ground

	e := f.enemy(t, gamemath.V3(0, 0.5, 0), func(pr *cfg.AgentBehaviorProfile) {
		pr.GroundOffset = 0.25
	})

	f.tick(1.0 / 60)
	y := components.Transform.Get(e).Position.Y
	if y <= 0.5 || y >= 2.25 {
		t.Errorf("first tick y = %v, want smoothed between 0.5 and 2.25", y)
	}
	for i := 0; i < 600; i++ {
		f.tick(1.0 / 60)
	}
	if y := components.Transform.Get(e).Position.Y; math.Abs(y-2.25) > 1e-6 {
		t.Errorf("settled y = %v, want 2.25", y)
	}

	// Off the ground the cached surface still holds.
	components.Transform.Get(e).Position.X = 50
	f.tick(1.0 / 60)
	if y := components.Transform.Get(e).Position.Y; math.Abs(y-2.25) > 1e-6 {
		t.Errorf("y after leaving ground = %v", y)
	}
}

func TestNoGroundKeepsHeight(t *testing.T) {
	f := newFixture(t)
	e := f.enemy(t, gamemath.V3(0, 3, 0), nil)
	f.tick(1.0 / 60)
	agent := components.Agent.Get(e)
	if !agent.HasGround || agent.GroundY != 3 {
		t.Errorf("cached ground = %v,%v", agent.GroundY, agent.HasGround)
	}
	if y := components.Transform.Get(e).Position.Y; y != 3 {
		t.Errorf("y = %v, want 3", y)
	}
}

func TestFailedLoadLeavesAgentInert(t *testing.T) {
	f := newFixture(t)
	p := f.player(gamemath.V3(0, 0, 0))
	e := factory.CreateEnemy(f.w, factory.EnemySpawn{Archetype: "boss", Position: gamemath.V3(1, 0, 0)},
		instantLoader{err: errors.New("boom")}, nil)
	target(e, p)

	f.tick(0.1)
	f.tick(0.1)

	if !e.HasComponent(tags.Inert) {
		t.Error("failed agent not tagged inert")
	}
	if components.Agent.Get(e).Ready {
		t.Error("failed agent marked ready")
	}
	if f.env.Attacks.Len() != 0 {
		t.Error("inert agent attacked")
	}
	at := &AgentTargets{World: f.w, Env: f.env}
	if len(at.Targets()) != 0 {
		t.Error("inert agent offered to projectiles")
	}
}

func TestUnknownArchetypeFallsBack(t *testing.T) {
	f := newFixture(t)
	e := factory.CreateEnemy(f.w, factory.EnemySpawn{Archetype: "wraith"}, instantLoader{}, nil)
	agent := components.Agent.Get(e)
	if agent.Archetype != cfg.Default || agent.Profile.Name != "default" {
		t.Errorf("archetype = %v profile = %q", agent.Archetype, agent.Profile.Name)
	}
	UpdateModelLoads(f.ecs)
	if want := 0.5 * agent.Profile.ScaleFactor; math.Abs(agent.HitRadius-want) > 1e-9 {
		t.Errorf("hit radius = %v, want %v", agent.HitRadius, want)
	}
}

func TestTargetAcquisitionUsesSight(t *testing.T) {
	f := newFixture(t)
	sight := spatial.NewSight(0.01)
	sight.AddWall(gamemath.V3(3, 0, -10), gamemath.V3(3, 0, 10))
	f.env.Sight = sight

	hidden := f.player(gamemath.V3(5, 0, 0))
	visible := f.player(gamemath.V3(-8, 0, 0))
	e := f.enemy(t, gamemath.V3(0, 0, 0), nil)

	SyncSight(f.ecs)
	f.tick(1.0 / 60)

	if got := components.Agent.Get(e).Target; got != visible.Entity() {
		t.Errorf("target = %v, want visible player %v (hidden %v)", got, visible.Entity(), hidden.Entity())
	}

	f.w.Remove(visible.Entity())
	SyncSight(f.ecs)
	f.tick(1.0 / 60)
	if got := components.Agent.Get(e).Target; got != donburi.Null {
		t.Errorf("target = %v after visible player left", got)
	}
}

func TestProjectilesSkipAgentKilledInSamePass(t *testing.T) {
	f := newFixture(t)
	clock := func() float64 { return f.env.Now }
	f.env.Projectiles = projectile.NewSystem(cfg.Projectile, clock)

	e := f.enemy(t, gamemath.V3(0, 0, 0), nil)
	health := components.Health.Get(e)
	health.Current = cfg.Projectile.Damage / 2

	f.env.Projectiles.Fire(gamemath.V3(0, 0, 0), gamemath.V3(1, 0, 0))
	f.env.Projectiles.Fire(gamemath.V3(0, 0, 0.1), gamemath.V3(1, 0, 0))

	f.env.Now += 1.0 / 60
	f.env.Delta = 1.0 / 60
	NewUpdateProjectiles()(f.ecs)

	if hits := f.env.Projectiles.Counters().Hits; hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if got, want := f.env.Counters.AgentDamage, cfg.Projectile.Damage/2; got != want {
		t.Errorf("agent damage = %v, want %v", got, want)
	}

	at := &AgentTargets{World: f.w, Env: f.env}
	if at.ApplyDamage(e.Entity(), 1) {
		t.Error("damage landed on a dead agent")
	}
}

func TestSystemsWithoutEnvAreNoops(t *testing.T) {
	t.Cleanup(cfg.Reset)
	w := donburi.NewWorld()
	e := ecs.NewECS(w)
	e.AddSystem(UpdateModelLoads)
	e.AddSystem(SyncSight)
	e.AddSystem(UpdateEnemies)
	e.AddSystem(ApplyDeferredDamage)
	e.AddSystem(NewUpdateProjectiles())
	e.AddSystem(UpdateDeaths)
	e.AddSystem(UpdateParticles)

	factory.CreateEnemy(w, factory.EnemySpawn{Archetype: "default"}, instantLoader{}, nil)
	e.Update()

	if GetEnv(w) != nil {
		t.Error("env created implicitly")
	}
}
