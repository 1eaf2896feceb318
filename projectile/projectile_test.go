package projectile

import (
	"math"
	"testing"

	"github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/yohamta/donburi"
)

type fakeTargets struct {
	list   []Target
	damage map[donburi.Entity][]float64
	health map[donburi.Entity]float64 // absent means unlimited
}

func newFakeTargets(list ...Target) *fakeTargets {
	return &fakeTargets{
		list:   list,
		damage: make(map[donburi.Entity][]float64),
		health: make(map[donburi.Entity]float64),
	}
}

func (f *fakeTargets) Targets() []Target { return f.list }

func (f *fakeTargets) ApplyDamage(id donburi.Entity, amount float64) bool {
	if hp, ok := f.health[id]; ok {
		if hp <= 0 {
			return false
		}
		f.health[id] = max(hp-amount, 0)
	}
	f.damage[id] = append(f.damage[id], amount)
	return true
}

type manualClock struct{ now float64 }

func (c *manualClock) Now() float64 { return c.now }

func testConfig() config.ProjectileConfig {
	return config.ProjectileConfig{
		Speed:           8,
		LifetimeSeconds: 2,
		Radius:          0.25,
		Damage:          25,
		InitialPool:     4,
	}
}

func run(s *System, clk *manualClock, targets Targets, delta float64, ticks int) {
	for i := 0; i < ticks; i++ {
		clk.now += delta
		s.Advance(delta, targets)
	}
}

func TestFlightDistance(t *testing.T) {
	clk := &manualClock{}
	s := NewSystem(testConfig(), clk.Now)

	slot := s.Fire(gamemath.V3(1, 0, 1), gamemath.V3(0, 0, 2))
	clk.now = 0.625
	s.Advance(0.625, nil)

	p := s.Get(slot)
	if p == nil {
		t.Fatal("projectile expired early")
	}
	want := gamemath.V3(1, 0, 6)
	if gamemath.Distance(p.Position, want) > 1e-9 {
		t.Errorf("position = %+v, want %+v", p.Position, want)
	}
	if math.Abs(p.Direction.Length()-1) > 1e-12 {
		t.Errorf("direction not normalized: %+v", p.Direction)
	}
}

func TestMultiHitDamagesEachAgentOnce(t *testing.T) {
	cfg := testConfig()
	cfg.Speed = 1 // slow enough to overlap each agent for many ticks
	clk := &manualClock{}
	s := NewSystem(cfg, clk.Now)

	targets := newFakeTargets(
		Target{ID: 1, Position: gamemath.V3(0.2, 0, 0), HitRadius: 0.5},
		Target{ID: 2, Position: gamemath.V3(0.6, 0, 0), HitRadius: 0.5},
		Target{ID: 3, Position: gamemath.V3(1.0, 0, 0), HitRadius: 0.5},
		Target{ID: 4, Position: gamemath.V3(0, 0, 5), HitRadius: 0.5},
	)
	s.Fire(gamemath.V3(0, 0, 0), gamemath.V3(1, 0, 0))
	run(s, clk, targets, 1.0/60, 100)

	for _, id := range []donburi.Entity{1, 2, 3} {
		if got := len(targets.damage[id]); got != 1 {
			t.Errorf("agent %v damaged %d times, want 1", id, got)
		}
	}
	if len(targets.damage[4]) != 0 {
		t.Error("agent off the flight path was damaged")
	}
	if s.Active() != 1 {
		t.Error("projectile removed after hitting")
	}
	if c := s.Counters(); c.Hits != 3 || c.Fired != 1 {
		t.Errorf("counters = %+v", c)
	}
}

func TestExpiredProjectileNeverCollides(t *testing.T) {
	clk := &manualClock{}
	s := NewSystem(testConfig(), clk.Now)

	// Reachable only after the 2s lifetime (x >= 16.05).
	targets := newFakeTargets(Target{ID: 7, Position: gamemath.V3(16.5, 0, 0), HitRadius: 0.2})
	clk.now = 3
	created := clk.now
	s.Fire(gamemath.V3(0, 0, 0), gamemath.V3(1, 0, 0))

	const dt = 1.0 / 60
	for clk.now-created < 2.5 {
		clk.now += dt
		s.Advance(dt, targets)
		if clk.now-created >= 2 && s.Active() != 0 {
			t.Fatalf("still active at age %.4f", clk.now-created)
		}
	}
	if len(targets.damage[7]) != 0 {
		t.Error("expired projectile damaged an agent")
	}
	if s.Counters().Expired != 1 {
		t.Errorf("expired = %d", s.Counters().Expired)
	}
}

func TestPoolReuseClearsHitSet(t *testing.T) {
	clk := &manualClock{}
	s := NewSystem(testConfig(), clk.Now)
	targets := newFakeTargets(Target{ID: 1, Position: gamemath.V3(0.5, 0, 0), HitRadius: 0.5})

	s.Fire(gamemath.V3(0, 0, 0), gamemath.V3(1, 0, 0))
	run(s, clk, targets, 0.1, 25)
	if s.Active() != 0 {
		t.Fatal("first projectile did not expire")
	}

	capBefore := s.Capacity()
	s.Fire(gamemath.V3(0, 0, 0), gamemath.V3(1, 0, 0))
	run(s, clk, targets, 0.01, 2)

	if s.Capacity() != capBefore {
		t.Errorf("capacity grew from %d to %d on reuse", capBefore, s.Capacity())
	}
	if got := len(targets.damage[1]); got != 2 {
		t.Errorf("damage events = %d, want one per projectile", got)
	}
}

func TestPoolGrowsWhenExhausted(t *testing.T) {
	cfg := testConfig()
	cfg.InitialPool = 2
	clk := &manualClock{}
	s := NewSystem(cfg, clk.Now)

	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		seen[s.Fire(gamemath.V3(0, 0, 0), gamemath.V3(0, 0, 1))] = true
	}
	if len(seen) != 5 || s.Active() != 5 || s.Capacity() != 5 {
		t.Errorf("slots=%d active=%d capacity=%d", len(seen), s.Active(), s.Capacity())
	}

	s.Reset()
	if s.Active() != 0 {
		t.Error("Reset left projectiles in flight")
	}
	n := 0
	s.Each(func(int, *Projectile) { n++ })
	if n != 0 {
		t.Errorf("Each visited %d after Reset", n)
	}
}

func TestTargetKilledEarlierInPassIsSkipped(t *testing.T) {
	clk := &manualClock{}
	s := NewSystem(testConfig(), clk.Now)

	targets := newFakeTargets(Target{ID: 1, Position: gamemath.V3(0, 0, 0), HitRadius: 0.5})
	targets.health[1] = 10

	first := s.Fire(gamemath.V3(0, 0, 0), gamemath.V3(1, 0, 0))
	second := s.Fire(gamemath.V3(0, 0, 0.1), gamemath.V3(1, 0, 0))
	run(s, clk, targets, 1.0/60, 1)

	if got := len(targets.damage[1]); got != 1 {
		t.Errorf("damage applied %d times, want 1", got)
	}
	if hits := s.Counters().Hits; hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	hit := 0
	for _, slot := range []int{first, second} {
		if s.Get(slot).HasHit(1) {
			hit++
		}
	}
	if hit != 1 {
		t.Errorf("%d projectiles recorded the kill, want 1", hit)
	}
}

func TestSetConfigAppliesToLaterShots(t *testing.T) {
	clk := &manualClock{}
	s := NewSystem(testConfig(), clk.Now)

	before := s.Fire(gamemath.Vec3{}, gamemath.V3(1, 0, 0))
	cfg := testConfig()
	cfg.Speed = 20
	s.SetConfig(cfg)
	after := s.Fire(gamemath.Vec3{}, gamemath.V3(1, 0, 0))

	if got := s.Get(before).Speed; got != 8 {
		t.Errorf("in-flight speed = %v, want 8", got)
	}
	if got := s.Get(after).Speed; got != 20 {
		t.Errorf("new shot speed = %v, want 20", got)
	}
}
