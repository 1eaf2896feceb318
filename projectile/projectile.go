// Package projectile runs pooled projectiles and their hits on agents.
package projectile

import (
	"github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/yohamta/donburi"
)

// expirySlop absorbs clock drift from summing fixed tick deltas.
const expirySlop = 1e-9

// Target is a hittable agent as seen by the projectile pass.
type Target struct {
	ID        donburi.Entity
	Position  gamemath.Vec3
	HitRadius float64
}

// Targets supplies live agents and receives damage. ApplyDamage reports
// false when the target was already dead, so no hit is recorded.
type Targets interface {
	Targets() []Target
	ApplyDamage(id donburi.Entity, amount float64) bool
}

// Projectile is a pooled flight object. A projectile keeps flying after a
// hit and may damage several distinct agents, each at most once.
type Projectile struct {
	Position  gamemath.Vec3
	Direction gamemath.Vec3
	Speed     float64
	CreatedAt float64

	hitSet map[donburi.Entity]struct{}
}

// HasHit reports whether id was already damaged by this projectile.
func (p *Projectile) HasHit(id donburi.Entity) bool {
	_, ok := p.hitSet[id]
	return ok
}

// Counters are cumulative projectile totals.
type Counters struct {
	Fired   int
	Hits    int
	Expired int
}

// System owns the projectile arena. Slots are reused through a free-index
// stack; the arena only grows when every slot is in flight.
type System struct {
	cfg   config.ProjectileConfig
	clock func() float64

	pool   []Projectile
	free   []int
	active []int

	counters Counters
}

// NewSystem preallocates cfg.InitialPool projectiles. clock returns the
// current simulation time in seconds.
func NewSystem(cfg config.ProjectileConfig, clock func() float64) *System {
	s := &System{
		cfg:   cfg,
		clock: clock,
	}
	s.grow(cfg.InitialPool)
	return s
}

func (s *System) grow(n int) {
	for i := 0; i < n; i++ {
		s.pool = append(s.pool, Projectile{hitSet: make(map[donburi.Entity]struct{})})
		s.free = append(s.free, len(s.pool)-1)
	}
}

// SetConfig replaces the tuning used by later shots. Projectiles in flight
// keep their speed.
func (s *System) SetConfig(cfg config.ProjectileConfig) {
	s.cfg = cfg
}

// Fire launches a projectile from origin along dir and returns its slot.
func (s *System) Fire(origin, dir gamemath.Vec3) int {
	if len(s.free) == 0 {
		s.grow(1)
	}
	idx := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]

	p := &s.pool[idx]
	p.Position = origin
	p.Direction = dir.Normalize()
	p.Speed = s.cfg.Speed
	p.CreatedAt = s.clock()
	clear(p.hitSet)

	s.active = append(s.active, idx)
	s.counters.Fired++
	return idx
}

// Advance moves every projectile, expires old ones, then tests the rest
// against targets. Expired projectiles are never tested.
func (s *System) Advance(delta float64, targets Targets) {
	if len(s.active) == 0 {
		return
	}
	now := s.clock()

	var live []Target
	if targets != nil {
		live = targets.Targets()
	}

	kept := s.active[:0]
	for _, idx := range s.active {
		p := &s.pool[idx]
		p.Position = gamemath.Integrate(p.Position, p.Direction, p.Speed, delta)

		if now-p.CreatedAt >= s.cfg.LifetimeSeconds-expirySlop {
			s.free = append(s.free, idx)
			s.counters.Expired++
			continue
		}
		kept = append(kept, idx)

		for _, t := range live {
			if !gamemath.SpheresOverlap(p.Position, s.cfg.Radius, t.Position, t.HitRadius) {
				continue
			}
			if p.HasHit(t.ID) || !targets.ApplyDamage(t.ID, s.cfg.Damage) {
				continue
			}
			p.hitSet[t.ID] = struct{}{}
			s.counters.Hits++
		}
	}
	s.active = kept
}

// Reset returns every active projectile to the pool.
func (s *System) Reset() {
	s.free = append(s.free, s.active...)
	s.active = s.active[:0]
}

// Each calls fn for every projectile in flight.
func (s *System) Each(fn func(slot int, p *Projectile)) {
	for _, idx := range s.active {
		fn(idx, &s.pool[idx])
	}
}

// Get returns the projectile in slot, or nil if the slot is not in flight.
func (s *System) Get(slot int) *Projectile {
	for _, idx := range s.active {
		if idx == slot {
			return &s.pool[idx]
		}
	}
	return nil
}

func (s *System) Active() int {
	return len(s.active)
}

// Capacity is the arena size, in flight or free.
func (s *System) Capacity() int {
	return len(s.pool)
}

func (s *System) Counters() Counters {
	return s.counters
}

// Radius is the collision radius shared by every projectile.
func (s *System) Radius() float64 {
	return s.cfg.Radius
}
