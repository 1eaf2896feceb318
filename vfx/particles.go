// Package vfx pools fixed-capacity particle batches for transient effects.
// Particle motion is a pure function of age; the pool only tracks when a
// whole batch has outlived its lifetime.
package vfx

import (
	"math"
	"math/rand/v2"

	"github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/tanema/gween/ease"
)

type Particle struct {
	LocalPosition gamemath.Vec3
	Velocity      gamemath.Vec3
	SpawnTime     float64
	Enabled       bool
}

// Batch shares one draw call. Particles always has the pool capacity.
type Batch struct {
	Particles []Particle
	StartTime float64
	Lifetime  float64

	activeCount int
	active      bool
}

func (b *Batch) ActiveCount() int {
	return b.activeCount
}

func (b *Batch) Active() bool {
	return b.active
}

func (b *Batch) disableAll() {
	for i := range b.Particles {
		b.Particles[i].Enabled = false
	}
	b.activeCount = 0
	b.active = false
}

// Options tune one spawn call. Zero fields use the pool config.
type Options struct {
	Count    int
	Lifetime float64
	Spread   float64
	MinSpeed float64
	MaxSpeed float64
}

// Pool recycles whole batches once every particle in them has aged out.
type Pool struct {
	cfg   config.ParticleConfig
	clock func() float64
	rng   *rand.Rand

	batches []*Batch
	free    []int
	active  []int

	spawned  int
	recycled int
}

func NewPool(cfg config.ParticleConfig, clock func() float64, seed uint64) *Pool {
	p := &Pool{
		cfg:   cfg,
		clock: clock,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for i := 0; i < cfg.InitialBatches; i++ {
		p.newBatch()
	}
	return p
}

// SetConfig replaces the tuning used by later spawns. Batches already
// allocated keep their capacity.
func (p *Pool) SetConfig(cfg config.ParticleConfig) {
	p.cfg = cfg
}

func (p *Pool) newBatch() {
	p.batches = append(p.batches, &Batch{Particles: make([]Particle, p.cfg.Capacity)})
	p.free = append(p.free, len(p.batches)-1)
}

// Spawn starts a burst at position. Counts above capacity are truncated;
// slots past the count are disabled so nothing from a previous use shows.
func (p *Pool) Spawn(position gamemath.Vec3, opts Options) *Batch {
	if len(p.free) == 0 {
		p.newBatch()
	}
	idx := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	b := p.batches[idx]

	lifetime := orDefault(opts.Lifetime, p.cfg.LifetimeSeconds)
	spread := orDefault(opts.Spread, p.cfg.SpreadRadians)
	minSpeed := orDefault(opts.MinSpeed, p.cfg.MinSpeed)
	maxSpeed := orDefault(opts.MaxSpeed, p.cfg.MaxSpeed)

	count := min(max(opts.Count, 0), len(b.Particles))
	now := p.clock()
	origin := position.Add(gamemath.V3(0, p.cfg.VerticalOffset, 0))

	for i := range b.Particles {
		if i >= count {
			b.Particles[i] = Particle{}
			continue
		}
		b.Particles[i] = Particle{
			LocalPosition: origin,
			Velocity:      p.coneVelocity(spread, minSpeed, maxSpeed),
			SpawnTime:     now,
			Enabled:       true,
		}
	}
	b.StartTime = now
	b.Lifetime = lifetime
	b.activeCount = count
	b.active = true

	p.active = append(p.active, idx)
	p.spawned++
	return b
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// coneVelocity picks a direction within spread radians of straight up.
func (p *Pool) coneVelocity(spread, minSpeed, maxSpeed float64) gamemath.Vec3 {
	theta := p.rng.Float64() * spread
	phi := p.rng.Float64() * 2 * math.Pi
	speed := minSpeed + p.rng.Float64()*(maxSpeed-minSpeed)
	return gamemath.V3(
		math.Sin(theta)*math.Cos(phi),
		math.Cos(theta),
		math.Sin(theta)*math.Sin(phi),
	).Scale(speed)
}

// Update recycles every batch whose lifetime has elapsed.
func (p *Pool) Update(delta float64) {
	now := p.clock()
	kept := p.active[:0]
	for _, idx := range p.active {
		b := p.batches[idx]
		if now-b.StartTime >= b.Lifetime {
			b.disableAll()
			p.free = append(p.free, idx)
			p.recycled++
			continue
		}
		kept = append(kept, idx)
	}
	p.active = kept
}

// Reset recycles every batch immediately.
func (p *Pool) Reset() {
	for _, idx := range p.active {
		p.batches[idx].disableAll()
		p.free = append(p.free, idx)
	}
	p.active = p.active[:0]
}

// Each calls fn for every active batch.
func (p *Pool) Each(fn func(b *Batch)) {
	for _, idx := range p.active {
		fn(p.batches[idx])
	}
}

func (p *Pool) Active() int {
	return len(p.active)
}

func (p *Pool) Size() int {
	return len(p.batches)
}

func (p *Pool) Free() int {
	return len(p.free)
}

// Spawned and Recycled are cumulative batch counts.
func (p *Pool) Spawned() int  { return p.spawned }
func (p *Pool) Recycled() int { return p.recycled }

// Sample returns the visual state of particle i at time now: outward motion
// that decelerates to rest and alpha fading linearly to zero. ok is false
// for disabled or fully aged particles.
func (b *Batch) Sample(i int, now float64) (pos gamemath.Vec3, alpha float64, ok bool) {
	if i < 0 || i >= len(b.Particles) {
		return gamemath.Vec3{}, 0, false
	}
	pt := &b.Particles[i]
	age := now - pt.SpawnTime
	if !pt.Enabled || age < 0 || age >= b.Lifetime {
		return gamemath.Vec3{}, 0, false
	}

	life := float32(b.Lifetime)
	// Travel is the integral of a velocity easing out to zero, so the
	// particle covers velocity*lifetime/2 at most.
	travel := float64(ease.OutQuad(float32(age), 0, life/2, life))
	pos = pt.LocalPosition.Add(pt.Velocity.Scale(travel))
	alpha = float64(ease.Linear(float32(age), 1, -1, life))
	return pos, alpha, true
}
