package config

// AgentBehaviorProfile contains the per-archetype tunables. Agents copy the
// profile once at creation; it is never mutated afterwards.
type AgentBehaviorProfile struct {
	Name                  string
	Speed                 float64 // units per second (or per tick, see SimConfig.Movement)
	DetectionRange        float64
	AttackRange           float64
	AttackCooldownSeconds float64
	ScaleFactor           float64
	GroundOffset          float64
	MaxHealth             float64
	AttackDamage          float64

	// Model is the asset path handed to the model loader.
	Model string
	// DeathBurst is the particle count spawned when the agent dies.
	DeathBurst int
}

// AgentConfig contains settings shared by every enemy agent
type AgentConfig struct {
	CrossfadeSeconds    float64 // animation fade-out/fade-in duration
	GroundSmoothingRate float64 // exponential smoothing rate toward the ground, 1/s
	GroundCastHeight    float64 // cast origin above the agent
	GroundCastDepth     float64 // max distance below the cast origin
	AttackHitFraction   float64 // damage lands this far through the attack clip
	MinAttackDelay      float64 // seconds
	DefaultHitRadius    float64 // used until the model bounds are known
	AcquireRange        float64 // max distance for target acquisition
}

// PlayerConfig contains settings for player targets
type PlayerConfig struct {
	MaxHealth float64
	HitRadius float64
}

// ProjectileConfig contains projectile pool configuration
type ProjectileConfig struct {
	Speed           float64
	LifetimeSeconds float64
	Radius          float64
	Damage          float64
	InitialPool     int
}

// ParticleConfig contains particle pool configuration
type ParticleConfig struct {
	Capacity        int     // particles per batch
	LifetimeSeconds float64 // uniform per spawn call
	VerticalOffset  float64
	SpreadRadians   float64 // half-angle of the upward cone
	MinSpeed        float64
	MaxSpeed        float64
	InitialBatches  int
}

// MovementMode selects how Speed is applied while chasing.
type MovementMode int

const (
	// MovePerSecond scales the step by the tick delta.
	MovePerSecond MovementMode = iota
	// MovePerTick applies Speed as a flat per-tick step.
	MovePerTick
)

func (m MovementMode) String() string {
	switch m {
	case MovePerTick:
		return "per_tick"
	default:
		return "per_second"
	}
}

// SimConfig contains top-level simulation settings
type SimConfig struct {
	TickRate int
	Movement MovementMode
	Seed     uint64
}

// SpatialConfig sizes the broadphase of the ground index
type SpatialConfig struct {
	CellSize  int
	SightSlop float64 // radius of the sight-line segment query
}

// Global configuration instances
var Agent AgentConfig
var Player PlayerConfig
var Projectile ProjectileConfig
var Particles ParticleConfig
var Sim SimConfig
var Spatial SpatialConfig
var Archetypes map[Archetype]AgentBehaviorProfile

func init() {
	Reset()
}

// Reset restores every global to its built-in default.
func Reset() {
	Agent = AgentConfig{
		CrossfadeSeconds:    0.2,
		GroundSmoothingRate: 10.0,
		GroundCastHeight:    5.0,
		GroundCastDepth:     50.0,
		AttackHitFraction:   0.6,
		MinAttackDelay:      0.08,
		DefaultHitRadius:    0.5,
		AcquireRange:        200.0,
	}

	Player = PlayerConfig{
		MaxHealth: 100,
		HitRadius: 0.4,
	}

	Projectile = ProjectileConfig{
		Speed:           8.0,
		LifetimeSeconds: 2.0,
		Radius:          0.25,
		Damage:          25,
		InitialPool:     32,
	}

	Particles = ParticleConfig{
		Capacity:        64,
		LifetimeSeconds: 1.2,
		VerticalOffset:  0.5,
		SpreadRadians:   0.6,
		MinSpeed:        1.5,
		MaxSpeed:        4.0,
		InitialBatches:  4,
	}

	Sim = SimConfig{
		TickRate: 60,
		Movement: MovePerSecond,
		Seed:     1,
	}

	Spatial = SpatialConfig{
		CellSize:  4,
		SightSlop: 0.05,
	}

	Archetypes = map[Archetype]AgentBehaviorProfile{
		Default: {
			Name:                  "default",
			Speed:                 2.0,
			DetectionRange:        12.0,
			AttackRange:           1.5,
			AttackCooldownSeconds: 1.5,
			ScaleFactor:           1.0,
			GroundOffset:          0.0,
			MaxHealth:             100,
			AttackDamage:          10,
			Model:                 "models/skeleton.yaml",
			DeathBurst:            32,
		},
		Goblin: {
			Name:                  "goblin",
			Speed:                 3.5,
			DetectionRange:        14.0,
			AttackRange:           1.2,
			AttackCooldownSeconds: 1.0,
			ScaleFactor:           0.8,
			GroundOffset:          0.0,
			MaxHealth:             60,
			AttackDamage:          6,
			Model:                 "models/goblin.yaml",
			DeathBurst:            24,
		},
		Vampire: {
			Name:                  "vampire",
			Speed:                 3.0,
			DetectionRange:        16.0,
			AttackRange:           1.8,
			AttackCooldownSeconds: 1.2,
			ScaleFactor:           1.1,
			GroundOffset:          0.1, // hovers
			MaxHealth:             120,
			AttackDamage:          14,
			Model:                 "models/vampire.yaml",
			DeathBurst:            40,
		},
		Boss: {
			Name:                  "boss",
			Speed:                 1.5,
			DetectionRange:        20.0,
			AttackRange:           3.0,
			AttackCooldownSeconds: 2.5,
			ScaleFactor:           2.0,
			GroundOffset:          0.0,
			MaxHealth:             500,
			AttackDamage:          35,
			Model:                 "models/boss.yaml",
			DeathBurst:            64,
		},
	}
}
