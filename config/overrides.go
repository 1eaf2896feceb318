package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a tuning file fails validation.
var ErrInvalid = errors.New("invalid tuning")

// Overrides is a partial tuning file. Nil fields keep the current value.
type Overrides struct {
	Sim struct {
		TickRate *int    `yaml:"tick_rate"`
		Movement *string `yaml:"movement"`
		Seed     *uint64 `yaml:"seed"`
	} `yaml:"sim"`

	Agent struct {
		CrossfadeSeconds    *float64 `yaml:"crossfade_seconds"`
		GroundSmoothingRate *float64 `yaml:"ground_smoothing_rate"`
		AttackHitFraction   *float64 `yaml:"attack_hit_fraction"`
		MinAttackDelay      *float64 `yaml:"min_attack_delay"`
		AcquireRange        *float64 `yaml:"acquire_range"`
	} `yaml:"agent"`

	Projectile struct {
		Speed           *float64 `yaml:"speed"`
		LifetimeSeconds *float64 `yaml:"lifetime_seconds"`
		Radius          *float64 `yaml:"radius"`
		Damage          *float64 `yaml:"damage"`
	} `yaml:"projectile"`

	Particles struct {
		Capacity        *int     `yaml:"capacity"`
		LifetimeSeconds *float64 `yaml:"lifetime_seconds"`
		SpreadRadians   *float64 `yaml:"spread_radians"`
	} `yaml:"particles"`

	Archetypes map[string]ProfileOverride `yaml:"archetypes"`
}

// ProfileOverride patches one archetype profile.
type ProfileOverride struct {
	Speed                 *float64 `yaml:"speed"`
	DetectionRange        *float64 `yaml:"detection_range"`
	AttackRange           *float64 `yaml:"attack_range"`
	AttackCooldownSeconds *float64 `yaml:"attack_cooldown_seconds"`
	ScaleFactor           *float64 `yaml:"scale_factor"`
	GroundOffset          *float64 `yaml:"ground_offset"`
	MaxHealth             *float64 `yaml:"max_health"`
	AttackDamage          *float64 `yaml:"attack_damage"`
	Model                 *string  `yaml:"model"`
}

// LoadOverrides reads and validates a tuning file without applying it.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning %s: %w", path, err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes and validates tuning YAML.
func ParseOverrides(data []byte) (*Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// ParseMovement maps "per_second" or "per_tick" to a MovementMode.
func ParseMovement(s string) (MovementMode, bool) {
	switch s {
	case "per_second", "":
		return MovePerSecond, true
	case "per_tick":
		return MovePerTick, true
	}
	return MovePerSecond, false
}

func positive(name string, v *float64) error {
	if v != nil && *v <= 0 {
		return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalid, name, *v)
	}
	return nil
}

func nonNegative(name string, v *float64) error {
	if v != nil && *v < 0 {
		return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalid, name, *v)
	}
	return nil
}

// Validate checks every set field against its allowed range.
func (o *Overrides) Validate() error {
	if o.Sim.TickRate != nil && *o.Sim.TickRate <= 0 {
		return fmt.Errorf("%w: sim.tick_rate must be > 0", ErrInvalid)
	}
	if o.Sim.Movement != nil {
		if _, ok := ParseMovement(*o.Sim.Movement); !ok {
			return fmt.Errorf("%w: unknown sim.movement %q", ErrInvalid, *o.Sim.Movement)
		}
	}
	if o.Agent.AttackHitFraction != nil {
		if f := *o.Agent.AttackHitFraction; f < 0 || f > 1 {
			return fmt.Errorf("%w: agent.attack_hit_fraction must be within [0,1]", ErrInvalid)
		}
	}
	if o.Particles.Capacity != nil && *o.Particles.Capacity <= 0 {
		return fmt.Errorf("%w: particles.capacity must be > 0", ErrInvalid)
	}

	checks := []error{
		nonNegative("agent.crossfade_seconds", o.Agent.CrossfadeSeconds),
		nonNegative("agent.ground_smoothing_rate", o.Agent.GroundSmoothingRate),
		nonNegative("agent.min_attack_delay", o.Agent.MinAttackDelay),
		nonNegative("agent.acquire_range", o.Agent.AcquireRange),
		positive("projectile.speed", o.Projectile.Speed),
		positive("projectile.lifetime_seconds", o.Projectile.LifetimeSeconds),
		nonNegative("projectile.radius", o.Projectile.Radius),
		nonNegative("projectile.damage", o.Projectile.Damage),
		positive("particles.lifetime_seconds", o.Particles.LifetimeSeconds),
		nonNegative("particles.spread_radians", o.Particles.SpreadRadians),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	for name, p := range o.Archetypes {
		if _, ok := ParseArchetype(name); !ok {
			return fmt.Errorf("%w: unknown archetype %q", ErrInvalid, name)
		}
		checks := []error{
			nonNegative(name+".speed", p.Speed),
			nonNegative(name+".detection_range", p.DetectionRange),
			nonNegative(name+".attack_range", p.AttackRange),
			nonNegative(name+".attack_cooldown_seconds", p.AttackCooldownSeconds),
			positive(name+".scale_factor", p.ScaleFactor),
			positive(name+".max_health", p.MaxHealth),
			nonNegative(name+".attack_damage", p.AttackDamage),
		}
		for _, err := range checks {
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Apply writes the overrides into the package globals. Profiles already
// copied into live agents are unaffected.
func (o *Overrides) Apply() {
	set(&Sim.TickRate, o.Sim.TickRate)
	set(&Sim.Seed, o.Sim.Seed)
	if o.Sim.Movement != nil {
		Sim.Movement, _ = ParseMovement(*o.Sim.Movement)
	}

	set(&Agent.CrossfadeSeconds, o.Agent.CrossfadeSeconds)
	set(&Agent.GroundSmoothingRate, o.Agent.GroundSmoothingRate)
	set(&Agent.AttackHitFraction, o.Agent.AttackHitFraction)
	set(&Agent.MinAttackDelay, o.Agent.MinAttackDelay)
	set(&Agent.AcquireRange, o.Agent.AcquireRange)

	set(&Projectile.Speed, o.Projectile.Speed)
	set(&Projectile.LifetimeSeconds, o.Projectile.LifetimeSeconds)
	set(&Projectile.Radius, o.Projectile.Radius)
	set(&Projectile.Damage, o.Projectile.Damage)

	set(&Particles.Capacity, o.Particles.Capacity)
	set(&Particles.LifetimeSeconds, o.Particles.LifetimeSeconds)
	set(&Particles.SpreadRadians, o.Particles.SpreadRadians)

	// Replace the map so readers holding the old one keep a stable view.
	next := make(map[Archetype]AgentBehaviorProfile, len(Archetypes))
	for a, p := range Archetypes {
		next[a] = p
	}
	for name, po := range o.Archetypes {
		a, _ := ParseArchetype(name)
		p := next[a]
		set(&p.Speed, po.Speed)
		set(&p.DetectionRange, po.DetectionRange)
		set(&p.AttackRange, po.AttackRange)
		set(&p.AttackCooldownSeconds, po.AttackCooldownSeconds)
		set(&p.ScaleFactor, po.ScaleFactor)
		set(&p.GroundOffset, po.GroundOffset)
		set(&p.MaxHealth, po.MaxHealth)
		set(&p.AttackDamage, po.AttackDamage)
		set(&p.Model, po.Model)
		next[a] = p
	}
	Archetypes = next
}
