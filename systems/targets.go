package systems

import (
	"github.com/automoto/doomerang-crypt/components"
	"github.com/automoto/doomerang-crypt/projectile"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SyncSight mirrors player positions into the sight index and drops
// players that left the world.
func SyncSight(e *ecs.ECS) {
	env := GetEnv(e.World)
	if env == nil || env.Sight == nil {
		return
	}
	sight := env.Sight
	tags.Player.Each(e.World, func(entry *donburi.Entry) {
		player := components.Player.Get(entry)
		sight.SetTarget(entry.Entity(), components.Transform.Get(entry).Position, player.HitRadius)
	})
	for _, id := range sight.Targets() {
		if !e.World.Valid(id) {
			sight.RemoveTarget(id)
		}
	}
}

// NewUpdateProjectiles returns the system that flies projectiles against
// the live agents. The target buffer is reused across ticks.
func NewUpdateProjectiles() ecs.System {
	targets := &AgentTargets{}
	return func(e *ecs.ECS) {
		env := GetEnv(e.World)
		if env == nil || env.Projectiles == nil {
			return
		}
		targets.World = e.World
		targets.Env = env
		env.Projectiles.Advance(env.Delta, targets)
	}
}

// AgentTargets exposes live, loaded agents to the projectile pass.
type AgentTargets struct {
	World donburi.World
	Env   *components.EnvData

	buf []projectile.Target
}

func (a *AgentTargets) Targets() []projectile.Target {
	a.buf = a.buf[:0]
	tags.Enemy.Each(a.World, func(e *donburi.Entry) {
		agent := components.Agent.Get(e)
		if !agent.Ready || components.Health.Get(e).Dead() {
			return
		}
		a.buf = append(a.buf, projectile.Target{
			ID:        e.Entity(),
			Position:  components.Transform.Get(e).Position,
			HitRadius: agent.HitRadius,
		})
	})
	return a.buf
}

// ApplyDamage reports false for an agent that died earlier in the pass.
func (a *AgentTargets) ApplyDamage(id donburi.Entity, amount float64) bool {
	return DamageAgent(a.World, a.Env, id, amount)
}
