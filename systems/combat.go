package systems

import (
	"github.com/automoto/doomerang-crypt/components"
	"github.com/automoto/doomerang-crypt/schedule"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ApplyDeferredDamage lands every swing whose hit time has come. A hit on
// a target that no longer exists is dropped.
func ApplyDeferredDamage(e *ecs.ECS) {
	env := GetEnv(e.World)
	if env == nil || env.Attacks == nil {
		return
	}
	w := e.World
	env.Attacks.Drain(env.Now, func(ev schedule.Event) {
		if !w.Valid(ev.Target) {
			env.Counters.DroppedHits++
			return
		}
		target := w.Entry(ev.Target)
		if !target.HasComponent(components.Health) {
			env.Counters.DroppedHits++
			return
		}
		dealt := components.Health.Get(target).Damage(ev.Amount)
		if target.HasComponent(tags.Player) {
			env.Counters.PlayerDamage += dealt
		}
	})
}

// DamageAgent applies damage to an agent and updates its health bar. It
// reports false when the agent is gone or already dead.
func DamageAgent(w donburi.World, env *components.EnvData, id donburi.Entity, amount float64) bool {
	if !w.Valid(id) {
		return false
	}
	e := w.Entry(id)
	if !e.HasComponent(tags.Enemy) {
		return false
	}
	health := components.Health.Get(e)
	if health.Dead() {
		return false
	}
	dealt := health.Damage(amount)
	if env != nil {
		env.Counters.AgentDamage += dealt
	}
	if collab := components.Collaborators.Get(e); collab.HealthBar != nil {
		collab.HealthBar.SetHealth(health.Current, health.Max)
	}
	return true
}
