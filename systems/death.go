package systems

import (
	"github.com/automoto/doomerang-crypt/components"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/automoto/doomerang-crypt/vfx"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDeaths removes agents whose health reached zero and spawns their
// death burst.
func UpdateDeaths(e *ecs.ECS) {
	env := GetEnv(e.World)
	if env == nil {
		return
	}

	var dead []*donburi.Entry
	tags.Enemy.Each(e.World, func(entry *donburi.Entry) {
		if components.Health.Get(entry).Dead() {
			dead = append(dead, entry)
		}
	})

	for _, entry := range dead {
		agent := components.Agent.Get(entry)
		pos := components.Transform.Get(entry).Position
		if env.Effects != nil {
			env.Effects.Spawn(pos, vfx.Options{Count: agent.Profile.DeathBurst})
		}
		env.Deaths = append(env.Deaths, components.Death{Agent: entry.Entity(), Archetype: agent.Archetype, Position: pos})
		RemoveEnemy(e.World, env, entry)
		env.Counters.AgentKills++
	}
}

// UpdateParticles recycles bursts whose lifetime has elapsed.
func UpdateParticles(e *ecs.ECS) {
	if env := GetEnv(e.World); env != nil && env.Effects != nil {
		env.Effects.Update(env.Delta)
	}
}

// RemoveEnemy releases everything the agent owns and drops the entity.
func RemoveEnemy(w donburi.World, env *components.EnvData, e *donburi.Entry) {
	if !e.Valid() {
		return
	}
	components.Collaborators.Get(e).Release()
	if env != nil && env.Attacks != nil {
		env.Attacks.CancelBy(e.Entity())
	}
	w.Remove(e.Entity())
}

// RemoveAllEnemies clears a level's agents without death effects.
func RemoveAllEnemies(w donburi.World, env *components.EnvData) int {
	var toRemove []*donburi.Entry
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		toRemove = append(toRemove, e)
	})
	for _, e := range toRemove {
		RemoveEnemy(w, env, e)
	}
	return len(toRemove)
}
