package systems

import (
	"math"

	"github.com/automoto/doomerang-crypt/components"
	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func UpdateEnemies(ecs *ecs.ECS) {
	env := GetEnv(ecs.World)
	if env == nil {
		return
	}
	w := ecs.World
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		agent := components.Agent.Get(e)
		if !agent.Ready {
			return
		}
		transform := components.Transform.Get(e)
		anim := components.Animation.Get(e)

		if targetPos, ok := resolveTarget(w, env, agent, transform.Position); ok {
			updateEnemyAI(e, env, agent, transform, anim, targetPos)
		} else {
			// No target: stay put until one shows up.
			agent.State = cfg.Idle
		}

		snapToGround(agent, transform, env)

		if collab := components.Collaborators.Get(e); collab.Light != nil {
			collab.Light.SetPosition(transform.Position)
		}

		anim.SetAnimation(agent.State)
		if anim.Mixer != nil {
			anim.Mixer.Update(env.Delta)
		}
	})
}

// resolveTarget looks the target handle up in the world, re-acquiring the
// nearest visible player when the handle is empty or stale.
func resolveTarget(w donburi.World, env *components.EnvData, agent *components.AgentData, pos gamemath.Vec3) (gamemath.Vec3, bool) {
	if p, ok := playerPosition(w, agent.Target); ok {
		return p, true
	}
	agent.Target = donburi.Null

	if env.Sight == nil {
		return gamemath.Vec3{}, false
	}
	id, ok := env.Sight.Nearest(pos, cfg.Agent.AcquireRange)
	if !ok {
		return gamemath.Vec3{}, false
	}
	p, ok := playerPosition(w, id)
	if !ok {
		return gamemath.Vec3{}, false
	}
	agent.Target = id
	return p, true
}

func playerPosition(w donburi.World, id donburi.Entity) (gamemath.Vec3, bool) {
	if id == donburi.Null || !w.Valid(id) {
		return gamemath.Vec3{}, false
	}
	e := w.Entry(id)
	if !e.HasComponent(tags.Player) {
		return gamemath.Vec3{}, false
	}
	return components.Transform.Get(e).Position, true
}

func updateEnemyAI(e *donburi.Entry, env *components.EnvData, agent *components.AgentData, transform *components.TransformData, anim *components.AnimationData, targetPos gamemath.Vec3) {
	profile := &agent.Profile
	dist := gamemath.Distance(transform.Position, targetPos)

	switch {
	case dist < profile.AttackRange:
		agent.State = cfg.Attacking
		tryAttack(e, env, agent, anim)

	case dist < profile.DetectionRange:
		agent.State = cfg.Chasing
		step := profile.Speed
		if cfg.Sim.Movement == cfg.MovePerSecond {
			step *= env.Delta
		}
		// Height belongs to ground snapping; chase on the ground plane.
		flat := gamemath.V3(targetPos.X, transform.Position.Y, targetPos.Z)
		transform.Position = gamemath.MoveToward(transform.Position, flat, step)
		transform.Yaw = gamemath.YawToward(transform.Position, targetPos)

	default:
		agent.State = cfg.Idle
	}
}

// tryAttack starts a swing if the cooldown has elapsed and schedules its
// damage to land partway through the attack clip.
func tryAttack(e *donburi.Entry, env *components.EnvData, agent *components.AgentData, anim *components.AnimationData) bool {
	if env.Now-agent.LastAttack < agent.Profile.AttackCooldownSeconds {
		return false
	}
	agent.LastAttack = env.Now

	clip := anim.PlayAttack()
	delay := math.Max(clip*cfg.Agent.AttackHitFraction, cfg.Agent.MinAttackDelay)
	if env.Attacks != nil {
		env.Attacks.Schedule(env.Now+delay, e.Entity(), agent.Target, agent.Profile.AttackDamage)
	}
	env.Counters.Attacks++
	return true
}
