package systems

import (
	"github.com/automoto/doomerang-crypt/components"
	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
)

// snapToGround eases the agent's height toward the ground below it plus
// the profile offset. Without a hit the last known surface is used.
func snapToGround(agent *components.AgentData, transform *components.TransformData, env *components.EnvData) {
	pos := transform.Position

	if env.Ground != nil {
		origin := pos.Add(gamemath.V3(0, cfg.Agent.GroundCastHeight, 0))
		if hit, ok := env.Ground.CastDown(origin, cfg.Agent.GroundCastHeight+cfg.Agent.GroundCastDepth); ok {
			agent.GroundY = hit.Point.Y
			agent.HasGround = true
		}
	}
	if !agent.HasGround {
		agent.GroundY = pos.Y - agent.Profile.GroundOffset
		agent.HasGround = true
	}

	target := agent.GroundY + agent.Profile.GroundOffset
	transform.Position.Y = gamemath.SmoothToward(pos.Y, target, cfg.Agent.GroundSmoothingRate, env.Delta)
}
