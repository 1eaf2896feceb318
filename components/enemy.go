package components

import (
	"github.com/automoto/doomerang-crypt/config"
	"github.com/yohamta/donburi"
)

type AgentData struct {
	Archetype config.Archetype
	Profile   config.AgentBehaviorProfile // copied at creation, never mutated

	State      config.StateID
	LastAttack float64 // simulation seconds of the last swing

	// Target is a non-owning handle resolved through the world each tick.
	Target donburi.Entity

	GroundY   float64 // last known ground surface, without the offset
	HasGround bool

	HitRadius float64
	// Ready is set once the model has loaded; agents that are not ready do
	// not think, move or take projectile hits.
	Ready bool
}

var Agent = donburi.NewComponentType[AgentData]()
