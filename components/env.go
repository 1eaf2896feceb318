package components

import (
	"github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/projectile"
	"github.com/automoto/doomerang-crypt/schedule"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/spatial"
	"github.com/automoto/doomerang-crypt/vfx"
	"github.com/yohamta/donburi"
)

// EnvData is the simulation singleton: the tick clock plus the indexes
// and pools the systems share.
type EnvData struct {
	Now   float64
	Delta float64

	Ground      spatial.GroundQuery
	Sight       *spatial.Sight
	Attacks     *schedule.Queue
	Projectiles *projectile.System
	Effects     *vfx.Pool

	Counters Counters

	// Deaths collects the agents removed this tick. The owner resets it
	// before each update.
	Deaths []Death
}

// Death records one agent killed this tick.
type Death struct {
	Agent     donburi.Entity
	Archetype config.Archetype
	Position  gamemath.Vec3
}

// Counters are cumulative combat totals.
type Counters struct {
	Attacks      int     // swings started
	DroppedHits  int     // deferred hits whose target was gone
	PlayerDamage float64 // health removed from players
	AgentDamage  float64 // health removed from agents
	AgentKills   int
}

var Env = donburi.NewComponentType[EnvData]()
