package sim

import (
	"github.com/automoto/doomerang-crypt/components"
	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/yohamta/donburi"
)

// AgentView is a read-only copy of an agent for hosts.
type AgentView struct {
	ID        donburi.Entity
	Archetype cfg.Archetype
	State     cfg.StateID
	Position  gamemath.Vec3
	Yaw       float64
	Health    float64
	MaxHealth float64
	HitRadius float64
	Target    donburi.Entity
	Ready     bool
	Inert     bool
	Clip      string
}

// PlayerView is a read-only copy of a player for hosts.
type PlayerView struct {
	ID        donburi.Entity
	Name      string
	Position  gamemath.Vec3
	Health    float64
	MaxHealth float64
}

func agentView(e *donburi.Entry) AgentView {
	agent := components.Agent.Get(e)
	transform := components.Transform.Get(e)
	health := components.Health.Get(e)
	v := AgentView{
		ID:        e.Entity(),
		Archetype: agent.Archetype,
		State:     agent.State,
		Position:  transform.Position,
		Yaw:       transform.Yaw,
		Health:    health.Current,
		MaxHealth: health.Max,
		HitRadius: agent.HitRadius,
		Target:    agent.Target,
		Ready:     agent.Ready,
		Inert:     e.HasComponent(tags.Inert),
	}
	if mixer := components.Animation.Get(e).Mixer; mixer != nil {
		v.Clip = mixer.Current()
	}
	return v
}

func (s *Simulation) eachEnemy(fn func(AgentView)) {
	tags.Enemy.Each(s.World, func(e *donburi.Entry) {
		fn(agentView(e))
	})
}

// Agents returns a snapshot of every agent.
func (s *Simulation) Agents() []AgentView {
	var out []AgentView
	s.eachEnemy(func(v AgentView) { out = append(out, v) })
	return out
}

// Agent returns a snapshot of one agent.
func (s *Simulation) Agent(id donburi.Entity) (AgentView, bool) {
	if !s.World.Valid(id) {
		return AgentView{}, false
	}
	e := s.World.Entry(id)
	if !e.HasComponent(tags.Enemy) {
		return AgentView{}, false
	}
	return agentView(e), true
}

// Players returns a snapshot of every player.
func (s *Simulation) Players() []PlayerView {
	var out []PlayerView
	tags.Player.Each(s.World, func(e *donburi.Entry) {
		health := components.Health.Get(e)
		out = append(out, PlayerView{
			ID:        e.Entity(),
			Name:      components.Player.Get(e).Name,
			Position:  components.Transform.Get(e).Position,
			Health:    health.Current,
			MaxHealth: health.Max,
		})
	})
	return out
}
