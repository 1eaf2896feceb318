package core

import (
	"log"

	"github.com/automoto/doomerang-crypt/projectile"
	"github.com/automoto/doomerang-crypt/shared/messages"
	"github.com/automoto/doomerang-crypt/shared/netcomponents"
	"github.com/automoto/doomerang-crypt/sim"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
)

type mirrorKind int

const (
	kindAgent mirrorKind = iota
	kindPlayer
	kindProjectile
	kindGame
)

// mirror keeps one esync entity per agent, player and live projectile
// slot, plus a single game state entity.
type mirror struct {
	world donburi.World
	track func(w donburi.World, e *donburi.Entity, kind mirrorKind) error

	agents      map[donburi.Entity]donburi.Entity
	players     map[donburi.Entity]donburi.Entity
	projectiles map[int]donburi.Entity
	game        donburi.Entity
}

func newMirror(world donburi.World) *mirror {
	return &mirror{
		world:       world,
		track:       networkSync,
		agents:      make(map[donburi.Entity]donburi.Entity),
		players:     make(map[donburi.Entity]donburi.Entity),
		projectiles: make(map[int]donburi.Entity),
		game:        donburi.Null,
	}
}

func networkSync(w donburi.World, e *donburi.Entity, kind mirrorKind) error {
	switch kind {
	case kindAgent:
		return srvsync.NetworkSync(w, e,
			srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetAgent),
		)
	case kindPlayer:
		return srvsync.NetworkSync(w, e,
			srvsync.WithInterp(netcomponents.NetPosition),
			netcomponents.NetPlayerState,
		)
	case kindProjectile:
		return srvsync.NetworkSync(w, e,
			netcomponents.NetPosition,
			netcomponents.NetVelocity,
			netcomponents.NetProjectile,
		)
	default:
		return srvsync.NetworkSync(w, e, netcomponents.NetGameState)
	}
}

func (m *mirror) create(kind mirrorKind, comps ...donburi.IComponentType) donburi.Entity {
	e := m.world.Create(comps...)
	if err := m.track(m.world, &e, kind); err != nil {
		log.Printf("[server] failed to set up network sync: %v", err)
	}
	return e
}

func (m *mirror) remove(e donburi.Entity) {
	if m.world.Valid(e) {
		m.world.Remove(e)
	}
}

func (m *mirror) netID(e donburi.Entity) esync.NetworkId {
	if !m.world.Valid(e) {
		return 0
	}
	if id := esync.GetNetworkId(m.world.Entry(e)); id != nil {
		return *id
	}
	return 0
}

// trackPlayer creates the player's mirror right away so the join reply
// can carry its network id.
func (m *mirror) trackPlayer(player donburi.Entity) esync.NetworkId {
	e, ok := m.players[player]
	if !ok {
		e = m.create(kindPlayer, netcomponents.NetPosition, netcomponents.NetPlayerState)
		m.players[player] = e
	}
	return m.netID(e)
}

// sync copies the simulation into the mirror world and returns the death
// events for agents killed during the last tick.
func (m *mirror) sync(s *sim.Simulation, level string) []messages.DeathEvent {
	var deaths []messages.DeathEvent
	for _, d := range s.Deaths() {
		deaths = append(deaths, messages.DeathEvent{
			VictimID:  uint(m.netID(m.agents[d.Agent])),
			Archetype: d.Archetype.String(),
			X:         d.Position.X,
			Y:         d.Position.Y,
			Z:         d.Position.Z,
		})
	}

	m.syncAgents(s)
	m.syncPlayers(s)
	m.syncProjectiles(s.Projectiles(), s.Now())
	m.syncGame(s, level)
	return deaths
}

func (m *mirror) syncAgents(s *sim.Simulation) {
	seen := make(map[donburi.Entity]bool, len(m.agents))
	for _, v := range s.Agents() {
		seen[v.ID] = true
		e, ok := m.agents[v.ID]
		if !ok {
			e = m.create(kindAgent, netcomponents.NetPosition, netcomponents.NetAgent)
			m.agents[v.ID] = e
		}
		entry := m.world.Entry(e)
		netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{
			X: v.Position.X, Y: v.Position.Y, Z: v.Position.Z,
		})
		netcomponents.NetAgent.SetValue(entry, netcomponents.NetAgentData{
			Yaw:       v.Yaw,
			Archetype: v.Archetype.String(),
			State:     int(v.State),
			Clip:      v.Clip,
			Health:    v.Health,
			MaxHealth: v.MaxHealth,
			HitRadius: v.HitRadius,
			Inert:     v.Inert,
		})
	}
	for id, e := range m.agents {
		if !seen[id] {
			m.remove(e)
			delete(m.agents, id)
		}
	}
}

func (m *mirror) syncPlayers(s *sim.Simulation) {
	seen := make(map[donburi.Entity]bool, len(m.players))
	for _, p := range s.Players() {
		seen[p.ID] = true
		m.trackPlayer(p.ID)
		entry := m.world.Entry(m.players[p.ID])
		netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{
			X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z,
		})
		state := netcomponents.NetPlayerState.Get(entry)
		state.Name = p.Name
		state.Health = p.Health
		state.MaxHealth = p.MaxHealth
	}
	for id, e := range m.players {
		if !seen[id] {
			m.remove(e)
			delete(m.players, id)
		}
	}
}

func (m *mirror) syncProjectiles(pool *projectile.System, now float64) {
	seen := make(map[int]bool, len(m.projectiles))
	pool.Each(func(slot int, p *projectile.Projectile) {
		seen[slot] = true
		e, ok := m.projectiles[slot]
		if !ok {
			e = m.create(kindProjectile, netcomponents.NetPosition, netcomponents.NetVelocity, netcomponents.NetProjectile)
			m.projectiles[slot] = e
		}
		entry := m.world.Entry(e)
		vel := p.Direction.Scale(p.Speed)
		netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{
			X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z,
		})
		netcomponents.NetVelocity.SetValue(entry, netcomponents.NetVelocityData{X: vel.X, Y: vel.Y, Z: vel.Z})
		netcomponents.NetProjectile.SetValue(entry, netcomponents.NetProjectileData{
			Slot:      slot,
			CreatedAt: p.CreatedAt,
			Radius:    pool.Radius(),
		})
	})
	for slot, e := range m.projectiles {
		if !seen[slot] {
			m.remove(e)
			delete(m.projectiles, slot)
		}
	}
}

func (m *mirror) syncGame(s *sim.Simulation, level string) {
	if !m.world.Valid(m.game) {
		m.game = m.create(kindGame, netcomponents.NetGameState)
	}
	st := s.Stats()
	netcomponents.NetGameState.SetValue(m.world.Entry(m.game), netcomponents.NetGameStateData{
		Level:   level,
		Tick:    st.Tick,
		Time:    st.Now,
		Agents:  st.Agents,
		Kills:   st.Kills,
		Players: len(m.players),
	})
}

// reset drops every mirror entity except players, after a level change.
func (m *mirror) reset() {
	for id, e := range m.agents {
		m.remove(e)
		delete(m.agents, id)
	}
	for slot, e := range m.projectiles {
		m.remove(e)
		delete(m.projectiles, slot)
	}
}
