package network

import (
	"sort"

	"github.com/automoto/doomerang-crypt/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

type RemoteAgent struct {
	ID       esync.NetworkId
	Position netcomponents.NetPositionData
	Agent    netcomponents.NetAgentData
}

type RemotePlayer struct {
	ID       esync.NetworkId
	Position netcomponents.NetPositionData
	State    netcomponents.NetPlayerStateData
}

type RemoteProjectile struct {
	ID         esync.NetworkId
	Position   netcomponents.NetPositionData
	Velocity   netcomponents.NetVelocityData
	Projectile netcomponents.NetProjectileData
}

// Frame is one decoded server snapshot, sorted by network id.
type Frame struct {
	Agents      []RemoteAgent
	Players     []RemotePlayer
	Projectiles []RemoteProjectile
	Game        netcomponents.NetGameStateData
	HasGame     bool
}

// DecodeSnapshot deserializes every entity of a snapshot. Components that
// fail to decode are skipped.
func DecodeSnapshot(snapshot esync.WorldSnapshot) Frame {
	var f Frame
	for _, ent := range snapshot {
		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}
		f.add(ent.Id, compData)
	}
	f.sort()
	return f
}

// add classifies one entity by the components it carries.
func (f *Frame) add(id esync.NetworkId, compData []any) {
	var (
		pos    netcomponents.NetPositionData
		vel    netcomponents.NetVelocityData
		agent  *netcomponents.NetAgentData
		player *netcomponents.NetPlayerStateData
		proj   *netcomponents.NetProjectileData
	)
	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetPositionData:
			pos = v
		case netcomponents.NetVelocityData:
			vel = v
		case netcomponents.NetAgentData:
			agent = &v
		case netcomponents.NetPlayerStateData:
			player = &v
		case netcomponents.NetProjectileData:
			proj = &v
		case netcomponents.NetGameStateData:
			f.Game = v
			f.HasGame = true
		}
	}

	switch {
	case agent != nil:
		f.Agents = append(f.Agents, RemoteAgent{ID: id, Position: pos, Agent: *agent})
	case player != nil:
		f.Players = append(f.Players, RemotePlayer{ID: id, Position: pos, State: *player})
	case proj != nil:
		f.Projectiles = append(f.Projectiles, RemoteProjectile{ID: id, Position: pos, Velocity: vel, Projectile: *proj})
	}
}

func (f *Frame) sort() {
	sort.Slice(f.Agents, func(i, j int) bool { return f.Agents[i].ID < f.Agents[j].ID })
	sort.Slice(f.Players, func(i, j int) bool { return f.Players[i].ID < f.Players[j].ID })
	sort.Slice(f.Projectiles, func(i, j int) bool { return f.Projectiles[i].ID < f.Projectiles[j].ID })
}

// Interpolator renders between the two latest frames. Agents and players
// are lerped from the previous frame; projectiles are extrapolated from
// their velocity.
type Interpolator struct {
	prev, next Frame
	tickRate   float64
	t          float64 // 0..1 between prev and next
	elapsed    float64 // seconds since next arrived
	has        bool
}

func NewInterpolator(tickRate int) *Interpolator {
	if tickRate <= 0 {
		tickRate = 20
	}
	return &Interpolator{tickRate: float64(tickRate)}
}

// Push adds a new snapshot. The first one is shown as is.
func (in *Interpolator) Push(f Frame) {
	if !in.has {
		in.prev = f
		in.has = true
	} else {
		in.prev = in.Frame()
	}
	in.next = f
	in.t = 0
	in.elapsed = 0
}

// Advance moves the render time forward by dt seconds.
func (in *Interpolator) Advance(dt float64) {
	in.elapsed += dt
	in.t = in.elapsed * in.tickRate
	if in.t > 1 {
		in.t = 1
	}
}

// Frame returns the interpolated view.
func (in *Interpolator) Frame() Frame {
	out := Frame{
		Game:    in.next.Game,
		HasGame: in.next.HasGame,
	}

	prevAgents := make(map[esync.NetworkId]RemoteAgent, len(in.prev.Agents))
	for _, a := range in.prev.Agents {
		prevAgents[a.ID] = a
	}
	for _, a := range in.next.Agents {
		if p, ok := prevAgents[a.ID]; ok {
			a.Position = *netcomponents.LerpNetPosition(p.Position, a.Position, in.t)
			a.Agent = *netcomponents.LerpNetAgent(p.Agent, a.Agent, in.t)
		}
		out.Agents = append(out.Agents, a)
	}

	prevPlayers := make(map[esync.NetworkId]RemotePlayer, len(in.prev.Players))
	for _, p := range in.prev.Players {
		prevPlayers[p.ID] = p
	}
	for _, p := range in.next.Players {
		if old, ok := prevPlayers[p.ID]; ok {
			p.Position = *netcomponents.LerpNetPosition(old.Position, p.Position, in.t)
		}
		out.Players = append(out.Players, p)
	}

	for _, p := range in.next.Projectiles {
		p.Position.X += p.Velocity.X * in.elapsed
		p.Position.Y += p.Velocity.Y * in.elapsed
		p.Position.Z += p.Velocity.Z * in.elapsed
		out.Projectiles = append(out.Projectiles, p)
	}
	return out
}
