package network

import (
	"math"
	"testing"

	"github.com/automoto/doomerang-crypt/shared/netcomponents"
)

func TestFrameClassifiesEntities(t *testing.T) {
	var f Frame
	f.add(7, []any{
		netcomponents.NetPositionData{X: 1, Z: 2},
		netcomponents.NetAgentData{Archetype: "boss", Health: 500},
	})
	f.add(3, []any{
		netcomponents.NetPositionData{X: 4},
		netcomponents.NetAgentData{Archetype: "goblin"},
	})
	f.add(5, []any{
		netcomponents.NetPositionData{X: 9},
		netcomponents.NetPlayerStateData{Name: "ann", Health: 80},
	})
	f.add(6, []any{
		netcomponents.NetPositionData{},
		netcomponents.NetVelocityData{X: 8},
		netcomponents.NetProjectileData{Slot: 2},
	})
	f.add(1, []any{netcomponents.NetGameStateData{Level: "crypt", Agents: 2}})
	f.sort()

	if len(f.Agents) != 2 || f.Agents[0].ID != 3 || f.Agents[1].Agent.Archetype != "boss" {
		t.Errorf("agents = %+v", f.Agents)
	}
	if len(f.Players) != 1 || f.Players[0].State.Name != "ann" || f.Players[0].Position.X != 9 {
		t.Errorf("players = %+v", f.Players)
	}
	if len(f.Projectiles) != 1 || f.Projectiles[0].Velocity.X != 8 {
		t.Errorf("projectiles = %+v", f.Projectiles)
	}
	if !f.HasGame || f.Game.Level != "crypt" {
		t.Errorf("game = %+v", f.Game)
	}
}

func TestInterpolatorBlendsFrames(t *testing.T) {
	in := NewInterpolator(10)

	first := Frame{
		Agents:      []RemoteAgent{{ID: 1, Position: netcomponents.NetPositionData{X: 0}}},
		Projectiles: []RemoteProjectile{{ID: 2, Velocity: netcomponents.NetVelocityData{Z: 8}}},
	}
	in.Push(first)
	if got := in.Frame().Agents[0].Position.X; got != 0 {
		t.Fatalf("first frame x = %v, want 0", got)
	}

	second := Frame{
		Agents: []RemoteAgent{
			{ID: 1, Position: netcomponents.NetPositionData{X: 2}},
			{ID: 4, Position: netcomponents.NetPositionData{X: 5}},
		},
		Projectiles: []RemoteProjectile{{ID: 2, Position: netcomponents.NetPositionData{Z: 0.8}, Velocity: netcomponents.NetVelocityData{Z: 8}}},
	}
	in.Push(second)
	in.Advance(0.05) // half a server tick

	got := in.Frame()
	if math.Abs(got.Agents[0].Position.X-1) > 1e-9 {
		t.Errorf("agent x = %v, want 1", got.Agents[0].Position.X)
	}
	if got.Agents[1].Position.X != 5 {
		t.Errorf("new agent x = %v, want 5", got.Agents[1].Position.X)
	}
	if math.Abs(got.Projectiles[0].Position.Z-1.2) > 1e-9 {
		t.Errorf("projectile z = %v, want 1.2", got.Projectiles[0].Position.Z)
	}

	in.Advance(1)
	if got := in.Frame().Agents[0].Position.X; got != 2 {
		t.Errorf("after full tick x = %v, want 2", got)
	}
}
