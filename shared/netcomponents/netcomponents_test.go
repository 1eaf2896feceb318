package netcomponents

import (
	"math"
	"testing"
)

func TestLerpNetPosition(t *testing.T) {
	got := LerpNetPosition(NetPositionData{X: 0, Y: 1, Z: -2}, NetPositionData{X: 4, Y: 3, Z: 2}, 0.25)
	want := NetPositionData{X: 1, Y: 1.5, Z: -1}
	if *got != want {
		t.Errorf("LerpNetPosition = %+v, want %+v", *got, want)
	}
}

func TestLerpNetAgentTakesShortArc(t *testing.T) {
	from := NetAgentData{Yaw: math.Pi - 0.1, Health: 100, State: 0}
	to := NetAgentData{Yaw: -math.Pi + 0.1, Health: 50, State: 2, Archetype: "goblin"}

	got := LerpNetAgent(from, to, 0.5)
	if d := math.Abs(math.Remainder(got.Yaw-math.Pi, 2*math.Pi)); d > 1e-9 {
		t.Errorf("yaw = %v, want ~pi", got.Yaw)
	}
	if got.Health != 75 {
		t.Errorf("health = %v, want 75", got.Health)
	}
	if got.State != 2 || got.Archetype != "goblin" {
		t.Errorf("discrete fields not taken from newer state: %+v", *got)
	}
}
