package netcomponents

import (
	"math"

	"github.com/yohamta/donburi"
)

type NetAgentData struct {
	Yaw       float64
	Archetype string // "default", "goblin", ...
	State     int
	Clip      string
	Health    float64
	MaxHealth float64
	HitRadius float64
	Inert     bool
}

var NetAgent = donburi.NewComponentType[NetAgentData]()

// LerpNetAgent interpolates yaw along the short arc. Discrete fields come
// from the newer state.
func LerpNetAgent(from, to NetAgentData, t float64) *NetAgentData {
	d := math.Remainder(to.Yaw-from.Yaw, 2*math.Pi)
	out := to
	out.Yaw = from.Yaw + d*t
	out.Health = from.Health + (to.Health-from.Health)*t
	return &out
}
