package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Enemy  = donburi.NewTag().SetName("Enemy")
	// Inert marks an agent whose model failed to load.
	Inert = donburi.NewTag().SetName("Inert")
)

// Resolv tags for the ground index
const (
	ResolvGround = "ground"
	ResolvRamp   = "ramp"
)
