package netcomponents

import "github.com/yohamta/donburi"

type NetProjectileData struct {
	Slot      int
	CreatedAt float64
	Radius    float64
}

var NetProjectile = donburi.NewComponentType[NetProjectileData]()
