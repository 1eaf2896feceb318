package components

import "github.com/yohamta/donburi"

type PlayerData struct {
	Name      string
	Index     int
	HitRadius float64
}

var Player = donburi.NewComponentType[PlayerData]()
