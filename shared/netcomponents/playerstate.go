package netcomponents

import "github.com/yohamta/donburi"

type NetPlayerStateData struct {
	Name         string
	Health       float64
	MaxHealth    float64
	LastSequence uint32 // Last input sequence processed by the server
	IsLocal      bool   // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
