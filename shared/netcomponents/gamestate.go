package netcomponents

import "github.com/yohamta/donburi"

type NetGameStateData struct {
	Level   string
	Tick    uint64
	Time    float64
	Agents  int
	Kills   int
	Players int
}

var NetGameState = donburi.NewComponentType[NetGameStateData]()
