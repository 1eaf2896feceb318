package messages

// ProjectileFiredEvent is broadcast when a player fires
type ProjectileFiredEvent struct {
	OwnerNetworkID uint
	X, Y, Z        float64
	DirX, DirZ     float64
}

// DeathEvent is broadcast when an agent dies
type DeathEvent struct {
	VictimID  uint // NetworkId of the agent mirror
	Archetype string
	X, Y, Z   float64 // burst origin
}

// LevelChangeEvent is broadcast after the server loads a level
type LevelChangeEvent struct {
	Level  string
	Agents int
}
