package config

// StateID is an agent's behaviour state.
type StateID int

const (
	Idle StateID = iota
	Chasing
	Attacking
)

func (s StateID) String() string {
	switch s {
	case Chasing:
		return "chasing"
	case Attacking:
		return "attacking"
	default:
		return "idle"
	}
}

// Clip names the animation selector plays for each state.
const (
	ClipIdle   = "Idle"
	ClipRun    = "Run"
	ClipAttack = "Attack"
	ClipDeath  = "Death"
)

// StateToClip maps a behaviour state to its looping clip. Attacking loops
// on the idle pose between swings; the swing itself plays ClipAttack.
var StateToClip = map[StateID]string{
	Idle:      ClipIdle,
	Chasing:   ClipRun,
	Attacking: ClipIdle,
}
