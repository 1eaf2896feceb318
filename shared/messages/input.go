package messages

import "github.com/automoto/doomerang-crypt/shared/netconfig"

// PlayerInput is sent from client to server each frame with the player's input state.
type PlayerInput struct {
	Sequence  uint32                      // Incrementing ID, echoed back in NetPlayerState
	Actions   map[netconfig.ActionID]bool // Which actions are currently pressed
	AimX      float64                     // Ground-plane aim direction, used when ActionFire is set
	AimZ      float64
	Timestamp int64 // Client timestamp (Unix ms)
}

// NewPlayerInput creates a PlayerInput with initialized map
func NewPlayerInput(seq uint32) PlayerInput {
	return PlayerInput{
		Sequence: seq,
		Actions:  make(map[netconfig.ActionID]bool),
	}
}
