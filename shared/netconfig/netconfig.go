// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

const (
	DefaultPort     uint = 7373
	DefaultTickRate      = 20

	// ProtocolVersion is checked on join. Empty accepts any client.
	ProtocolVersion = "crypt-1"
)

// ActionID represents a logical player action sent over the wire.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveForward
	ActionMoveBack
	ActionMoveLeft
	ActionMoveRight
	ActionFire
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionNone:        "none",
	ActionMoveForward: "forward",
	ActionMoveBack:    "back",
	ActionMoveLeft:    "left",
	ActionMoveRight:   "right",
	ActionFire:        "fire",
}

func (a ActionID) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// MoveAxes turns the pressed movement actions into a ground-plane direction.
// +z is forward, +x is right. The result is not normalized.
func MoveAxes(actions map[ActionID]bool) (x, z float64) {
	if actions[ActionMoveForward] {
		z++
	}
	if actions[ActionMoveBack] {
		z--
	}
	if actions[ActionMoveRight] {
		x++
	}
	if actions[ActionMoveLeft] {
		x--
	}
	return x, z
}
