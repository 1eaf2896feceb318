package components

import (
	"github.com/automoto/doomerang-crypt/assets/animations"
	"github.com/automoto/doomerang-crypt/config"
	"github.com/yohamta/donburi"
)

type AnimationData struct {
	Mixer *animations.Mixer
}

// SetAnimation crossfades to the looping clip for state. A swing that is
// still playing is left to finish while attacking.
func (a *AnimationData) SetAnimation(state config.StateID) {
	if a.Mixer == nil {
		return
	}
	if state == config.Attacking && a.Mixer.Current() == config.ClipAttack && !a.Mixer.Finished() {
		return
	}
	a.Mixer.Play(config.StateToClip[state])
}

// PlayAttack restarts the swing clip and returns its duration.
func (a *AnimationData) PlayAttack() float64 {
	if a.Mixer == nil {
		return config.DefaultClips[config.ClipAttack].Duration
	}
	if !a.Mixer.Play(config.ClipAttack) {
		a.Mixer.Restart()
	}
	d, ok := a.Mixer.Duration(config.ClipAttack)
	if !ok {
		return config.DefaultClips[config.ClipAttack].Duration
	}
	return d
}

var Animation = donburi.NewComponentType[AnimationData]()
