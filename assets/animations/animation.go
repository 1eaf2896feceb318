package animations

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Clip is a named animation of fixed length.
type Clip struct {
	Name     string
	Duration float64 // seconds
	Loop     bool
}

// Mixer plays one clip at a time and crossfades between clips: the
// outgoing clip fades out while the incoming one restarts and fades in.
type Mixer struct {
	clips map[string]Clip
	fade  float32

	current  string
	playhead float64
	weight   float32
	fadeIn   *gween.Tween

	previous   string
	prevWeight float32
	fadeOut    *gween.Tween
}

func NewMixer(clips []Clip, fadeSeconds float64) *Mixer {
	m := &Mixer{
		clips: make(map[string]Clip, len(clips)),
		fade:  float32(fadeSeconds),
	}
	for _, c := range clips {
		m.clips[c.Name] = c
	}
	return m
}

// Play crossfades to name. Playing the current clip again, or a clip the
// model does not have, does nothing and returns false.
func (m *Mixer) Play(name string) bool {
	if name == m.current {
		return false
	}
	if _, ok := m.clips[name]; !ok {
		return false
	}

	if m.current != "" {
		m.previous = m.current
		m.prevWeight = m.weight
		m.fadeOut = gween.New(m.weight, 0, m.fade, ease.Linear)
	}

	m.current = name
	m.Restart()
	if m.fade <= 0 || m.previous == "" {
		m.weight = 1
		m.fadeIn = nil
	} else {
		m.weight = 0
		m.fadeIn = gween.New(0, 1, m.fade, ease.Linear)
	}
	return true
}

// Restart rewinds the current clip.
func (m *Mixer) Restart() {
	m.playhead = 0
}

func (m *Mixer) Update(dt float64) {
	if m.current == "" {
		return
	}
	step := float32(dt)

	if m.fadeIn != nil {
		w, done := m.fadeIn.Update(step)
		m.weight = w
		if done {
			m.weight = 1
			m.fadeIn = nil
		}
	}
	if m.fadeOut != nil {
		w, done := m.fadeOut.Update(step)
		m.prevWeight = w
		if done {
			m.previous = ""
			m.prevWeight = 0
			m.fadeOut = nil
		}
	}

	clip := m.clips[m.current]
	m.playhead += dt
	if clip.Duration <= 0 {
		return
	}
	if clip.Loop {
		for m.playhead >= clip.Duration {
			m.playhead -= clip.Duration
		}
	} else if m.playhead > clip.Duration {
		m.playhead = clip.Duration
	}
}

func (m *Mixer) Current() string {
	return m.current
}

// Finished reports whether a one-shot clip has reached its end.
func (m *Mixer) Finished() bool {
	clip, ok := m.clips[m.current]
	if !ok || clip.Loop {
		return false
	}
	return m.playhead >= clip.Duration
}

// Weight returns the blend weight of name, zero when it is not playing.
func (m *Mixer) Weight(name string) float64 {
	switch name {
	case "":
		return 0
	case m.current:
		return float64(m.weight)
	case m.previous:
		return float64(m.prevWeight)
	}
	return 0
}

func (m *Mixer) Duration(name string) (float64, bool) {
	c, ok := m.clips[name]
	return c.Duration, ok
}

func (m *Mixer) Playhead() float64 {
	return m.playhead
}
