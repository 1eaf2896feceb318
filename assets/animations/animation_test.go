package animations

import (
	"math"
	"testing"
)

func testClips() []Clip {
	return []Clip{
		{Name: "Idle", Duration: 1, Loop: true},
		{Name: "Run", Duration: 0.5, Loop: true},
		{Name: "Attack", Duration: 0.8},
	}
}

func TestFirstPlayIsImmediate(t *testing.T) {
	m := NewMixer(testClips(), 0.2)
	if !m.Play("Idle") {
		t.Fatal("Play returned false")
	}
	if m.Weight("Idle") != 1 {
		t.Errorf("weight = %v, want 1", m.Weight("Idle"))
	}
}

func TestCrossfade(t *testing.T) {
	m := NewMixer(testClips(), 0.2)
	m.Play("Idle")
	m.Update(0.5)

	if !m.Play("Run") {
		t.Fatal("Play(Run) returned false")
	}
	if m.Playhead() != 0 {
		t.Error("incoming clip was not restarted")
	}
	m.Update(0.1)
	if w := m.Weight("Run"); math.Abs(w-0.5) > 1e-5 {
		t.Errorf("Run weight mid-fade = %v", w)
	}
	if w := m.Weight("Idle"); math.Abs(w-0.5) > 1e-5 {
		t.Errorf("Idle weight mid-fade = %v", w)
	}

	m.Update(0.15)
	if m.Weight("Run") != 1 || m.Weight("Idle") != 0 {
		t.Errorf("after fade: run=%v idle=%v", m.Weight("Run"), m.Weight("Idle"))
	}
}

func TestRedundantPlayIsNoop(t *testing.T) {
	m := NewMixer(testClips(), 0.2)
	m.Play("Run")
	m.Update(0.3)
	if m.Play("Run") {
		t.Error("replaying current clip reported a transition")
	}
	if math.Abs(m.Playhead()-0.3) > 1e-9 {
		t.Errorf("playhead reset to %v", m.Playhead())
	}
	if m.Play("Missing") {
		t.Error("unknown clip reported a transition")
	}
	if m.Current() != "Run" {
		t.Errorf("current = %q", m.Current())
	}
}

func TestOneShotFinishes(t *testing.T) {
	m := NewMixer(testClips(), 0)
	m.Play("Attack")
	m.Update(0.5)
	if m.Finished() {
		t.Fatal("finished early")
	}
	m.Update(0.5)
	if !m.Finished() || m.Playhead() != 0.8 {
		t.Errorf("finished=%v playhead=%v", m.Finished(), m.Playhead())
	}

	m.Play("Idle")
	m.Update(2.5)
	if m.Finished() {
		t.Error("looping clip reported finished")
	}
	if math.Abs(m.Playhead()-0.5) > 1e-9 {
		t.Errorf("looped playhead = %v", m.Playhead())
	}
}
