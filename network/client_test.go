package network

import (
	"errors"
	"testing"

	"github.com/automoto/doomerang-crypt/shared/messages"
)

func TestClientEventsKeepArrivalOrder(t *testing.T) {
	c := NewClient()
	c.queue(messages.DeathEvent{X: 1})
	c.queue(messages.ProjectileFiredEvent{X: 2})
	c.queue(messages.LevelChangeEvent{Level: "crypt"})

	events := c.Events()
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if _, ok := events[0].(messages.DeathEvent); !ok {
		t.Errorf("first event = %T", events[0])
	}
	if evt, ok := events[2].(messages.LevelChangeEvent); !ok || evt.Level != "crypt" {
		t.Errorf("last event = %#v", events[2])
	}
	if len(c.Events()) != 0 {
		t.Error("events returned twice")
	}
}

func TestClientDropsEventsWhenBehind(t *testing.T) {
	c := NewClient()
	for i := 0; i < cap(c.events)+10; i++ {
		c.queue(messages.ProjectileFiredEvent{X: float64(i)})
	}
	events := c.Events()
	if len(events) != cap(c.events) {
		t.Fatalf("events = %d, want %d", len(events), cap(c.events))
	}
	if evt := events[0].(messages.ProjectileFiredEvent); evt.X != 0 {
		t.Errorf("oldest kept event x = %v, want 0", evt.X)
	}
}

func TestClientSendWithoutConnection(t *testing.T) {
	c := NewClient()
	if err := c.SendMessage(messages.NewPlayerInput(1)); !errors.Is(err, errNotConnected) {
		t.Errorf("SendMessage err = %v, want errNotConnected", err)
	}
	if state, err := c.Status(); state != StateDisconnected || err != nil {
		t.Errorf("Status = %v,%v", state, err)
	}
	if c.LatestSnapshot() != nil {
		t.Error("snapshot before any message")
	}
}
