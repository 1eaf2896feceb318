package components

import (
	"github.com/automoto/doomerang-crypt/host"
	"github.com/yohamta/donburi"
)

// CollaboratorsData holds the visual helpers an agent owns. They are
// released when the agent is removed.
type CollaboratorsData struct {
	HealthBar host.HealthBar
	Light     host.Light
}

func (c *CollaboratorsData) Release() {
	if c.HealthBar != nil {
		c.HealthBar.Remove()
		c.HealthBar = nil
	}
	if c.Light != nil {
		c.Light.Remove()
		c.Light = nil
	}
}

var Collaborators = donburi.NewComponentType[CollaboratorsData]()
