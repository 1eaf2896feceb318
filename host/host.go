// Package host declares the visual collaborators an agent owns. The
// simulation drives them; rendering them is up to the host.
package host

import (
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/yohamta/donburi"
)

type HealthBar interface {
	SetHealth(current, max float64)
	Remove()
}

type Light interface {
	SetPosition(pos gamemath.Vec3)
	Remove()
}

// Collaborators creates the per-agent collaborators.
type Collaborators interface {
	NewHealthBar(agent donburi.Entity) HealthBar
	NewLight(agent donburi.Entity) Light
}

// Nop is used by headless hosts.
type Nop struct{}

func (Nop) NewHealthBar(donburi.Entity) HealthBar { return nopBar{} }
func (Nop) NewLight(donburi.Entity) Light         { return nopLight{} }

type nopBar struct{}

func (nopBar) SetHealth(float64, float64) {}
func (nopBar) Remove()                    {}

type nopLight struct{}

func (nopLight) SetPosition(gamemath.Vec3) {}
func (nopLight) Remove()                   {}
