package scenes

import (
	"github.com/automoto/doomerang-crypt/host"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/yohamta/donburi"
)

// overlay keeps the health bars and lights the simulation hands out so the
// scene can draw them after the agents.
type overlay struct {
	bars   map[donburi.Entity]*healthBar
	lights map[donburi.Entity]*light
}

func newOverlay() *overlay {
	return &overlay{
		bars:   make(map[donburi.Entity]*healthBar),
		lights: make(map[donburi.Entity]*light),
	}
}

func (o *overlay) NewHealthBar(agent donburi.Entity) host.HealthBar {
	b := &healthBar{owner: o, agent: agent, fraction: 1}
	o.bars[agent] = b
	return b
}

func (o *overlay) NewLight(agent donburi.Entity) host.Light {
	l := &light{owner: o, agent: agent}
	o.lights[agent] = l
	return l
}

type healthBar struct {
	owner    *overlay
	agent    donburi.Entity
	fraction float64
}

func (b *healthBar) SetHealth(current, max float64) {
	if max <= 0 {
		b.fraction = 0
		return
	}
	b.fraction = gamemath.Clamp(current/max, 0, 1)
}

func (b *healthBar) Remove() {
	delete(b.owner.bars, b.agent)
}

type light struct {
	owner    *overlay
	agent    donburi.Entity
	position gamemath.Vec3
	placed   bool
}

func (l *light) SetPosition(pos gamemath.Vec3) {
	l.position = pos
	l.placed = true
}

func (l *light) Remove() {
	delete(l.owner.lights, l.agent)
}
