package archetypes

import (
	"github.com/automoto/doomerang-crypt/components"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Transform,
		components.Health,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Agent,
		components.Transform,
		components.Health,
		components.Animation,
		components.Model,
		components.Collaborators,
	)
	Env = newArchetype(
		components.Env,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
