package factory

import (
	"github.com/automoto/doomerang-crypt/archetypes"
	"github.com/automoto/doomerang-crypt/components"
	"github.com/yohamta/donburi"
)

// CreateEnv spawns the singleton that carries the clock and the shared
// pools. A world holds at most one.
func CreateEnv(w donburi.World, env components.EnvData) *donburi.Entry {
	if entry, ok := components.Env.First(w); ok {
		components.Env.SetValue(entry, env)
		return entry
	}
	entry := archetypes.Env.Spawn(w)
	components.Env.SetValue(entry, env)
	return entry
}
