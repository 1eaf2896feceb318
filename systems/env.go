package systems

import (
	"github.com/automoto/doomerang-crypt/components"
	"github.com/yohamta/donburi"
)

// GetEnv returns the world's simulation singleton, nil when none was
// created.
func GetEnv(w donburi.World) *components.EnvData {
	entry, ok := components.Env.First(w)
	if !ok {
		return nil
	}
	return components.Env.Get(entry)
}
