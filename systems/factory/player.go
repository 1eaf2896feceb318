package factory

import (
	"github.com/automoto/doomerang-crypt/archetypes"
	"github.com/automoto/doomerang-crypt/components"
	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/yohamta/donburi"
)

func CreatePlayer(w donburi.World, name string, index int, pos gamemath.Vec3) *donburi.Entry {
	player := archetypes.Player.Spawn(w)

	components.Player.SetValue(player, components.PlayerData{
		Name:      name,
		Index:     index,
		HitRadius: cfg.Player.HitRadius,
	})
	components.Transform.SetValue(player, components.TransformData{
		Position: pos,
	})
	components.Health.SetValue(player, components.HealthData{
		Current: cfg.Player.MaxHealth,
		Max:     cfg.Player.MaxHealth,
	})

	return player
}
