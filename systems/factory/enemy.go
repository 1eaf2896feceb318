package factory

import (
	"log"
	"math"

	"github.com/automoto/doomerang-crypt/archetypes"
	"github.com/automoto/doomerang-crypt/assets"
	"github.com/automoto/doomerang-crypt/components"
	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/host"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/yohamta/donburi"
)

// EnemySpawn describes one agent to create.
type EnemySpawn struct {
	Archetype string
	Position  gamemath.Vec3
	Model     string // optional override of the archetype model
}

// CreateEnemy spawns an agent and starts loading its model. The agent
// stays idle and untargetable until the load completes.
func CreateEnemy(w donburi.World, spawn EnemySpawn, loader assets.ModelLoader, collab host.Collaborators) *donburi.Entry {
	// Unknown archetypes fall back to the default profile
	archetype, ok := cfg.ParseArchetype(spawn.Archetype)
	if !ok {
		log.Printf("Unknown enemy archetype %q, using %s", spawn.Archetype, archetype)
	}
	profile := cfg.ProfileFor(archetype)

	enemy := archetypes.Enemy.Spawn(w)

	components.Agent.SetValue(enemy, components.AgentData{
		Archetype:  archetype,
		Profile:    profile,
		State:      cfg.Idle,
		LastAttack: math.Inf(-1),
		Target:     donburi.Null,
		HitRadius:  cfg.Agent.DefaultHitRadius,
	})
	components.Transform.SetValue(enemy, components.TransformData{
		Position: spawn.Position,
	})
	components.Health.SetValue(enemy, components.HealthData{
		Current: profile.MaxHealth,
		Max:     profile.MaxHealth,
	})

	modelPath := spawn.Model
	if modelPath == "" {
		modelPath = profile.Model
	}
	model := components.ModelData{Path: modelPath}
	if loader != nil {
		model.Pending = loader.Load(modelPath)
	}
	components.Model.SetValue(enemy, model)

	if collab == nil {
		collab = host.Nop{}
	}
	bar := collab.NewHealthBar(enemy.Entity())
	bar.SetHealth(profile.MaxHealth, profile.MaxHealth)
	light := collab.NewLight(enemy.Entity())
	light.SetPosition(spawn.Position)
	components.Collaborators.SetValue(enemy, components.CollaboratorsData{
		HealthBar: bar,
		Light:     light,
	})

	return enemy
}
