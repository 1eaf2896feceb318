package systems

import (
	"log"

	"github.com/automoto/doomerang-crypt/assets"
	"github.com/automoto/doomerang-crypt/assets/animations"
	"github.com/automoto/doomerang-crypt/components"
	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateModelLoads consumes finished model loads without blocking. A
// loaded agent becomes ready; a failed one is tagged inert and never
// takes part in the simulation.
func UpdateModelLoads(ecs *ecs.ECS) {
	w := ecs.World
	var failed []*donburi.Entry
	components.Model.Each(w, func(e *donburi.Entry) {
		model := components.Model.Get(e)
		if model.Pending == nil {
			return
		}
		var result assets.Result
		select {
		case result = <-model.Pending:
		default:
			return
		}
		model.Pending = nil

		if result.Err != nil || result.Model == nil {
			log.Printf("Enemy model %s failed to load, agent left inert: %v", model.Path, result.Err)
			failed = append(failed, e)
			return
		}
		model.Model = result.Model

		agent := components.Agent.Get(e)
		agent.HitRadius = gamemath.HitRadius(result.Model.Bounds, agent.Profile.ScaleFactor)
		agent.Ready = true

		anim := components.Animation.Get(e)
		anim.Mixer = animations.NewMixer(result.Model.Clips, cfg.Agent.CrossfadeSeconds)
		anim.Mixer.Play(cfg.StateToClip[agent.State])
	})

	for _, e := range failed {
		if !e.HasComponent(tags.Inert) {
			e.AddComponent(tags.Inert)
		}
	}
}
