package components

import (
	"github.com/automoto/doomerang-crypt/assets"
	"github.com/yohamta/donburi"
)

// ModelData tracks an agent's model load. Pending is nil once the result
// has been consumed.
type ModelData struct {
	Path    string
	Pending <-chan assets.Result
	Model   *assets.Model
}

var Model = donburi.NewComponentType[ModelData]()
