package components

import (
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/yohamta/donburi"
)

type TransformData struct {
	Position gamemath.Vec3
	Yaw      float64 // radians around +y, zero facing +z
}

var Transform = donburi.NewComponentType[TransformData]()
