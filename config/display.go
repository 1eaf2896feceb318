package config

import "image/color"

// DisplayConfig sizes the sandbox window. The view is top-down: world x
// maps to screen x and world z to screen y.
type DisplayConfig struct {
	Width         int
	Height        int
	PixelsPerUnit float64
	HealthBarW    float64 // pixels
	HealthBarH    float64
	LightRadius   float64 // world units
}

var Display = DisplayConfig{
	Width:         768,
	Height:        512,
	PixelsPerUnit: 16,
	HealthBarW:    28,
	HealthBarH:    4,
	LightRadius:   2.5,
}

// Colors
var (
	Black      = color.RGBA{0, 0, 0, 255}
	White      = color.RGBA{255, 255, 255, 255}
	Red        = color.RGBA{200, 40, 40, 255}
	Green      = color.RGBA{60, 200, 80, 255}
	Floor      = color.RGBA{34, 30, 40, 255}
	Wall       = color.RGBA{150, 140, 170, 255}
	PlayerBlue = color.RGBA{70, 140, 255, 255}
	Ember      = color.RGBA{255, 150, 40, 255}
	LightGlow  = color.RGBA{255, 200, 120, 40}
)

// StateColors tint agents by AI state.
var StateColors = map[StateID]color.RGBA{
	Idle:      {150, 150, 150, 255},
	Chasing:   {230, 190, 60, 255},
	Attacking: {230, 60, 60, 255},
}
