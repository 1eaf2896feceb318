package scenes

import (
	"fmt"
	"image/color"
	"math"

	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/shared/leveldata"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// view projects the ground plane onto the screen, one world unit per
// PixelsPerUnit pixels with z pointing down.
type view struct {
	scale float64
}

func newView() view {
	return view{scale: cfg.Display.PixelsPerUnit}
}

func (v view) project(p gamemath.Vec3) (float32, float32) {
	return float32(p.X * v.scale), float32(p.Z * v.scale)
}

// toWorld maps a screen pixel back onto the ground plane at height 0.
func (v view) toWorld(x, y int) gamemath.Vec3 {
	return gamemath.V3(float64(x)/v.scale, 0, float64(y)/v.scale)
}

func (v view) drawLevel(screen *ebiten.Image, level *leveldata.Level) {
	if level == nil {
		return
	}
	for _, g := range level.Ground {
		top := math.Max(g.Height, g.RampTo)
		shade := uint8(gamemath.Clamp(12*top, 0, 60))
		c := color.RGBA{cfg.Floor.R + shade, cfg.Floor.G + shade, cfg.Floor.B + shade, 255}
		vector.DrawFilledRect(screen,
			float32(g.X*v.scale), float32(g.Z*v.scale),
			float32(g.W*v.scale), float32(g.D*v.scale), c, false)
	}
	for _, w := range level.Walls {
		x0, y0 := v.project(w.A)
		x1, y1 := v.project(w.B)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, cfg.Wall, true)
	}
}

// drawAgent draws the footprint circle tinted by state and a facing tick.
func (v view) drawAgent(screen *ebiten.Image, pos gamemath.Vec3, yaw, radius float64, state cfg.StateID, inert bool) {
	x, y := v.project(pos)
	r := float32(math.Max(radius, 0.2) * v.scale)

	c := cfg.StateColors[state]
	if inert {
		c = color.RGBA{70, 70, 70, 255}
	}
	vector.DrawFilledCircle(screen, x, y, r, c, true)

	// yaw 0 faces +z
	fx := x + float32(math.Sin(yaw))*r*1.6
	fy := y + float32(math.Cos(yaw))*r*1.6
	vector.StrokeLine(screen, x, y, fx, fy, 2, cfg.White, true)
}

func (v view) drawPlayer(screen *ebiten.Image, pos gamemath.Vec3, name string, health, max float64) {
	x, y := v.project(pos)
	r := float32(cfg.Player.HitRadius * v.scale)
	vector.DrawFilledCircle(screen, x, y, r, cfg.PlayerBlue, true)
	text.Draw(screen, name, basicfont.Face7x13, int(x)+int(r)+2, int(y)+4, cfg.White)
	v.drawHealthBar(screen, pos, health/max)
}

func (v view) drawProjectile(screen *ebiten.Image, pos gamemath.Vec3, radius float64) {
	x, y := v.project(pos)
	vector.DrawFilledCircle(screen, x, y, float32(radius*v.scale), cfg.Ember, true)
}

func (v view) drawParticle(screen *ebiten.Image, pos gamemath.Vec3, alpha float64) {
	x, y := v.project(pos)
	// Height lifts the particle up the screen.
	y -= float32(pos.Y * v.scale * 0.5)
	a := uint8(gamemath.Clamp(alpha, 0, 1) * 255)
	c := color.RGBA{uint8(int(cfg.Ember.R) * int(a) / 255), uint8(int(cfg.Ember.G) * int(a) / 255), 0, a}
	vector.DrawFilledRect(screen, x-1, y-1, 2, 2, c, false)
}

func (v view) drawHealthBar(screen *ebiten.Image, pos gamemath.Vec3, fraction float64) {
	x, y := v.project(pos)
	w := cfg.Display.HealthBarW
	h := cfg.Display.HealthBarH
	drawX := float32(float64(x) - w/2)
	drawY := y - float32(v.scale) - float32(h)

	// Draw the background of the health bar (red)
	vector.DrawFilledRect(screen, drawX, drawY, float32(w), float32(h), cfg.Red, false)

	// Draw the foreground of the health bar (green)
	vector.DrawFilledRect(screen, drawX, drawY, float32(w*gamemath.Clamp(fraction, 0, 1)), float32(h), cfg.Green, false)
}

func (v view) drawLight(screen *ebiten.Image, pos gamemath.Vec3) {
	x, y := v.project(pos)
	vector.DrawFilledCircle(screen, x, y, float32(cfg.Display.LightRadius*v.scale), cfg.LightGlow, true)
}

func drawHUD(screen *ebiten.Image, lines ...string) {
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, 8, 16+14*i, cfg.White)
	}
}

func agentLabel(archetype string, state cfg.StateID, clip string) string {
	return fmt.Sprintf("%s %s/%s", archetype, state, clip)
}
