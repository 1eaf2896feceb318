package gamemath

import "math"

// Bounds is an axis-aligned box in model space.
type Bounds struct {
	Min, Max Vec3
}

func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Bounds) Empty() bool {
	s := b.Size()
	return s.X <= 0 && s.Y <= 0 && s.Z <= 0
}

// HitRadius approximates the model footprint as a sphere: the larger
// horizontal half-extent, scaled.
func HitRadius(b Bounds, scale float64) float64 {
	s := b.Size()
	return math.Max(s.X, s.Z) / 2 * scale
}
