package gamemath

import "math"

// Vec3 is a world-space vector. Y is up; the ground plane is XZ.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// Normalize returns the unit vector along v, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// DistanceSq avoids the sqrt for range and collision checks.
func DistanceSq(a, b Vec3) float64 {
	return a.Sub(b).LengthSq()
}

func Distance(a, b Vec3) float64 {
	return math.Sqrt(DistanceSq(a, b))
}

// MoveToward steps from toward target by at most step and never overshoots.
func MoveToward(from, target Vec3, step float64) Vec3 {
	delta := target.Sub(from)
	dist := delta.Length()
	if dist <= step || dist == 0 {
		return target
	}
	return from.Add(delta.Scale(step / dist))
}

// YawToward is the heading that faces target on the ground plane.
func YawToward(from, target Vec3) float64 {
	return math.Atan2(target.X-from.X, target.Z-from.Z)
}
