package gamemath

import "math"

// SmoothToward moves current toward target by exponential smoothing.
// rate is in 1/seconds; a non-positive dt leaves current unchanged.
func SmoothToward(current, target, rate, dt float64) float64 {
	if dt <= 0 || rate <= 0 {
		return current
	}
	alpha := 1 - math.Exp(-rate*dt)
	return current + (target-current)*alpha
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Integrate advances a position along a unit direction.
func Integrate(pos, dir Vec3, speed, dt float64) Vec3 {
	return pos.Add(dir.Scale(speed * dt))
}

// SpheresOverlap is the squared-distance sphere test used for projectile hits.
func SpheresOverlap(a Vec3, ra float64, b Vec3, rb float64) bool {
	r := ra + rb
	return DistanceSq(a, b) <= r*r
}
