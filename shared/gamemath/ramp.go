package gamemath

// RampAxis selects the ground-plane axis a ramp rises along.
type RampAxis int

const (
	RampNone RampAxis = iota
	RampAlongX
	RampAlongZ
)

// RampSurfaceY returns the surface height at (x, z) for a patch whose
// footprint starts at (px, pz) with size (pw, pd). Height interpolates from
// y0 at the start edge to y1 at the far edge along axis.
func RampSurfaceY(x, z, px, pz, pw, pd, y0, y1 float64, axis RampAxis) float64 {
	var t float64
	switch axis {
	case RampAlongX:
		if pw <= 0 {
			return y0
		}
		t = Clamp(x-px, 0, pw) / pw
	case RampAlongZ:
		if pd <= 0 {
			return y0
		}
		t = Clamp(z-pz, 0, pd) / pd
	default:
		return y0
	}
	return y0 + (y1-y0)*t
}
