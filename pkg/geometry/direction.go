package geometry

import "math"

// Direction returns the local tangent angle at waypoint i in (-π, π].
// The tangent is taken between the midpoints towards the previous and the
// next distinct neighbour, which is less noisy than the plain chord.
func Direction(i int, wps []Point) float64 {
	b := PrevDistinct(i, wps)
	a := NextDistinct(i, wps)
	ahead := Midpoint(wps[a], wps[i])
	behind := Midpoint(wps[i], wps[b])
	r := math.Atan2(ahead.Y-behind.Y, ahead.X-behind.X)
	if r == -math.Pi {
		r = math.Pi
	}
	return r
}

// WrapAngle maps d into (-π, π] so differences across ±π stay small.
func WrapAngle(d float64) float64 {
	r := math.Atan2(math.Sin(d), math.Cos(d))
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}
