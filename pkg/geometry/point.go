// Package geometry contains pure functions over a closed, cyclic sequence of
// track waypoints: distinct-neighbour navigation, local direction, direction
// change (a curvature proxy), difficulty normalization, histogram lookup,
// sigmoid shaping and target heading estimation.
//
// None of the functions keep state. Waypoint slices are treated as read-only.
package geometry

import "errors"

var ErrDegenerateTrack = errors.New("track needs at least two distinct waypoints")

// Point is a single waypoint on the track.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Midpoint returns (p+q)/2
func Midpoint(p, q Point) Point {
	return p.Add(q).Scale(0.5)
}

// Validate checks the precondition of all navigation based functions:
// the sequence must contain at least two distinct points.
func Validate(wps []Point) error {
	for i := 1; i < len(wps); i++ {
		if wps[i] != wps[0] {
			return nil
		}
	}
	return ErrDegenerateTrack
}
