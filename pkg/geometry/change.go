package geometry

import "fmt"

// ChangeMode selects how the direction change at a single waypoint is computed.
type ChangeMode int

const (
	// Symmetric averages the change from the previous and to the next
	// distinct waypoint.
	Symmetric ChangeMode = iota
	// Forward only uses the change towards the next distinct waypoint.
	Forward
)

func (m ChangeMode) String() string {
	switch m {
	case Symmetric:
		return "symmetric"
	case Forward:
		return "forward"
	default:
		return fmt.Sprintf("ChangeMode(%d)", int(m))
	}
}

// DirectionChange returns the signed local direction change at i.
// Positive values are left turns (counter clockwise).
func DirectionChange(i int, wps []Point) float64 {
	prev := Direction(PrevDistinct(i, wps), wps)
	cur := Direction(i, wps)
	next := Direction(NextDistinct(i, wps), wps)
	return (WrapAngle(cur-prev) + WrapAngle(next-cur)) / 2
}

// DirectionChangeAhead returns the signed change from i to its next
// distinct waypoint.
func DirectionChangeAhead(i int, wps []Point) float64 {
	return WrapAngle(Direction(NextDistinct(i, wps), wps) - Direction(i, wps))
}

func Change(i int, wps []Point, mode ChangeMode) float64 {
	if mode == Forward {
		return DirectionChangeAhead(i, wps)
	}
	return DirectionChange(i, wps)
}

// AggregateChange starts skipAhead distinct steps after i and sums the
// direction change of that waypoint and the lookAhead distinct waypoints
// following it. With lookAhead == 0 this is the single value at the start.
func AggregateChange(i int, wps []Point, skipAhead, lookAhead int, mode ChangeMode) float64 {
	idx := StepDistinct(i, skipAhead, wps)
	sum := Change(idx, wps, mode)
	for k := 0; k < lookAhead; k++ {
		idx = NextDistinct(idx, wps)
		sum += Change(idx, wps, mode)
	}
	return sum
}
