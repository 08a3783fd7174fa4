package geometry

// HeadingParams are per track tuning values for TargetHeading.
type HeadingParams struct {
	Delay     int     // distinct waypoints to step back from the current one
	Offset    float64 // weight of the aggregate change ahead
	SkipAhead int
	LookAhead int
}

// TargetHeading anticipates upcoming curves: it takes the direction Delay
// distinct waypoints behind i and biases it by Offset times the aggregate
// change computed from there.
func TargetHeading(i int, wps []Point, p HeadingParams) float64 {
	j := StepDistinct(i, -p.Delay, wps)
	bias := p.Offset * AggregateChange(j, wps, p.SkipAhead, p.LookAhead, Symmetric)
	return WrapAngle(Direction(j, wps) + bias)
}
