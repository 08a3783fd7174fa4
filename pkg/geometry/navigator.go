package geometry

// NextDistinct returns the index of the first waypoint after i (wrapping to 0
// past the end) whose coordinates differ from wps[i].
// Panics with ErrDegenerateTrack if no such waypoint exists.
func NextDistinct(i int, wps []Point) int {
	n := len(wps)
	if n < 2 {
		panic(ErrDegenerateTrack)
	}
	for j, steps := (i+1)%n, 1; steps < n; j, steps = (j+1)%n, steps+1 {
		if wps[j] != wps[i] {
			return j
		}
	}
	panic(ErrDegenerateTrack)
}

// PrevDistinct returns the index of the first waypoint before i (wrapping to
// len-1 before 0) whose coordinates differ from wps[i].
// Panics with ErrDegenerateTrack if no such waypoint exists.
func PrevDistinct(i int, wps []Point) int {
	n := len(wps)
	if n < 2 {
		panic(ErrDegenerateTrack)
	}
	for j, steps := (i-1+n)%n, 1; steps < n; j, steps = (j-1+n)%n, steps+1 {
		if wps[j] != wps[i] {
			return j
		}
	}
	panic(ErrDegenerateTrack)
}

// StepDistinct moves n distinct steps from i. Negative n moves backwards.
func StepDistinct(i, n int, wps []Point) int {
	for ; n > 0; n-- {
		i = NextDistinct(i, wps)
	}
	for ; n < 0; n++ {
		i = PrevDistinct(i, wps)
	}
	return i
}
