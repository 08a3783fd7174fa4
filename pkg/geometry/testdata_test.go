package geometry

import "math"

// square track, counter clockwise, with a duplicate at index 2
func squareTrack() []Point {
	return []Point{
		{0, 0}, {1, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1},
	}
}

// stadium track: two straights joined by half circles, counter clockwise
func stadiumTrack(straight float64, radius float64, stepsPerArc int) []Point {
	ret := []Point{}
	for x := 0.0; x < straight; x += radius / 2 {
		ret = append(ret, Point{x, 0})
	}
	for k := 0; k < stepsPerArc; k++ {
		a := -math.Pi/2 + math.Pi*float64(k)/float64(stepsPerArc)
		ret = append(ret, Point{straight + radius*math.Cos(a), radius + radius*math.Sin(a)})
	}
	for x := straight; x > 0; x -= radius / 2 {
		ret = append(ret, Point{x, 2 * radius})
	}
	for k := 0; k < stepsPerArc; k++ {
		a := math.Pi/2 + math.Pi*float64(k)/float64(stepsPerArc)
		ret = append(ret, Point{radius * math.Cos(a), radius + radius*math.Sin(a)})
	}
	return ret
}
