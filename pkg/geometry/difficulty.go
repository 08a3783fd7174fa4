package geometry

import (
	"errors"
	"math"
)

var ErrDegenerateBounds = errors.New("calibration bounds are degenerate (max == min)")

// Bounds are the min/max of the absolute aggregate change over a whole track.
// They must be computed once per track with the same skip/look ahead values
// that are later used for normalization.
type Bounds struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (b Bounds) Validate() error {
	if b.Max == b.Min {
		return ErrDegenerateBounds
	}
	return nil
}

// Normalize maps |value| into the calibration range. The result is not
// clamped, mismatched bounds yield values outside [0,1].
func Normalize(value float64, b Bounds) (float64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return (math.Abs(value) - b.Min) / (b.Max - b.Min), nil
}

func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Difficulty describes the upcoming track section at a waypoint.
type Difficulty struct {
	Change     float64 // signed aggregate change
	Abs        float64 // |Change|
	Normalized float64 // Abs mapped by the calibration bounds
}

// WaypointDifficulty computes the symmetric aggregate change at i and
// normalizes it with b.
func WaypointDifficulty(i int, wps []Point, skipAhead, lookAhead int, b Bounds) (
	Difficulty, error,
) {
	change := AggregateChange(i, wps, skipAhead, lookAhead, Symmetric)
	norm, err := Normalize(change, b)
	if err != nil {
		return Difficulty{}, err
	}
	return Difficulty{Change: change, Abs: math.Abs(change), Normalized: norm}, nil
}
