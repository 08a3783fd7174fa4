package calibration

import (
	"errors"
	"fmt"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

var ErrTrackMismatch = errors.New("configuration does not match track")

// Row holds the verification values of a single waypoint.
type Row struct {
	Index      int
	Next       int // next distinct waypoint
	Direction  float64
	Change     float64 // symmetric direction change
	Aggregate  float64 // signed aggregate change
	Difficulty float64 // |Aggregate|
	Normalized float64
	Weighted   float64 // Normalized shaped by the weighting sigmoid, Normalized if unset
	Importance float64
	Throttle   float64
	// Throttle mapped to [0,1] within the agent speed range
	ThrottleNormalized float64
	TargetHeading      float64
}

// Verify evaluates cfg on every waypoint of track.
// Values outside the calibrated histogram domain are reported as error,
// they indicate that cfg was created for a different track or window.
func Verify(track *model.Track, cfg *model.RewardConfig) ([]Row, error) {
	wps := track.Center
	if err := geometry.Validate(wps); err != nil {
		return nil, err
	}
	if cfg.WaypointCount > 0 && cfg.WaypointCount != len(wps) {
		return nil, fmt.Errorf("%w: %d waypoints configured, track %s has %d",
			ErrTrackMismatch, cfg.WaypointCount, track.Name, len(wps))
	}
	d := cfg.Difficulty
	headingParams := cfg.Heading.Params(d)
	speed := cfg.Agent.Speed
	ret := make([]Row, len(wps))
	for i := range wps {
		diff, err := geometry.WaypointDifficulty(i, wps, d.SkipAhead, d.LookAhead, d.Bounds())
		if err != nil {
			return nil, err
		}
		change := geometry.DirectionChange(i, wps)
		importance, err := cfg.Importance.Lookup(change)
		if err != nil {
			return nil, fmt.Errorf("importance at waypoint %d: %w", i, err)
		}
		throttle, err := d.Histogram.Lookup(diff.Abs)
		if err != nil {
			return nil, fmt.Errorf("throttle at waypoint %d: %w", i, err)
		}
		row := Row{
			Index:         i,
			Next:          geometry.NextDistinct(i, wps),
			Direction:     geometry.Direction(i, wps),
			Change:        change,
			Aggregate:     diff.Change,
			Difficulty:    diff.Abs,
			Normalized:    diff.Normalized,
			Weighted:      diff.Normalized,
			Importance:    importance,
			Throttle:      throttle,
			TargetHeading: geometry.TargetHeading(i, wps, headingParams),
		}
		if d.Weighting != nil {
			row.Weighted = d.Weighting.Eval(diff.Normalized)
		}
		if speed.Span() != 0 {
			row.ThrottleNormalized = (throttle - speed.Low) / speed.Span()
		}
		ret[i] = row
	}
	return ret, nil
}
