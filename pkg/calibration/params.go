// Package calibration derives the per track reward configuration from the
// waypoint geometry and verifies stored configurations against a track.
package calibration

import (
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

// Params controls a calibration run
type Params struct {
	SkipAhead      int
	LookAhead      int
	BinCount       int // bins of the importance histogram
	DifficultyBins int // bins of the throttle histogram
	Aggregate      int // steps of the mean progress window
	RewardType     int
	Delay          int
	Offset         float64
	Speed          model.Range
	Steering       model.Range
	StepReward     *geometry.SigmoidParams
	Weighting      *geometry.SigmoidParams
}

var (
	// DefaultStepReward is tuned for a cumulative max of about 150 at 312 steps
	DefaultStepReward = geometry.SigmoidParams{K: -0.015, X0: 400, YMin: 0, YMax: 0.625}
	DefaultWeighting  = geometry.SigmoidParams{K: 30, X0: 0.5, YMin: 0, YMax: 1}
)

func DefaultParams() Params {
	return Params{
		SkipAhead:      1,
		LookAhead:      0,
		BinCount:       12,
		DifficultyBins: 3,
		Aggregate:      15,
		Delay:          4,
		Offset:         1.0,
		Speed:          model.Range{Low: 1.0, High: 3.0},
		Steering:       model.Range{Low: -30, High: 30},
	}
}
