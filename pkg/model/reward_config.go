package model

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
)

// RewardConfig is the calibration result for a single track. It is stored as
// JSON (or YAML) sidecar next to the reward function and in the database.
//
//nolint:tagliatelle // keys are shared with the reward function
type RewardConfig struct {
	Track         string                  `json:"track" yaml:"track"`
	RewardType    int                     `json:"reward_type" yaml:"reward_type"`
	WaypointCount int                     `json:"waypoint_count" yaml:"waypoint_count"`
	Aggregate     int                     `json:"aggregate" yaml:"aggregate"`
	Importance    geometry.Histogram      `json:"importance" yaml:"importance"`
	Difficulty    DifficultyConfig        `json:"difficulty" yaml:"difficulty"`
	Heading       HeadingConfig           `json:"heading" yaml:"heading"`
	StepReward    *geometry.SigmoidParams `json:"step_reward,omitempty" yaml:"step_reward,omitempty"`
	Agent         ActionSpace             `json:"agent" yaml:"agent"`
}

//nolint:tagliatelle // keys are shared with the reward function
type DifficultyConfig struct {
	SkipAhead int                     `json:"skip-ahead" yaml:"skip-ahead"`
	LookAhead int                     `json:"look-ahead" yaml:"look-ahead"`
	Max       float64                 `json:"max" yaml:"max"`
	Min       float64                 `json:"min" yaml:"min"`
	Weighting *geometry.SigmoidParams `json:"weighting,omitempty" yaml:"weighting,omitempty"`
	Histogram geometry.Histogram      `json:"histogram" yaml:"histogram"`
}

func (d DifficultyConfig) Bounds() geometry.Bounds {
	return geometry.Bounds{Min: d.Min, Max: d.Max}
}

type HeadingConfig struct {
	Delay  int     `json:"delay" yaml:"delay"`
	Offset float64 `json:"offset" yaml:"offset"`
}

// Params combines the heading values with the look ahead window of d
func (h HeadingConfig) Params(d DifficultyConfig) geometry.HeadingParams {
	return geometry.HeadingParams{
		Delay:     h.Delay,
		Offset:    h.Offset,
		SkipAhead: d.SkipAhead,
		LookAhead: d.LookAhead,
	}
}

// ActionSpace is the continuous action space of model_metadata.json
//
//nolint:tagliatelle // defined by model_metadata.json
type ActionSpace struct {
	SteeringAngle Range `json:"steering_angle" yaml:"steering_angle"`
	Speed         Range `json:"speed" yaml:"speed"`
}

type Range struct {
	High float64 `json:"high" yaml:"high"`
	Low  float64 `json:"low" yaml:"low"`
}

func (r Range) Span() float64 {
	return r.High - r.Low
}

// DBCalibration is a stored calibration
type DBCalibration struct {
	ID        uuid.UUID
	Track     string
	CreatedAt time.Time
	Data      RewardConfig
}
