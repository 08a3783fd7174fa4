// Package reward implements the progress based reward function of a
// training episode.
package reward

import (
	"fmt"
	"strconv"
	"strings"
)

const TracePrefix = "MY_TRACE_LOG:"

// Params is the subset of the simulator parameters used by the reward.
//
//nolint:tagliatelle // defined by the simulator
type Params struct {
	Steps            int     `json:"steps"`
	Progress         float64 `json:"progress"`
	ClosestWaypoints [2]int  `json:"closest_waypoints"`
	IsOfftrack       bool    `json:"is_offtrack"`
	Speed            float64 `json:"speed"`
	Heading          float64 `json:"heading"`
	SteeringAngle    float64 `json:"steering_angle"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
}

type Result struct {
	Reward       float64
	MeanProgress float64
	Finished     bool
	Trace        string
}

// Episode keeps the state between the calls of a single episode.
// It is not safe for concurrent use.
type Episode struct {
	aggregate    int
	lastProgress float64
	progress     *CircularBuffer
}

// NewEpisode returns an episode which averages the step progress over
// aggregate steps. Values < 1 are treated as 1.
func NewEpisode(aggregate int) *Episode {
	return &Episode{aggregate: max(aggregate, 1)}
}

// Step computes the reward of a single step. The state is reset at the
// beginning of an episode (steps <= 2).
func (e *Episode) Step(p Params) Result {
	if p.Steps <= 2 || e.progress == nil {
		e.lastProgress = 0
		e.progress = NewCircularBuffer(e.aggregate, e.lastProgress)
	}
	e.progress.Add(p.Progress - e.lastProgress)
	mean := e.progress.Mean()
	e.lastProgress = p.Progress

	ret := Result{
		Reward:       mean,
		MeanProgress: mean,
		Finished:     p.IsOfftrack || p.Progress == 100.0,
	}
	ret.Trace = traceLine(p, ret)
	return ret
}

func traceLine(p Params, r Result) string {
	finished := 0
	if r.Finished {
		finished = 1
	}
	return TracePrefix + strings.Join([]string{
		strconv.Itoa(p.Steps),
		strconv.Itoa(p.ClosestWaypoints[0]),
		formatFloat(p.Progress),
		formatFloat(r.MeanProgress),
		formatFloat(r.Reward),
		strconv.Itoa(finished),
	}, ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TraceRecord is a parsed trace line
type TraceRecord struct {
	Steps        int
	Waypoint     int
	Progress     float64
	MeanProgress float64
	Reward       float64
	Finished     bool
}

// ParseTrace parses a line produced by Step. Log prefixes before the trace
// marker are ignored.
func ParseTrace(line string) (TraceRecord, error) {
	ret := TraceRecord{}
	idx := strings.Index(line, TracePrefix)
	if idx < 0 {
		return ret, fmt.Errorf("no trace marker in %q", line)
	}
	parts := strings.Split(strings.TrimSpace(line[idx+len(TracePrefix):]), ",")
	if len(parts) != 6 {
		return ret, fmt.Errorf("trace needs 6 fields, got %d", len(parts))
	}
	var err error
	if ret.Steps, err = strconv.Atoi(parts[0]); err != nil {
		return ret, err
	}
	if ret.Waypoint, err = strconv.Atoi(parts[1]); err != nil {
		return ret, err
	}
	if ret.Progress, err = strconv.ParseFloat(parts[2], 64); err != nil {
		return ret, err
	}
	if ret.MeanProgress, err = strconv.ParseFloat(parts[3], 64); err != nil {
		return ret, err
	}
	if ret.Reward, err = strconv.ParseFloat(parts[4], 64); err != nil {
		return ret, err
	}
	ret.Finished = parts[5] == "1"
	return ret, nil
}
