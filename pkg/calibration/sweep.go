package calibration

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
)

// SweepResult holds per waypoint values of a whole track.
type SweepResult struct {
	Changes      []float64 // symmetric direction change
	Aggregates   []float64 // signed aggregate change
	Difficulties []float64 // |aggregate change|
}

// Bounds are the min/max of the difficulties
func (r *SweepResult) Bounds() geometry.Bounds {
	return geometry.Bounds{Min: floats.Min(r.Difficulties), Max: floats.Max(r.Difficulties)}
}

// chunk size per worker task
const sweepChunk = 64

// Sweep evaluates all waypoints of wps. The work is split into chunks which
// are processed by at most c.workers goroutines.
func (c *Calibrator) Sweep(ctx context.Context, wps []geometry.Point, skipAhead, lookAhead int) (
	*SweepResult, error,
) {
	if err := geometry.Validate(wps); err != nil {
		return nil, err
	}
	ctx, span := c.tracer.Start(ctx, "calibration sweep",
		trace.WithAttributes(
			attribute.Int("waypoints", len(wps)),
			attribute.Int("skipAhead", skipAhead),
			attribute.Int("lookAhead", lookAhead)))
	defer span.End()

	n := len(wps)
	ret := &SweepResult{
		Changes:      make([]float64, n),
		Aggregates:   make([]float64, n),
		Difficulties: make([]float64, n),
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for start := 0; start < n; start += sweepChunk {
		end := min(start+sweepChunk, n)
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				ret.Changes[i] = geometry.DirectionChange(i, wps)
				agg := geometry.AggregateChange(i, wps, skipAhead, lookAhead, geometry.Symmetric)
				ret.Aggregates[i] = agg
				ret.Difficulties[i] = math.Abs(agg)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("sweep: %w", err)
	}
	c.log.Debug("sweep done",
		log.Int("waypoints", n),
		log.Float64("min", floats.Min(ret.Difficulties)),
		log.Float64("max", floats.Max(ret.Difficulties)))
	return ret, nil
}

// ChangeLimits returns the min/max absolute direction change of wps.
func ChangeLimits(wps []geometry.Point) (geometry.Bounds, error) {
	if err := geometry.Validate(wps); err != nil {
		return geometry.Bounds{}, err
	}
	ret := geometry.Bounds{Min: math.Inf(1), Max: math.Inf(-1)}
	for i := range wps {
		c := math.Abs(geometry.DirectionChange(i, wps))
		ret.Min = math.Min(ret.Min, c)
		ret.Max = math.Max(ret.Max, c)
	}
	return ret, nil
}
