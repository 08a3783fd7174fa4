package calibration

import (
	"context"
	"fmt"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

type (
	Calibrator struct {
		log     *log.Logger
		tracer  trace.Tracer
		workers int
	}
	Option func(*Calibrator)
)

func WithLogger(l *log.Logger) Option {
	return func(c *Calibrator) {
		c.log = l
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Calibrator) {
		c.tracer = tracer
	}
}

// WithWorkers limits the number of concurrent sweep workers.
// Values < 1 use runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(c *Calibrator) {
		c.workers = n
	}
}

func NewCalibrator(opts ...Option) *Calibrator {
	ret := &Calibrator{
		log: log.Default().Named("calibration"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("drt")
	}
	if ret.workers < 1 {
		ret.workers = runtime.NumCPU()
	}
	return ret
}

// Calibrate creates the reward configuration for track.
func (c *Calibrator) Calibrate(ctx context.Context, track *model.Track, p Params) (
	*model.RewardConfig, error,
) {
	ctx, span := c.tracer.Start(ctx, "calibrate",
		trace.WithAttributes(attribute.String("track", track.Name)))
	defer span.End()

	res, err := c.Sweep(ctx, track.Center, p.SkipAhead, p.LookAhead)
	if err != nil {
		return nil, err
	}
	importance, err := geometry.NewHistogram(res.Changes, p.BinCount)
	if err != nil {
		return nil, fmt.Errorf("importance histogram: %w", err)
	}
	importance.Values = ImportanceWeights(importance.Counts)

	throttle, err := geometry.NewHistogram(res.Difficulties, p.DifficultyBins)
	if err != nil {
		return nil, fmt.Errorf("difficulty histogram: %w", err)
	}
	throttle.Values = ThrottleValues(throttle.Counts, p.Speed.Low, p.Speed.High)

	b := res.Bounds()
	if err := b.Validate(); err != nil {
		c.log.Warn("difficulty bounds are degenerate, normalization will fail",
			log.String("track", track.Name),
			log.Float64("value", b.Min))
	}
	ret := &model.RewardConfig{
		Track:         track.Name,
		RewardType:    p.RewardType,
		WaypointCount: len(track.Center),
		Aggregate:     p.Aggregate,
		Importance:    importance,
		Difficulty: model.DifficultyConfig{
			SkipAhead: p.SkipAhead,
			LookAhead: p.LookAhead,
			Max:       b.Max,
			Min:       b.Min,
			Weighting: p.Weighting,
			Histogram: throttle,
		},
		Heading:    model.HeadingConfig{Delay: p.Delay, Offset: p.Offset},
		StepReward: p.StepReward,
		Agent:      model.ActionSpace{SteeringAngle: p.Steering, Speed: p.Speed},
	}
	c.log.Info("track calibrated",
		log.String("track", track.Name),
		log.Int("waypoints", ret.WaypointCount),
		log.Float64("min", b.Min),
		log.Float64("max", b.Max))
	return ret, nil
}
