package calibrate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/calibration"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/cmdutil"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/config"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/configfile"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
	calibrationrepos "github.com/mpapenbr/deepracer-toolkit-go/pkg/repository/calibration"
)

type cmdConfig struct {
	track          string
	runEnv         string
	modelMetadata  string
	hyperparams    string
	learningRate   float64
	output         string
	store          bool
	sigmoids       bool
	agentSpeedHigh float64
	agentSpeedLow  float64
	params         calibration.Params
}

var cfg = cmdConfig{params: calibration.DefaultParams()}

//nolint:funlen // flag definitions
func NewCalibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "creates the reward configuration for a track",
		Long: `Computes the difficulty bounds and histograms of a track and writes
the reward configuration. Optionally updates model_metadata.json and
hyperparameters.json of the training setup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return calibrate(cmd.Context(), cmd)
		},
	}
	p := &cfg.params
	cmd.Flags().StringVarP(&cfg.track, "track", "t", "",
		"name of the track")
	cmd.Flags().StringVar(&cfg.runEnv, "run-env", "",
		"read the track name (DR_WORLD_NAME) from this run.env")
	cmd.Flags().IntVar(&p.SkipAhead, "skip-ahead", p.SkipAhead,
		"distinct waypoints to skip before the look ahead window")
	cmd.Flags().IntVar(&p.LookAhead, "look-ahead", p.LookAhead,
		"additional distinct waypoints in the look ahead window")
	cmd.Flags().IntVar(&p.BinCount, "bin-count", p.BinCount,
		"bins of the importance histogram")
	cmd.Flags().IntVar(&p.DifficultyBins, "difficulty-bins", p.DifficultyBins,
		"bins of the throttle histogram")
	cmd.Flags().IntVar(&p.Aggregate, "aggregate", p.Aggregate,
		"steps of the mean progress window")
	cmd.Flags().IntVar(&p.RewardType, "reward-type", p.RewardType,
		"reward variant used by the reward function")
	cmd.Flags().IntVar(&p.Delay, "delay", p.Delay,
		"distinct waypoints to step back for the target heading")
	cmd.Flags().Float64Var(&p.Offset, "offset", p.Offset,
		"weight of the aggregate change for the target heading")
	cmd.Flags().Float64Var(&cfg.agentSpeedHigh, "agent-speed-high", p.Speed.High,
		"upper bound of the agent speed")
	cmd.Flags().Float64Var(&cfg.agentSpeedLow, "agent-speed-low", p.Speed.Low,
		"lower bound of the agent speed")
	cmd.Flags().Float64Var(&cfg.learningRate, "learning-rate", 0,
		"learning rate written to hyperparameters.json (0: keep)")
	cmd.Flags().StringVar(&cfg.modelMetadata, "model-metadata", "",
		"path to model_metadata.json")
	cmd.Flags().StringVar(&cfg.hyperparams, "hyperparameters", "",
		"path to hyperparameters.json")
	cmd.Flags().StringVarP(&cfg.output, "output", "o", "",
		"reward config file (.json, .yml); prints to stdout if empty")
	cmd.Flags().BoolVar(&cfg.sigmoids, "sigmoids", false,
		"include the default step reward and weighting sigmoids")
	cmd.Flags().BoolVar(&cfg.store, "store", false,
		"store the configuration in the database")
	return cmd
}

// resolveTrack returns the track name from --track or --run-env
func resolveTrack(c *cmdConfig) (string, error) {
	if c.track != "" {
		return c.track, nil
	}
	if c.runEnv != "" {
		return configfile.ReadWorldName(c.runEnv)
	}
	return "", fmt.Errorf("either --track or --run-env is required")
}

// prepareParams applies the training files to the calibration params.
// The action space of model_metadata.json wins over the speed flags unless
// the speed flags were given explicitly, in which case the file is updated.
func prepareParams(c *cmdConfig, speedChanged bool) (calibration.Params, error) {
	p := c.params
	p.Speed = model.Range{Low: c.agentSpeedLow, High: c.agentSpeedHigh}
	if c.sigmoids {
		step := calibration.DefaultStepReward
		weighting := calibration.DefaultWeighting
		p.StepReward = &step
		p.Weighting = &weighting
	}
	if c.modelMetadata != "" {
		if speedChanged {
			if err := configfile.UpdateAgentSpeed(c.modelMetadata, p.Speed); err != nil {
				return p, err
			}
			log.Info("agent speed updated",
				log.String("file", c.modelMetadata),
				log.Float64("low", p.Speed.Low),
				log.Float64("high", p.Speed.High))
		}
		as, err := configfile.ReadActionSpace(c.modelMetadata)
		if err != nil {
			return p, err
		}
		p.Speed = as.Speed
		p.Steering = as.SteeringAngle
	}
	if c.hyperparams != "" && c.learningRate > 0 {
		if err := configfile.UpdateLearningRate(c.hyperparams, c.learningRate); err != nil {
			return p, err
		}
		log.Info("learning rate updated",
			log.String("file", c.hyperparams),
			log.Float64("lr", c.learningRate))
	}
	if p.Speed.Span() <= 0 {
		return p, fmt.Errorf("invalid speed range %v..%v", p.Speed.Low, p.Speed.High)
	}
	return p, nil
}

func calibrate(ctx context.Context, cmd *cobra.Command) error {
	env, err := cmdutil.Setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	name, err := resolveTrack(&cfg)
	if err != nil {
		return err
	}
	speedChanged := cmd.Flags().Changed("agent-speed-high") ||
		cmd.Flags().Changed("agent-speed-low")
	p, err := prepareParams(&cfg, speedChanged)
	if err != nil {
		return err
	}
	track, err := env.TrackSource().Load(ctx, name)
	if err != nil {
		return err
	}
	c := calibration.NewCalibrator(
		calibration.WithLogger(env.Logger.Named("calibration")),
		calibration.WithWorkers(config.Workers),
	)
	rc, err := c.Calibrate(ctx, track, p)
	if err != nil {
		return err
	}

	if cfg.output != "" {
		if err := configfile.SaveRewardConfig(cfg.output, rc); err != nil {
			return err
		}
		log.Info("reward config written", log.String("file", cfg.output))
	} else {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "    ")
		if err := enc.Encode(rc); err != nil {
			return err
		}
	}

	if cfg.store {
		pool, err := env.OpenPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			stored, err := calibrationrepos.Create(ctx, tx, rc)
			if err != nil {
				return err
			}
			log.Info("calibration stored",
				log.String("id", stored.ID.String()),
				log.String("track", stored.Track))
			return nil
		})
	}
	return nil
}
