package verify

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/calibration"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/cmdutil"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/configfile"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/render"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/trackdata"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/utils/cache"
)

var (
	configFile  string
	trackName   string
	renderFile  string
	watch       bool
	quiet       bool
	renderWidth int
)

func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "evaluates a reward configuration on every waypoint of its track",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startVerify(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "reward_config.json",
		"reward config file (.json, .yml)")
	cmd.Flags().StringVarP(&trackName, "track", "t", "",
		"track to verify against (default: track of the config)")
	cmd.Flags().StringVar(&renderFile, "render", "",
		"write a difficulty and throttle image to this png file")
	cmd.Flags().IntVar(&renderWidth, "render-width", render.DefaultOptions().Width,
		"width of a single image panel")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"verify again whenever the config file changes")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"do not print the waypoint table")
	return cmd
}

type verifier struct {
	tracks          cache.Cache[string, model.Track]
	out             io.Writer
	log             *log.Logger
	lastFingerprint string
}

func startVerify(ctx context.Context) error {
	env, err := cmdutil.Setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	v := &verifier{
		tracks: trackdata.NewCache(env.TrackSource(), time.Hour),
		out:    os.Stdout,
		log:    env.Logger.Named("verify"),
	}
	if quiet {
		v.out = io.Discard
	}
	if !watch {
		return v.run(ctx)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if err := v.run(ctx); err != nil {
		v.log.Error("verification failed", log.ErrorField(err))
	}
	return v.watch(ctx, configFile)
}

// run verifies the current content of the config file once
func (v *verifier) run(ctx context.Context) error {
	rc, err := configfile.LoadRewardConfig(configFile)
	if err != nil {
		return err
	}
	name := rc.Track
	if trackName != "" {
		name = trackName
	}
	if name == "" {
		return fmt.Errorf("no track in %s, use --track", configFile)
	}
	track, err := v.tracks.Get(ctx, name)
	if err != nil {
		return err
	}
	rows, err := calibration.Verify(track, rc)
	if err != nil {
		return err
	}
	if err := printRows(v.out, rows); err != nil {
		return err
	}
	s := summarize(rows)
	v.log.Info("verified",
		log.String("config", configFile),
		log.String("track", track.Name),
		log.Int("waypoints", len(rows)),
		log.Float64("maxDifficulty", s.maxDifficulty),
		log.Float64("meanThrottle", s.meanThrottle))

	if renderFile != "" {
		opts := render.DefaultOptions()
		opts.Width = renderWidth
		opts.Height = renderWidth
		img, err := render.Render(track, rows, opts)
		if err != nil {
			return err
		}
		if err := render.SavePNG(renderFile, img); err != nil {
			return err
		}
		v.log.Info("image written", log.String("file", renderFile))
	}
	return nil
}
