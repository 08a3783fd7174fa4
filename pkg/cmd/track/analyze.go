package track

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/calibration"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/cmdutil"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

var showAll bool

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "prints the direction change limits of a track line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyze(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&line, "line", "inner",
		"waypoint line to analyze (center, inner, outer)")
	cmd.Flags().BoolVar(&showAll, "all", false,
		"print the direction change of every waypoint")
	return cmd
}

func selectLine(t *model.Track, name string) ([]geometry.Point, error) {
	switch name {
	case "center":
		return t.Center, nil
	case "inner":
		if t.HasBorders() {
			return t.Inner, nil
		}
	case "outer":
		if t.HasBorders() {
			return t.Outer, nil
		}
	default:
		return nil, fmt.Errorf("unknown line %q", name)
	}
	return nil, fmt.Errorf("track %s has no %s border", t.Name, name)
}

func analyze(ctx context.Context) error {
	if trackName == "" {
		return fmt.Errorf("--track is required")
	}
	env, err := cmdutil.Setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	t, err := env.TrackSource().Load(ctx, trackName)
	if err != nil {
		return err
	}
	wps, err := selectLine(t, line)
	if err != nil {
		return err
	}
	b, err := calibration.ChangeLimits(wps)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if showAll {
		fmt.Fprintln(w, "idx\tx\ty\tdirection\tchange")
		for i, p := range wps {
			fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.2f\t%.4f\n", i, p.X, p.Y,
				deg(geometry.Direction(i, wps)), geometry.DirectionChange(i, wps))
		}
	}
	fmt.Fprintf(w, "track\t%s\n", t.Name)
	fmt.Fprintf(w, "line\t%s\n", line)
	fmt.Fprintf(w, "waypoints\t%d\n", len(wps))
	fmt.Fprintf(w, "min change\t%.6f\n", b.Min)
	fmt.Fprintf(w, "max change\t%.6f\n", b.Max)
	return w.Flush()
}

func deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
