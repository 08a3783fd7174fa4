package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/configfile"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
	calibrationrepos "github.com/mpapenbr/deepracer-toolkit-go/pkg/repository/calibration"
)

var (
	listAll bool
	output  string
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "shows stored calibrations",
		Long: `Shows the calibration with --id or the latest one of --track.
With --all every calibration of --track is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&listAll, "all", false, "list all calibrations of the track")
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"write the selected reward config to this file")
	return cmd
}

func show(ctx context.Context) error {
	sel, err := parseSelection(id, trackName)
	if err != nil {
		return err
	}
	return withPool(ctx, func(pool *pgxpool.Pool) error {
		if listAll {
			if trackName == "" {
				return fmt.Errorf("--all requires --track")
			}
			items, err := calibrationrepos.LoadAllByTrack(ctx, pool, trackName)
			if err != nil {
				return err
			}
			return printList(os.Stdout, items)
		}
		var item *model.DBCalibration
		if sel.IsNil() {
			item, err = calibrationrepos.LoadLatestByTrack(ctx, pool, trackName)
		} else {
			item, err = calibrationrepos.LoadByID(ctx, pool, sel)
		}
		if err != nil {
			return err
		}
		if err := printList(os.Stdout, []*model.DBCalibration{item}); err != nil {
			return err
		}
		if output != "" {
			return configfile.SaveRewardConfig(output, &item.Data)
		}
		return nil
	})
}

func printList(out io.Writer, items []*model.DBCalibration) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\ttrack\tcreated\twaypoints\tskip\tlook\tmin\tmax")
	for _, item := range items {
		d := item.Data.Difficulty
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.4f\t%.4f\n",
			item.ID, item.Track, item.CreatedAt.Format(time.RFC3339),
			item.Data.WaypointCount, d.SkipAhead, d.LookAhead, d.Min, d.Max)
	}
	return w.Flush()
}
