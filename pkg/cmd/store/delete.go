package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	calibrationrepos "github.com/mpapenbr/deepracer-toolkit-go/pkg/repository/calibration"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "deletes the calibration with --id or all calibrations of --track",
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteCalibrations(cmd.Context())
		},
	}
	return cmd
}

func deleteCalibrations(ctx context.Context) error {
	sel, err := parseSelection(id, trackName)
	if err != nil {
		return err
	}
	return withPool(ctx, func(pool *pgxpool.Pool) error {
		var n int
		if sel.IsNil() {
			n, err = calibrationrepos.DeleteByTrack(ctx, pool, trackName)
		} else {
			n, err = calibrationrepos.DeleteByID(ctx, pool, sel)
		}
		if err != nil {
			return err
		}
		log.Info("calibrations deleted", log.Int("count", n))
		return nil
	})
}
