package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/configfile"
	calibrationrepos "github.com/mpapenbr/deepracer-toolkit-go/pkg/repository/calibration"
)

var configFile string

func newSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "stores a reward config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return save(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "reward_config.json",
		"reward config file (.json, .yml)")
	return cmd
}

func save(ctx context.Context) error {
	rc, err := configfile.LoadRewardConfig(configFile)
	if err != nil {
		return err
	}
	if trackName != "" {
		rc.Track = trackName
	}
	return withPool(ctx, func(pool *pgxpool.Pool) error {
		return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			stored, err := calibrationrepos.Create(ctx, tx, rc)
			if err != nil {
				return err
			}
			log.Info("calibration stored",
				log.String("id", stored.ID.String()),
				log.String("track", stored.Track),
				log.Time("created", stored.CreatedAt))
			return nil
		})
	})
}
