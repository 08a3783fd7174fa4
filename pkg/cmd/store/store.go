package store

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/cmdutil"
)

var (
	trackName string
	id        string
)

func NewStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "manages calibrations in the database",
	}
	cmd.PersistentFlags().StringVarP(&trackName, "track", "t", "", "name of the track")
	cmd.PersistentFlags().StringVar(&id, "id", "", "id of a stored calibration")
	cmd.AddCommand(newSaveCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newDeleteCmd())
	return cmd
}

// withPool runs f with a database pool created from the config
func withPool(ctx context.Context, f func(pool *pgxpool.Pool) error) error {
	env, err := cmdutil.Setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()
	pool, err := env.OpenPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	return f(pool)
}

// parseSelection validates the --id/--track combination.
// A zero id means select by track.
func parseSelection(idArg, track string) (uuid.UUID, error) {
	switch {
	case idArg != "" && track != "":
		return uuid.Nil, fmt.Errorf("--id and --track are mutually exclusive")
	case idArg != "":
		ret, err := uuid.FromString(idArg)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid id %q: %w", idArg, err)
		}
		return ret, nil
	case track != "":
		return uuid.Nil, nil
	default:
		return uuid.Nil, fmt.Errorf("either --id or --track is required")
	}
}
