package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/cmd/cmdutil"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/config"
	dbmigrate "github.com/mpapenbr/deepracer-toolkit-go/pkg/db/migrate"
)

var (
	down       bool
	disableSSL bool
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "revert all migrations")
	cmd.Flags().BoolVar(&disableSSL, "disable-ssl", true,
		"append sslmode=disable to the connection string")
	return cmd
}

func startMigration(ctx context.Context) error {
	env, err := cmdutil.Setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := cmdutil.WaitForDB(ctx); err != nil {
		return err
	}
	dbURL := config.DB
	if disableSSL {
		dbURL = prepareURLForDB(dbURL)
	}
	if down {
		log.Info("Reverting all migrations")
		return dbmigrate.DowngradeDB(dbURL)
	}
	if err := dbmigrate.MigrateDB(dbURL); err != nil {
		return err
	}
	version, dirty, err := dbmigrate.Version(dbURL)
	if err != nil {
		return err
	}
	log.Info("Database migrated", log.Uint("version", version), log.Bool("dirty", dirty))
	return nil
}

func prepareURLForDB(url string) string {
	options := "sslmode=disable"
	if strings.Contains(url, "sslmode=") {
		return url
	}
	if strings.Contains(url, "?") {
		return fmt.Sprintf("%s&%s", url, options)
	} else {
		return fmt.Sprintf("%s?%s", url, options)
	}
}
