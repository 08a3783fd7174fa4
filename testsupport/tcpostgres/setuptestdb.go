//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/db/migrate"
	database "github.com/mpapenbr/deepracer-toolkit-go/pkg/db/postgres"
)

// create a pg connection pool for the toolkit testdatabase
func SetupTestDB() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("deepracer-toolkit-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	dbURL, err := container.ConnectionString(ctx, port)
	if err != nil {
		log.Fatal(err)
	}
	return setupWithURL(ctx, dbURL)
}

// uses the database given by TESTDB_URL
func SetupExternalTestDB() *pgxpool.Pool {
	return setupWithURL(context.Background(), os.Getenv("TESTDB_URL"))
}

func setupWithURL(ctx context.Context, dbURL string) *pgxpool.Pool {
	if err := migrate.MigrateDB(dbURL); err != nil {
		log.Fatal(err)
	}
	pool, err := database.InitWithURL(ctx, dbURL)
	if err != nil {
		log.Fatal(err)
	}
	return pool
}

func ClearCalibrationTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from calibration")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearCalibrationTable(pool)
}
