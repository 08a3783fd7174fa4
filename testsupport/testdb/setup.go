package testdb

import (
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	tcpg "github.com/mpapenbr/deepracer-toolkit-go/testsupport/tcpostgres"
)

// InitTestDB returns a migrated and empty test database.
// TESTDB_URL selects an external database instead of a test container.
func InitTestDB() *pgxpool.Pool {
	var pool *pgxpool.Pool
	if os.Getenv("TESTDB_URL") != "" {
		pool = tcpg.SetupExternalTestDB()
	} else {
		pool = tcpg.SetupTestDB()
	}
	tcpg.ClearAllTables(pool)
	return pool
}
