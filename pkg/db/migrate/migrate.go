package migrate

import (
	"embed"
	"errors"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// MigrateDB applies all pending migrations to the database at dbURI.
func MigrateDB(dbURI string) error {
	m, err := newMigrate(dbURI)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// DowngradeDB reverts all migrations
func DowngradeDB(dbURI string) error {
	m, err := newMigrate(dbURI)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Down()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Version returns the current schema version
func Version(dbURI string) (version uint, dirty bool, err error) {
	m, err := newMigrate(dbURI)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func newMigrate(dbURI string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", source, pgxURL(dbURI))
}

func pgxURL(dbURI string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dbURI, prefix) {
			return "pgx5://" + strings.TrimPrefix(dbURI, prefix)
		}
	}
	return dbURI
}
