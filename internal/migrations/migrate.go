// Package migrations applies the goose SQL migrations for the catalog and
// configuration tables.
package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/Simplici0/conveyor/internal/logger"
)

const sqliteDialect = "sqlite3"

func prepare() error {
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Up runs all pending SQL migrations found in migrationsDir and logs the
// resulting schema version.
func Up(db *sql.DB, migrationsDir string) error {
	if err := prepare(); err != nil {
		return err
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	version, err := Version(db)
	if err != nil {
		return err
	}
	logger.Named("migrations").Info().Int64("version", version).Str("dir", migrationsDir).Msg("schema up to date")
	return nil
}

// Down rolls back the most recent migration.
func Down(db *sql.DB, migrationsDir string) error {
	if err := prepare(); err != nil {
		return err
	}
	if err := goose.Down(db, migrationsDir); err != nil {
		return fmt.Errorf("run goose down migration: %w", err)
	}
	return nil
}

// Version reports the current schema version, 0 for an empty database.
func Version(db *sql.DB) (int64, error) {
	if err := prepare(); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// gooseLogger routes goose output through zerolog at debug level.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	logger.Named("migrations").Debug().Msgf(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logger.Named("migrations").Fatal().Msgf(format, v...)
}
