// Command migrate applies or rolls back the database schema outside the
// server process.
//
//	migrate up       apply pending migrations
//	migrate down     roll back the latest migration
//	migrate version  print the current schema version
package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/Simplici0/conveyor/internal/config"
	"github.com/Simplici0/conveyor/internal/db"
	"github.com/Simplici0/conveyor/internal/logger"
	"github.com/Simplici0/conveyor/internal/migrations"
)

const usage = "usage: migrate up|down|version"

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log)
	log := logger.Named("migrate")

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	version, err := run(database, cfg.MigrationsDir, os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("migration failed")
	}
	log.Info().Str("command", os.Args[1]).Int64("version", version).Str("db", cfg.DBPath).Msg("done")
}

func run(database *sql.DB, dir, command string) (int64, error) {
	switch command {
	case "up":
		if err := migrations.Up(database, dir); err != nil {
			return 0, err
		}
	case "down":
		if err := migrations.Down(database, dir); err != nil {
			return 0, err
		}
	case "version":
	default:
		return 0, fmt.Errorf("unknown command %q: %s", command, usage)
	}
	return migrations.Version(database)
}
