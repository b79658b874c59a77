// Package db opens the SQLite database that holds the catalog and saved
// configurations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Open opens a SQLite database with the default pragmas and checks the
// connection.
func Open(dbPath string) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return OpenContext(ctx, dbPath)
}

// OpenContext is Open bounded by ctx. An in-memory database is pinned to a
// single connection so every query sees the same schema.
func OpenContext(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	inMemory := isMemory(dbPath)
	if inMemory {
		db.SetMaxOpenConns(1)
	}

	for _, pragma := range pragmas(inMemory) {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set sqlite pragma %q: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return db, nil
}

func pragmas(inMemory bool) []string {
	out := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	// WAL is not available for in-memory databases.
	if !inMemory {
		out = append(out, "PRAGMA journal_mode = WAL")
	}
	return out
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}
