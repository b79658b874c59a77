package main

import (
	"path/filepath"
	"testing"

	"github.com/Simplici0/conveyor/internal/db"
)

func TestRunCommands(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "migrate-cmd-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	const dir = "../../migrations"
	steps := []struct {
		command string
		want    int64
	}{
		{"up", 2},
		{"version", 2},
		{"down", 1},
		{"up", 2},
	}
	for _, s := range steps {
		got, err := run(database, dir, s.command)
		if err != nil {
			t.Fatalf("%s: %v", s.command, err)
		}
		if got != s.want {
			t.Fatalf("%s: expected version %d, got %d", s.command, s.want, got)
		}
	}

	if _, err := run(database, dir, "sideways"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}
