package migrations

import (
	"path/filepath"
	"testing"

	"github.com/Simplici0/conveyor/internal/db"
)

const dir = "../../migrations"

func TestUpIsIdempotentAndDownRollsBack(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "migrate-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	for i := 0; i < 2; i++ {
		if err := Up(database, dir); err != nil {
			t.Fatalf("up (run=%d): %v", i, err)
		}
	}

	v, err := Version(database)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != 2 {
		t.Fatalf("expected schema version 2, got %d", v)
	}

	if err := Down(database, dir); err != nil {
		t.Fatalf("down: %v", err)
	}
	if v, _ := Version(database); v != 1 {
		t.Fatalf("expected schema version 1 after rollback, got %d", v)
	}

	var n int
	err = database.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'configurations'`).Scan(&n)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected configurations table dropped")
	}
}
