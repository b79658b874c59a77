// Package store persists configuration records and their last calculation
// result.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Simplici0/conveyor/internal/calc"
	"github.com/Simplici0/conveyor/internal/record"
)

// ErrNotFound is returned when no configuration has the requested id.
var ErrNotFound = errors.New("store: configuration not found")

// Configuration is a saved configuration record with the result it produced.
type Configuration struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	ProductKey    string        `json:"product_key"`
	SchemaVersion string        `json:"schema_version"`
	Inputs        record.Record `json:"inputs"`
	Result        calc.Result   `json:"result"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}

// Summary is a configuration list entry.
type Summary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ProductKey string `json:"product_key"`
	Success    bool   `json:"success"`
	CreatedAt  string `json:"created_at"`
}

// Store is the SQLite configuration repository.
type Store struct {
	db *sql.DB
}

// New returns a Store over db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save inserts c when it has no id and otherwise overwrites the stored
// record with that id. It returns the configuration as stored.
func (s *Store) Save(ctx context.Context, c Configuration) (Configuration, error) {
	inputsJSON, err := json.Marshal(c.Inputs)
	if err != nil {
		return Configuration{}, fmt.Errorf("encode configuration inputs: %w", err)
	}
	resultJSON, err := json.Marshal(c.Result)
	if err != nil {
		return Configuration{}, fmt.Errorf("encode configuration result: %w", err)
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO configurations (id, title, product_key, schema_version, inputs_json, result_json, success)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.Title, c.ProductKey, c.SchemaVersion, string(inputsJSON), string(resultJSON), c.Result.Success); err != nil {
			return Configuration{}, fmt.Errorf("insert configuration: %w", err)
		}
		return s.Get(ctx, c.ID)
	}

	if _, err := uuid.Parse(c.ID); err != nil {
		return Configuration{}, fmt.Errorf("configuration %q: %w", c.ID, ErrNotFound)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE configurations
		SET title = ?, product_key = ?, schema_version = ?, inputs_json = ?, result_json = ?, success = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, c.Title, c.ProductKey, c.SchemaVersion, string(inputsJSON), string(resultJSON), c.Result.Success, c.ID)
	if err != nil {
		return Configuration{}, fmt.Errorf("update configuration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Configuration{}, fmt.Errorf("update configuration rows affected: %w", err)
	}
	if affected == 0 {
		return Configuration{}, fmt.Errorf("configuration %q: %w", c.ID, ErrNotFound)
	}
	return s.Get(ctx, c.ID)
}

// Get loads one configuration.
func (s *Store) Get(ctx context.Context, id string) (Configuration, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Configuration{}, fmt.Errorf("configuration %q: %w", id, ErrNotFound)
	}

	var (
		c                      Configuration
		inputsJSON, resultJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, product_key, schema_version, inputs_json, result_json, created_at, updated_at
		FROM configurations
		WHERE id = ?
	`, id).Scan(&c.ID, &c.Title, &c.ProductKey, &c.SchemaVersion, &inputsJSON, &resultJSON, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Configuration{}, fmt.Errorf("configuration %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Configuration{}, fmt.Errorf("query configuration: %w", err)
	}

	inputs, err := record.Parse([]byte(inputsJSON))
	if err != nil {
		return Configuration{}, fmt.Errorf("decode configuration inputs: %w", err)
	}
	c.Inputs = inputs
	if err := json.Unmarshal([]byte(resultJSON), &c.Result); err != nil {
		return Configuration{}, fmt.Errorf("decode configuration result: %w", err)
	}
	return c, nil
}

// List returns configurations newest first, optionally filtered by a
// substring of the title or product key.
func (s *Store) List(ctx context.Context, query string) ([]Summary, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, product_key, success, created_at
		FROM configurations
		WHERE (? = '' OR title LIKE ? OR product_key LIKE ?)
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query configurations: %w", err)
	}
	defer rows.Close()

	items := make([]Summary, 0)
	for rows.Next() {
		var item Summary
		if err := rows.Scan(&item.ID, &item.Title, &item.ProductKey, &item.Success, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan configuration: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate configurations: %w", err)
	}
	return items, nil
}
