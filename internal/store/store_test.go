package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/conveyor/internal/calc"
	"github.com/Simplici0/conveyor/internal/db"
	"github.com/Simplici0/conveyor/internal/migrations"
	"github.com/Simplici0/conveyor/internal/record"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "store-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, migrations.Up(database, "../../migrations"))
	return New(database)
}

func sampleConfiguration(t *testing.T, title string) Configuration {
	t.Helper()

	rec := record.Record{
		record.KeyConveyorLength: 120.0,
		record.KeyBeltWidth:      18.0,
		record.KeyBeltSpeed:      65.45,
		record.KeyMotorRPM:       1750.0,
	}
	res, err := calc.Run(rec, nil, calc.ProductBeltConveyor)
	require.NoError(t, err)

	return Configuration{
		Title:         title,
		ProductKey:    calc.ProductBeltConveyor,
		SchemaVersion: record.CurrentSchemaVersion,
		Inputs:        res.NormalizedInputs,
		Result:        res,
	}
}

func TestSaveAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	saved, err := s.Save(ctx, sampleConfiguration(t, "Packing line 3"))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.NotEmpty(t, saved.CreatedAt)

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Packing line 3", got.Title)
	assert.Equal(t, 120.0, got.Inputs[record.KeyConveyorLength])
	assert.Equal(t, saved.Result.Success, got.Result.Success)
	assert.Equal(t, saved.Result.Outputs.BeltWeightLb.Valid(), got.Result.Outputs.BeltWeightLb.Valid())
	assert.InDelta(t, saved.Result.Outputs.DriveShaftRPM.Float(), got.Result.Outputs.DriveShaftRPM.Float(), 1e-9)
}

func TestSaveOverwritesExisting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	saved, err := s.Save(ctx, sampleConfiguration(t, "Draft"))
	require.NoError(t, err)

	saved.Title = "Final"
	updated, err := s.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "Final", updated.Title)

	list, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetUnknownIsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Get(ctx, "2f1c3c52-6a0e-4a8c-9c36-0b1d3c1b7a11")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Get(ctx, "not-a-uuid")
	assert.True(t, errors.Is(err, ErrNotFound))

	missing := sampleConfiguration(t, "ghost")
	missing.ID = "2f1c3c52-6a0e-4a8c-9c36-0b1d3c1b7a11"
	_, err = s.Save(ctx, missing)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListFiltersByQuery(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newStore(t)

	for _, title := range []string{"Packing line 3", "Inspection incline", "Packing line 4"} {
		_, err := s.Save(ctx, sampleConfiguration(t, title))
		require.NoError(t, err)
	}

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Packing line 4", all[0].Title)

	packing, err := s.List(ctx, "Packing")
	require.NoError(t, err)
	assert.Len(t, packing, 2)
}
