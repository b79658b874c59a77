package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/conveyor/internal/calc"
	"github.com/Simplici0/conveyor/internal/gearmotor"
)

// SQLite reads the catalog tables created by the migrations and filled by
// the seed.
type SQLite struct {
	db *sql.DB
}

// NewSQLite returns a catalog backed by db.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// PerformancePoints implements Client.
func (s *SQLite) PerformancePoints(ctx context.Context, f Filter) ([]gearmotor.PerformancePoint, error) {
	query := `
		SELECT key, vendor, series, model, motor_hp, output_rpm, rated_torque_in_lb, service_factor, gear_ratio
		FROM gearmotor_performance_points
		WHERE active = 1`
	args := make([]any, 0, 4)

	if f.MinOutputRPM > 0 {
		query += ` AND output_rpm >= ?`
		args = append(args, f.MinOutputRPM)
	}
	if f.MaxOutputRPM > 0 {
		query += ` AND output_rpm <= ?`
		args = append(args, f.MaxOutputRPM)
	}
	if f.MinTorqueInLb > 0 {
		query += ` AND rated_torque_in_lb >= ?`
		args = append(args, f.MinTorqueInLb)
	}
	if vendor := strings.TrimSpace(f.Vendor); vendor != "" {
		query += ` AND vendor = ? COLLATE NOCASE`
		args = append(args, vendor)
	}
	query += ` ORDER BY key`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query performance points: %w", err)
	}
	defer rows.Close()

	points := make([]gearmotor.PerformancePoint, 0)
	for rows.Next() {
		var p gearmotor.PerformancePoint
		if err := rows.Scan(&p.Key, &p.Vendor, &p.Series, &p.Model, &p.MotorHP, &p.OutputRPM, &p.RatedTorqueInLb, &p.ServiceFactor, &p.GearRatio); err != nil {
			return nil, fmt.Errorf("scan performance point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate performance points: %w", err)
	}
	return points, nil
}

// Belt implements Client.
func (s *SQLite) Belt(ctx context.Context, key string) (Belt, error) {
	var (
		b          Belt
		noVGuide   sql.NullFloat64
		withVGuide sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT key, name, material, piw, pil, min_pulley_dia_no_vguide_in, min_pulley_dia_with_vguide_in
		FROM belts
		WHERE key = ? AND active = 1
	`, key).Scan(&b.Key, &b.Name, &b.Material, &b.PIW, &b.PIL, &noVGuide, &withVGuide)
	if errors.Is(err, sql.ErrNoRows) {
		return Belt{}, fmt.Errorf("belt %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return Belt{}, fmt.Errorf("query belt %q: %w", key, err)
	}

	b.MinPulley = MinPulleyDiameter{NoVGuideIn: nullFloat(noVGuide), WithVGuideIn: nullFloat(withVGuide)}
	return b, nil
}

// BeltMinimumPulleyDiameter implements Client.
func (s *SQLite) BeltMinimumPulleyDiameter(ctx context.Context, key string) (MinPulleyDiameter, error) {
	b, err := s.Belt(ctx, key)
	if err != nil {
		return MinPulleyDiameter{}, err
	}
	return b.MinPulley, nil
}

func nullFloat(v sql.NullFloat64) calc.Quantity {
	if !v.Valid {
		return calc.NaN()
	}
	return calc.Quantity(v.Float64)
}
