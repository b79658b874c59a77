// Package seed loads the belt and gearmotor catalog into the database.
package seed

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// BeltRow is one belt row. Missing minimum diameters are stored as NULL.
type BeltRow struct {
	Key             string   `yaml:"key"`
	Name            string   `yaml:"name"`
	Material        string   `yaml:"material"`
	PIW             float64  `yaml:"piw"`
	PIL             float64  `yaml:"pil"`
	MinNoVGuideIn   *float64 `yaml:"min_pulley_dia_no_vguide_in"`
	MinWithVGuideIn *float64 `yaml:"min_pulley_dia_with_vguide_in"`
}

// GearmotorRow is one gearmotor performance point row.
type GearmotorRow struct {
	Key             string  `yaml:"key"`
	Vendor          string  `yaml:"vendor"`
	Series          string  `yaml:"series"`
	Model           string  `yaml:"model"`
	MotorHP         float64 `yaml:"motor_hp"`
	OutputRPM       float64 `yaml:"output_rpm"`
	RatedTorqueInLb float64 `yaml:"rated_torque_in_lb"`
	ServiceFactor   float64 `yaml:"service_factor"`
	GearRatio       float64 `yaml:"gear_ratio"`
}

// Catalog is the seed content.
type Catalog struct {
	Belts      []BeltRow      `yaml:"belts"`
	Gearmotors []GearmotorRow `yaml:"gearmotors"`
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// DefaultCatalog returns the catalog bundled with the binary.
func DefaultCatalog() (Catalog, error) {
	return parseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog YAML file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog yaml: %w", err)
	}
	for _, b := range c.Belts {
		if b.Key == "" || !(b.PIW > 0) {
			return Catalog{}, fmt.Errorf("belt %q: key and positive piw are required", b.Key)
		}
	}
	for _, g := range c.Gearmotors {
		if g.Key == "" || !(g.OutputRPM > 0) || !(g.RatedTorqueInLb > 0) || !(g.ServiceFactor > 0) {
			return Catalog{}, fmt.Errorf("gearmotor %q: key, output rpm, torque and service factor are required", g.Key)
		}
	}
	return c, nil
}

// Run writes cat in an idempotent way: missing rows are inserted, rows whose
// values changed are updated, and identical rows are left alone.
func Run(db *sql.DB, cat Catalog) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, b := range cat.Belts {
		if err := ensureBelt(tx, b, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for _, g := range cat.Gearmotors {
		if err := ensureGearmotor(tx, g, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureBelt(tx *sql.Tx, b BeltRow, stats *Stats) error {
	var (
		name, material string
		piw, pil       float64
		noVG, withVG   sql.NullFloat64
	)
	err := tx.QueryRow(`
		SELECT name, material, piw, pil, min_pulley_dia_no_vguide_in, min_pulley_dia_with_vguide_in
		FROM belts
		WHERE key = ?
	`, b.Key).Scan(&name, &material, &piw, &pil, &noVG, &withVG)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`
			INSERT INTO belts (key, name, material, piw, pil, min_pulley_dia_no_vguide_in, min_pulley_dia_with_vguide_in)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, b.Key, b.Name, b.Material, b.PIW, b.PIL, nullable(b.MinNoVGuideIn), nullable(b.MinWithVGuideIn)); err != nil {
			return fmt.Errorf("insert belt %q: %w", b.Key, err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check belt %q: %w", b.Key, err)
	}

	if name == b.Name && material == b.Material && piw == b.PIW && pil == b.PIL &&
		sameNullable(noVG, b.MinNoVGuideIn) && sameNullable(withVG, b.MinWithVGuideIn) {
		return nil
	}

	if _, err := tx.Exec(`
		UPDATE belts
		SET name = ?, material = ?, piw = ?, pil = ?, min_pulley_dia_no_vguide_in = ?, min_pulley_dia_with_vguide_in = ?
		WHERE key = ?
	`, b.Name, b.Material, b.PIW, b.PIL, nullable(b.MinNoVGuideIn), nullable(b.MinWithVGuideIn), b.Key); err != nil {
		return fmt.Errorf("update belt %q: %w", b.Key, err)
	}
	stats.Updates++
	return nil
}

func ensureGearmotor(tx *sql.Tx, g GearmotorRow, stats *Stats) error {
	var cur GearmotorRow
	err := tx.QueryRow(`
		SELECT key, vendor, series, model, motor_hp, output_rpm, rated_torque_in_lb, service_factor, gear_ratio
		FROM gearmotor_performance_points
		WHERE key = ?
	`, g.Key).Scan(&cur.Key, &cur.Vendor, &cur.Series, &cur.Model, &cur.MotorHP, &cur.OutputRPM, &cur.RatedTorqueInLb, &cur.ServiceFactor, &cur.GearRatio)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`
			INSERT INTO gearmotor_performance_points
				(key, vendor, series, model, motor_hp, output_rpm, rated_torque_in_lb, service_factor, gear_ratio)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, g.Key, g.Vendor, g.Series, g.Model, g.MotorHP, g.OutputRPM, g.RatedTorqueInLb, g.ServiceFactor, g.GearRatio); err != nil {
			return fmt.Errorf("insert gearmotor %q: %w", g.Key, err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check gearmotor %q: %w", g.Key, err)
	}

	if cur == g {
		return nil
	}

	if _, err := tx.Exec(`
		UPDATE gearmotor_performance_points
		SET vendor = ?, series = ?, model = ?, motor_hp = ?, output_rpm = ?, rated_torque_in_lb = ?, service_factor = ?, gear_ratio = ?
		WHERE key = ?
	`, g.Vendor, g.Series, g.Model, g.MotorHP, g.OutputRPM, g.RatedTorqueInLb, g.ServiceFactor, g.GearRatio, g.Key); err != nil {
		return fmt.Errorf("update gearmotor %q: %w", g.Key, err)
	}
	stats.Updates++
	return nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil || math.IsNaN(*v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func sameNullable(stored sql.NullFloat64, want *float64) bool {
	w := nullable(want)
	return stored.Valid == w.Valid && (!w.Valid || stored.Float64 == w.Float64)
}
