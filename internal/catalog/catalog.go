// Package catalog is read-only access to belt and gearmotor catalog data.
package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/Simplici0/conveyor/internal/calc"
	"github.com/Simplici0/conveyor/internal/gearmotor"
)

// ErrNotFound is returned when a catalog key does not exist.
var ErrNotFound = errors.New("catalog: not found")

// MinPulleyDiameter is a belt's smallest allowed pulley per tracking method.
// NaN means the catalog has no limit on record.
type MinPulleyDiameter struct {
	NoVGuideIn   calc.Quantity `json:"no_vguide_in"`
	WithVGuideIn calc.Quantity `json:"with_vguide_in"`
}

// Belt is one catalog belt.
type Belt struct {
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Material  string            `json:"material"`
	PIW       float64           `json:"piw"`
	PIL       float64           `json:"pil"`
	MinPulley MinPulleyDiameter `json:"min_pulley"`
}

// Filter narrows a performance point lookup. Zero fields do not filter.
type Filter struct {
	MinOutputRPM  float64
	MaxOutputRPM  float64
	MinTorqueInLb float64
	Vendor        string
}

func (f Filter) match(p gearmotor.PerformancePoint) bool {
	if f.MinOutputRPM > 0 && p.OutputRPM < f.MinOutputRPM {
		return false
	}
	if f.MaxOutputRPM > 0 && p.OutputRPM > f.MaxOutputRPM {
		return false
	}
	if f.MinTorqueInLb > 0 && p.RatedTorqueInLb < f.MinTorqueInLb {
		return false
	}
	if f.Vendor != "" && !strings.EqualFold(p.Vendor, f.Vendor) {
		return false
	}
	return true
}

// Client looks up catalog data. Implementations are safe for concurrent use
// and never modify what they return to another caller.
type Client interface {
	PerformancePoints(ctx context.Context, f Filter) ([]gearmotor.PerformancePoint, error)
	Belt(ctx context.Context, key string) (Belt, error)
	BeltMinimumPulleyDiameter(ctx context.Context, key string) (MinPulleyDiameter, error)
}

func sortPoints(points []gearmotor.PerformancePoint) {
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })
}
