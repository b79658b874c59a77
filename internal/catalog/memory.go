package catalog

import (
	"context"
	"fmt"

	"github.com/Simplici0/conveyor/internal/gearmotor"
)

// Memory is an in-process catalog, used in tests and when no database is
// configured.
type Memory struct {
	belts  map[string]Belt
	points []gearmotor.PerformancePoint
}

// NewMemory builds a catalog from fixed data.
func NewMemory(belts []Belt, points []gearmotor.PerformancePoint) *Memory {
	m := &Memory{belts: make(map[string]Belt, len(belts))}
	for _, b := range belts {
		m.belts[b.Key] = b
	}
	m.points = append(m.points, points...)
	sortPoints(m.points)
	return m
}

// PerformancePoints implements Client.
func (m *Memory) PerformancePoints(_ context.Context, f Filter) ([]gearmotor.PerformancePoint, error) {
	out := make([]gearmotor.PerformancePoint, 0, len(m.points))
	for _, p := range m.points {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Belt implements Client.
func (m *Memory) Belt(_ context.Context, key string) (Belt, error) {
	b, ok := m.belts[key]
	if !ok {
		return Belt{}, fmt.Errorf("belt %q: %w", key, ErrNotFound)
	}
	return b, nil
}

// BeltMinimumPulleyDiameter implements Client.
func (m *Memory) BeltMinimumPulleyDiameter(ctx context.Context, key string) (MinPulleyDiameter, error) {
	b, err := m.Belt(ctx, key)
	if err != nil {
		return MinPulleyDiameter{}, err
	}
	return b.MinPulley, nil
}
