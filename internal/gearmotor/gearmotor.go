// Package gearmotor ranks catalog gearmotor performance points against the
// speed and torque a conveyor design requires.
package gearmotor

import (
	"math"
	"sort"

	"github.com/Simplici0/conveyor/internal/calc"
)

// DefaultTargetServiceFactor applies when a requirement names none.
const DefaultTargetServiceFactor = 1.5

// PerformancePoint is one catalog rating of a gearmotor model at a fixed
// output speed.
type PerformancePoint struct {
	Key             string  `json:"key"`
	Vendor          string  `json:"vendor"`
	Series          string  `json:"series"`
	Model           string  `json:"model"`
	MotorHP         float64 `json:"motor_hp"`
	OutputRPM       float64 `json:"output_rpm"`
	RatedTorqueInLb float64 `json:"rated_torque_in_lb"`
	ServiceFactor   float64 `json:"service_factor"`
	GearRatio       float64 `json:"gear_ratio"`
}

// Requirement is what the drive must deliver at the gearmotor output shaft.
// DriveDiaIn and ChainRatio are optional; when both are set each candidate
// reports the belt speed it would actually produce.
type Requirement struct {
	OutputRPM           float64 `json:"output_rpm" validate:"gt=0"`
	TorqueInLb          float64 `json:"torque_in_lb" validate:"gte=0"`
	TargetServiceFactor float64 `json:"target_service_factor" validate:"omitempty,gte=1"`
	MaxSpeedDeltaPct    float64 `json:"max_speed_delta_pct" validate:"omitempty,gt=0"`
	Limit               int     `json:"limit" validate:"gte=0"`
	DriveDiaIn          float64 `json:"drive_pulley_diameter_in"`
	ChainRatio          float64 `json:"chain_ratio"`
}

// Candidate is a feasible performance point with its ranking measures.
type Candidate struct {
	PerformancePoint
	AdjustedCapacity   float64       `json:"adjusted_capacity"`
	OversizeRatio      float64       `json:"oversize_ratio"`
	SpeedDelta         float64       `json:"speed_delta"`
	SpeedDeltaPct      float64       `json:"speed_delta_pct"`
	ActualBeltSpeedFPM calc.Quantity `json:"actual_belt_speed_fpm"`
}

// FromOutputs builds the requirement a calculated design places on its
// gearmotor.
func FromOutputs(o calc.Outputs, targetSF float64) Requirement {
	return Requirement{
		OutputRPM:           o.GearmotorOutputRPM.Float(),
		TorqueInLb:          o.GearmotorTorqueInLb.Float(),
		TargetServiceFactor: targetSF,
		DriveDiaIn:          o.DrivePulleyDiaIn.Float(),
		ChainRatio:          o.ChainRatio.Float(),
	}
}

// Rank keeps the points whose service-factor-adjusted capacity covers the
// required torque and orders them by closeness to the required speed, then
// by how little they are oversized, then by catalog key.
func Rank(req Requirement, points []PerformancePoint) []Candidate {
	targetSF := req.TargetServiceFactor
	if !(targetSF > 0) {
		targetSF = DefaultTargetServiceFactor
	}
	if !(req.OutputRPM > 0) || math.IsNaN(req.TorqueInLb) {
		return []Candidate{}
	}

	out := make([]Candidate, 0, len(points))
	for _, p := range points {
		adjusted := p.RatedTorqueInLb * p.ServiceFactor / targetSF
		if adjusted < req.TorqueInLb {
			continue
		}
		c := Candidate{
			PerformancePoint:   p,
			AdjustedCapacity:   adjusted,
			OversizeRatio:      oversize(adjusted, req.TorqueInLb),
			SpeedDelta:         p.OutputRPM - req.OutputRPM,
			ActualBeltSpeedFPM: calc.NaN(),
		}
		c.SpeedDeltaPct = c.SpeedDelta / req.OutputRPM * 100
		if req.MaxSpeedDeltaPct > 0 && math.Abs(c.SpeedDeltaPct) > req.MaxSpeedDeltaPct {
			continue
		}
		if req.DriveDiaIn > 0 && req.ChainRatio > 0 {
			_, fpm := calc.ActualBeltSpeed(p.OutputRPM, req.ChainRatio, req.DriveDiaIn)
			c.ActualBeltSpeedFPM = calc.Quantity(fpm)
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if da, db := math.Abs(a.SpeedDeltaPct), math.Abs(b.SpeedDeltaPct); da != db {
			return da < db
		}
		if a.OversizeRatio != b.OversizeRatio {
			return a.OversizeRatio < b.OversizeRatio
		}
		return a.Key < b.Key
	})

	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out
}

// oversize is capacity over requirement; a zero requirement ranks by raw
// capacity instead.
func oversize(capacity, required float64) float64 {
	if required <= 0 {
		return capacity
	}
	return capacity / required
}
