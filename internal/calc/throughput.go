package calc

import "math"

// Throughput is the material handling result. Discrete and bulk forms fill
// different fields; the rest stay NaN.
type Throughput struct {
	Form              string
	PitchIn           float64
	PartsOnBelt       float64
	PartsPerMinute    float64
	MassFlowLbPerHr   float64
	DesignFlowLbPerHr float64
	LoadOnBeltLb      float64
}

// SolveThroughput computes the load carried by the belt and the capacity
// the configuration delivers at beltSpeedFPM.
func SolveThroughput(m MaterialForm, conveyorLengthIn, beltSpeedFPM float64) Throughput {
	t := Throughput{
		PitchIn:           math.NaN(),
		PartsOnBelt:       math.NaN(),
		PartsPerMinute:    math.NaN(),
		MassFlowLbPerHr:   math.NaN(),
		DesignFlowLbPerHr: math.NaN(),
		LoadOnBeltLb:      math.NaN(),
	}

	switch v := m.(type) {
	case DiscreteParts:
		t.Form = "parts"
		t.PitchIn = v.LengthIn + v.SpacingIn
		t.PartsOnBelt = div(conveyorLengthIn, t.PitchIn)
		t.PartsPerMinute = div(beltSpeedFPM*12, t.PitchIn)
		t.MassFlowLbPerHr = t.PartsPerMinute * v.WeightLb * 60
		t.DesignFlowLbPerHr = t.MassFlowLbPerHr
		t.LoadOnBeltLb = t.PartsOnBelt * v.WeightLb
	case Bulk:
		t.Form = "bulk"
		t.MassFlowLbPerHr = BulkMassFlow(v)
		surge := v.SurgeMultiplier
		if math.IsNaN(surge) {
			surge = 1
		}
		t.DesignFlowLbPerHr = t.MassFlowLbPerHr * surge
		lbPerFt := div(t.DesignFlowLbPerHr/60, beltSpeedFPM)
		t.LoadOnBeltLb = lbPerFt * conveyorLengthIn / 12
	}
	return t
}

// BulkMassFlow prefers an explicit mass flow and otherwise converts a
// volume flow through the bulk density.
func BulkMassFlow(b Bulk) float64 {
	if !math.IsNaN(b.MassFlowLbPerHr) {
		return b.MassFlowLbPerHr
	}
	return b.VolumeFlowFt3PerHr * b.DensityLbPerFt3
}
