package calc

import "math"

// Frame is the frame height derivation and the snub roller decision.
type Frame struct {
	Mode                string
	MaxPulleyDiaIn      float64
	CleatAllowanceIn    float64
	ReturnAllowanceIn   float64
	RequiredHeightIn    float64
	ClearanceIn         float64
	ReferenceHeightIn   float64
	FrameHeightIn       float64
	SnubThresholdIn     float64
	SnubRollersRequired bool
}

// SolveFrame derives frame height. Required height is the largest pulley plus
// twice the cleat height plus a return allowance that only standard and
// custom frames carry. Snub rollers are required whenever the frame is
// strictly lower than the largest pulley plus the snub margin.
func SolveFrame(mode FrameHeightMode, maxPulleyDiaIn float64, cleats *Cleats, r Resolved) Frame {
	f := Frame{
		MaxPulleyDiaIn:    maxPulleyDiaIn,
		ReturnAllowanceIn: r.Params.ReturnRollerAllowanceIn,
		ClearanceIn:       r.ClearanceIn,
	}
	if cleats != nil {
		f.CleatAllowanceIn = 2 * cleats.HeightIn
	}
	if mode != nil {
		f.Mode = mode.frameHeightMode()
	}
	if _, low := mode.(LowProfileFrame); low {
		f.ReturnAllowanceIn = 0
	}

	f.RequiredHeightIn = maxPulleyDiaIn + f.CleatAllowanceIn + f.ReturnAllowanceIn
	f.ReferenceHeightIn = f.RequiredHeightIn + f.ClearanceIn

	switch m := mode.(type) {
	case StandardFrame, LowProfileFrame:
		f.FrameHeightIn = f.ReferenceHeightIn
	case CustomFrame:
		f.FrameHeightIn = m.HeightIn
	default:
		f.FrameHeightIn = math.NaN()
	}

	f.SnubThresholdIn = maxPulleyDiaIn + r.Params.SnubMarginIn
	f.SnubRollersRequired = f.FrameHeightIn < f.SnubThresholdIn
	return f
}

// SupportGeometry is the floor support geometry at each end.
type SupportGeometry struct {
	LegsRequired        bool
	TailLegExtensionIn  float64
	DriveLegExtensionIn float64
}

// SolveSupport derives leg extension for floor-supported ends: top of belt
// less frame height, less the caster height when the end rolls on casters.
func SolveSupport(in Inputs, frameHeightIn float64, r Resolved) SupportGeometry {
	g := SupportGeometry{
		LegsRequired:        in.LegsRequired(),
		TailLegExtensionIn:  math.NaN(),
		DriveLegExtensionIn: math.NaN(),
	}
	end := func(s Support, tobIn float64) float64 {
		if !s.FloorSupported() {
			return math.NaN()
		}
		ext := tobIn - frameHeightIn
		if s == SupportCasters {
			ext -= r.CasterHeightIn
		}
		return ext
	}
	g.TailLegExtensionIn = end(in.TailSupport, in.TOBTailIn)
	g.DriveLegExtensionIn = end(in.DriveSupport, in.TOBDriveIn)
	return g
}
