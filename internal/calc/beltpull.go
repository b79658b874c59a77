package calc

import "math"

// BeltPull is the belt weight build-up and the pull and torque it produces.
type BeltPull struct {
	BeltLengthIn       float64
	BeltWeightLb       float64
	CleatCount         float64
	CleatWeightLb      float64
	TotalBeltWeightLb  float64
	FrictionPullLb     float64
	InclinePullLb      float64
	StartingPullLb     float64
	TotalBeltPullLb    float64
	DriveShaftTorqueIn float64
	GearmotorTorqueIn  float64
}

// OpenBeltLength is the length of an endless belt around two pulleys whose
// centers are centersIn apart.
func OpenBeltLength(centersIn, d1, d2 float64) float64 {
	if !(centersIn > 0) {
		return math.NaN()
	}
	return 2*centersIn + math.Pi*(d1+d2)/2 + (d1-d2)*(d1-d2)/(4*centersIn)
}

// BeltWeight estimates belt weight from the width and length coefficients.
func BeltWeight(piw, pil, widthIn, lengthIn float64) float64 {
	return (piw*widthIn + pil) * lengthIn
}

// CleatWeight is the weight of all cleats on a belt: unit weight per inch of
// cleat across the belt width, times the number of cleats along its length.
// Disabled cleats weigh nothing.
func CleatWeight(c *Cleats, widthIn, beltLengthIn float64) (count, weightLb float64) {
	if c == nil {
		return 0, 0
	}
	count = div(beltLengthIn, c.SpacingIn)
	return count, c.WeightLbPerIn * widthIn * count
}

// SolveBeltPull computes belt pull and torque. Friction is taken against the
// full load whatever the incline.
func SolveBeltPull(in Inputs, r Resolved, loadLb, chainRatio float64) BeltPull {
	var bp BeltPull
	bp.BeltLengthIn = OpenBeltLength(in.ConveyorLengthIn, in.DrivePulleyDiaIn, in.TailPulleyDiaIn)
	bp.BeltWeightLb = BeltWeight(r.PIW, r.PIL, in.BeltWidthIn, bp.BeltLengthIn)
	bp.CleatCount, bp.CleatWeightLb = CleatWeight(in.Cleats, in.BeltWidthIn, bp.BeltLengthIn)
	bp.TotalBeltWeightLb = bp.BeltWeightLb + bp.CleatWeightLb

	bp.FrictionPullLb = r.FrictionCoeff * (bp.TotalBeltWeightLb + loadLb)
	bp.InclinePullLb = loadLb * math.Sin(in.InclineDeg*math.Pi/180)
	bp.StartingPullLb = r.StartingPullLb
	bp.TotalBeltPullLb = bp.FrictionPullLb + bp.InclinePullLb + bp.StartingPullLb

	bp.DriveShaftTorqueIn = bp.TotalBeltPullLb * (in.DrivePulleyDiaIn / 2) * r.SafetyFactor
	bp.GearmotorTorqueIn = div(bp.DriveShaftTorqueIn, chainRatio)
	return bp
}
