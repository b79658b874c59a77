package calc

import "math"

// Shafts are the drive and tail shaft diameters.
type Shafts struct {
	Mode    string
	DriveIn float64
	TailIn  float64
}

// SolveShafts passes manual diameters through or sizes both shafts from the
// belt pull. Drive carries torsion and bending; tail carries bending only.
func SolveShafts(s ShaftSizing, beltWidthIn, totalPullLb, driveTorqueIn float64, r Resolved) Shafts {
	switch m := s.(type) {
	case ManualShafts:
		return Shafts{Mode: m.shaftSizing(), DriveIn: m.DriveIn, TailIn: m.TailIn}
	case CalculatedShafts:
		span := beltWidthIn + r.Params.ShaftBearingOffsetIn
		bending := 2 * totalPullLb * span / 4
		return Shafts{
			Mode:    m.shaftSizing(),
			DriveIn: ShaftDiameter(bending, driveTorqueIn, r.Params.ShaftAllowableShearPsi, r.Params.MinCalculatedShaftIn),
			TailIn:  ShaftDiameter(bending, 0, r.Params.ShaftAllowableShearPsi, r.Params.MinCalculatedShaftIn),
		}
	default:
		return Shafts{DriveIn: math.NaN(), TailIn: math.NaN()}
	}
}

// ShaftDiameter sizes a solid shaft for combined bending moment and torque
// (both in-lb) against an allowable shear stress, rounded up to the next
// 1/16 in and never below minIn.
func ShaftDiameter(bendingInLb, torqueInLb, allowablePsi, minIn float64) float64 {
	equivalent := math.Hypot(bendingInLb, torqueInLb)
	if math.IsNaN(equivalent) || !(allowablePsi > 0) {
		return math.NaN()
	}
	d := math.Cbrt(16 * equivalent / (math.Pi * allowablePsi))
	d = math.Ceil(d*16) / 16
	if d < minIn {
		return minIn
	}
	return d
}

// TubeStatus is the outcome of the optional pulley tube stress check.
type TubeStatus string

const (
	TubeOK         TubeStatus = "ok"
	TubeEstimated  TubeStatus = "estimated"
	TubeWarn       TubeStatus = "warn"
	TubeFail       TubeStatus = "fail"
	TubeError      TubeStatus = "error"
	TubeIncomplete TubeStatus = "incomplete"
)

// TubeStress is the pulley tube bending check.
type TubeStress struct {
	Status    TubeStatus `json:"status"`
	StressPsi Quantity   `json:"stress_psi"`
	LimitPsi  Quantity   `json:"limit_psi"`
	Message   string     `json:"message,omitempty"`
}

// CheckTubeStress treats the pulley tube as a simply supported beam between
// hub centers carrying both belt strands as a uniform load. The limit depends
// on pulley construction; an unknown construction falls back to a
// conservative limit and reports an estimate.
func CheckTubeStress(g *TubeGeometry, totalPullLb float64, p Parameters) *TubeStress {
	if g == nil {
		return nil
	}
	ts := &TubeStress{StressPsi: Quantity(math.NaN()), LimitPsi: Quantity(math.NaN())}

	if math.IsNaN(g.ODIn) || math.IsNaN(g.WallIn) || math.IsNaN(g.HubCentersIn) || math.IsNaN(totalPullLb) {
		ts.Status = TubeIncomplete
		ts.Message = "tube outside diameter, wall and hub centers are all required"
		return ts
	}
	id := g.ODIn - 2*g.WallIn
	if !(g.ODIn > 0) || !(g.WallIn > 0) || id < 0 || !(g.HubCentersIn > 0) {
		ts.Status = TubeError
		ts.Message = "tube geometry is not physically possible"
		return ts
	}

	limit, known := p.TubeStressLimitsPsi[g.Construction]
	if !known {
		limit = p.DefaultTubeStressPsi
	}
	moment := 2 * totalPullLb * g.HubCentersIn / 8
	modulus := math.Pi * (math.Pow(g.ODIn, 4) - math.Pow(id, 4)) / (32 * g.ODIn)
	stress := moment / modulus

	ts.StressPsi = Quantity(stress)
	ts.LimitPsi = Quantity(limit)
	switch {
	case stress > limit:
		ts.Status = TubeFail
		ts.Message = "tube stress exceeds the allowable limit"
	case stress > p.TubeStressWarnFraction*limit:
		ts.Status = TubeWarn
		ts.Message = "tube stress is close to the allowable limit"
	case !known:
		ts.Status = TubeEstimated
		ts.Message = "pulley construction unknown; checked against the default limit"
	default:
		ts.Status = TubeOK
	}
	return ts
}
