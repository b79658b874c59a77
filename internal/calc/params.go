package calc

import (
	"math"
	"sort"

	"github.com/Simplici0/conveyor/internal/validation"
)

// BeltWeightBracket gives belt weight coefficients for pulleys up to
// MaxPulleyDiaIn. A zero MaxPulleyDiaIn is the open-ended last bracket.
//
// PIW is lb per square inch of belt; PIL is lb per inch of belt length.
type BeltWeightBracket struct {
	MaxPulleyDiaIn float64 `yaml:"max_pulley_dia_in" json:"max_pulley_dia_in" validate:"gte=0"`
	PIW            float64 `yaml:"piw" json:"piw" validate:"gt=0"`
	PIL            float64 `yaml:"pil" json:"pil" validate:"gte=0"`
}

// Parameters are the engineering constants the engine runs with. Callers
// start from DefaultParameters and override individual values.
type Parameters struct {
	FrictionCoeff    float64 `yaml:"friction_coeff" json:"friction_coeff" validate:"gtefield=FrictionCoeffMin,ltefield=FrictionCoeffMax"`
	FrictionCoeffMin float64 `yaml:"friction_coeff_min" json:"friction_coeff_min" validate:"gt=0"`
	FrictionCoeffMax float64 `yaml:"friction_coeff_max" json:"friction_coeff_max" validate:"gtfield=FrictionCoeffMin,lte=1"`
	SafetyFactor     float64 `yaml:"safety_factor" json:"safety_factor" validate:"gtefield=SafetyFactorMin,ltefield=SafetyFactorMax"`
	SafetyFactorMin  float64 `yaml:"safety_factor_min" json:"safety_factor_min" validate:"gte=1"`
	SafetyFactorMax  float64 `yaml:"safety_factor_max" json:"safety_factor_max" validate:"gtfield=SafetyFactorMin,lte=10"`
	StartingPullLb   float64 `yaml:"starting_belt_pull_lb" json:"starting_belt_pull_lb" validate:"gte=0,lte=1000"`

	BeltWeightBrackets []BeltWeightBracket `yaml:"belt_weight_brackets" json:"belt_weight_brackets" validate:"min=1,dive"`

	ReturnRollerAllowanceIn float64 `yaml:"return_roller_allowance_in" json:"return_roller_allowance_in" validate:"gte=0,lte=12"`
	FrameClearanceIn        float64 `yaml:"frame_clearance_in" json:"frame_clearance_in" validate:"gte=0,lte=12"`
	SnubMarginIn            float64 `yaml:"snub_margin_in" json:"snub_margin_in" validate:"gte=0,lte=12"`
	MinCustomFrameHeightIn  float64 `yaml:"min_custom_frame_height_in" json:"min_custom_frame_height_in" validate:"gt=0"`
	DefaultCasterHeightIn   float64 `yaml:"default_caster_height_in" json:"default_caster_height_in" validate:"gte=0"`

	ShaftAllowableShearPsi float64 `yaml:"shaft_allowable_shear_psi" json:"shaft_allowable_shear_psi" validate:"gt=0"`
	ShaftBearingOffsetIn   float64 `yaml:"shaft_bearing_offset_in" json:"shaft_bearing_offset_in" validate:"gte=0"`
	MinCalculatedShaftIn   float64 `yaml:"min_calculated_shaft_in" json:"min_calculated_shaft_in" validate:"gt=0"`
	ManualShaftMinIn       float64 `yaml:"manual_shaft_min_in" json:"manual_shaft_min_in" validate:"gt=0"`
	ManualShaftMaxIn       float64 `yaml:"manual_shaft_max_in" json:"manual_shaft_max_in" validate:"gtfield=ManualShaftMinIn"`

	TubeStressLimitsPsi     map[string]float64 `yaml:"tube_stress_limits_psi" json:"tube_stress_limits_psi" validate:"dive,gt=0"`
	DefaultTubeStressPsi    float64            `yaml:"default_tube_stress_limit_psi" json:"default_tube_stress_limit_psi" validate:"gt=0"`
	TubeStressWarnFraction  float64            `yaml:"tube_stress_warn_fraction" json:"tube_stress_warn_fraction" validate:"gt=0,lte=1"`
	InclineWarnDeg          float64            `yaml:"incline_warn_deg" json:"incline_warn_deg" validate:"gt=0"`
	InclineStrongWarnDeg    float64            `yaml:"incline_strong_warn_deg" json:"incline_strong_warn_deg" validate:"gtfield=InclineWarnDeg"`
	InclineMaxDeg           float64            `yaml:"incline_max_deg" json:"incline_max_deg" validate:"gtfield=InclineStrongWarnDeg,lte=90"`
	ChainRatioMin           float64            `yaml:"chain_ratio_min" json:"chain_ratio_min" validate:"gt=0"`
	ChainRatioMax           float64            `yaml:"chain_ratio_max" json:"chain_ratio_max" validate:"gtfield=ChainRatioMin"`
	MinSprocketTeeth        float64            `yaml:"min_sprocket_teeth" json:"min_sprocket_teeth" validate:"gte=6"`
	TargetServiceFactor     float64            `yaml:"target_service_factor" json:"target_service_factor" validate:"gte=1,lte=4"`
}

// DefaultParameters returns the stock engineering constants.
func DefaultParameters() Parameters {
	return Parameters{
		FrictionCoeff:    0.25,
		FrictionCoeffMin: 0.05,
		FrictionCoeffMax: 0.6,
		SafetyFactor:     2.0,
		SafetyFactorMin:  1.0,
		SafetyFactorMax:  5.0,
		StartingPullLb:   75,

		BeltWeightBrackets: []BeltWeightBracket{
			{MaxPulleyDiaIn: 2.5, PIW: 0.00109, PIL: 0.0025},
			{MaxPulleyDiaIn: 4.0, PIW: 0.00138, PIL: 0.0030},
			{MaxPulleyDiaIn: 0, PIW: 0.00165, PIL: 0.0035},
		},

		ReturnRollerAllowanceIn: 2.0,
		FrameClearanceIn:        0.5,
		SnubMarginIn:            2.5,
		MinCustomFrameHeightIn:  3.0,
		DefaultCasterHeightIn:   5.0,

		ShaftAllowableShearPsi: 6000,
		ShaftBearingOffsetIn:   2.0,
		MinCalculatedShaftIn:   0.75,
		ManualShaftMinIn:       0.5,
		ManualShaftMaxIn:       4.0,

		TubeStressLimitsPsi: map[string]float64{
			"drum":         10000,
			"crowned_drum": 9000,
			"wing":         7000,
		},
		DefaultTubeStressPsi:   7000,
		TubeStressWarnFraction: 0.8,
		InclineWarnDeg:         20,
		InclineStrongWarnDeg:   35,
		InclineMaxDeg:          45,
		ChainRatioMin:          0.5,
		ChainRatioMax:          3.0,
		MinSprocketTeeth:       12,
		TargetServiceFactor:    1.5,
	}
}

// Check validates the parameter ranges, reporting issues as
// "parameters.<name>".
func (p Parameters) Check() Issues {
	var c collector
	for _, fi := range validation.Get().Struct(p) {
		c.errorf("parameters."+fi.Field, "%s", fi.Message)
	}
	return c.issues
}

// BeltWeightFor returns the bracket that applies to a pulley diameter.
// Brackets are matched in ascending order of limit; the open-ended bracket
// matches anything larger.
func (p Parameters) BeltWeightFor(pulleyDiaIn float64) BeltWeightBracket {
	brackets := append([]BeltWeightBracket(nil), p.BeltWeightBrackets...)
	sort.SliceStable(brackets, func(i, j int) bool {
		a, b := brackets[i].MaxPulleyDiaIn, brackets[j].MaxPulleyDiaIn
		if a == 0 {
			return false
		}
		if b == 0 {
			return true
		}
		return a < b
	})
	if len(brackets) == 0 || math.IsNaN(pulleyDiaIn) {
		return BeltWeightBracket{PIW: math.NaN(), PIL: math.NaN()}
	}
	for _, br := range brackets {
		if br.MaxPulleyDiaIn == 0 || pulleyDiaIn <= br.MaxPulleyDiaIn {
			return br
		}
	}
	return brackets[len(brackets)-1]
}

// Resolved is the single set of effective constants for one request: input
// overrides applied over parameters. Formulas read only from here.
type Resolved struct {
	Params         Parameters
	FrictionCoeff  float64
	SafetyFactor   float64
	StartingPullLb float64
	ClearanceIn    float64
	CasterHeightIn float64
	PIW            float64
	PIL            float64
}

// Resolve applies the request's overrides to p.
func Resolve(in Inputs, p Parameters) Resolved {
	bracket := p.BeltWeightFor(in.MaxPulleyDiaIn())
	return Resolved{
		Params:         p,
		FrictionCoeff:  firstSet(in.Overrides.FrictionCoeff, p.FrictionCoeff),
		SafetyFactor:   firstSet(in.Overrides.SafetyFactor, p.SafetyFactor),
		StartingPullLb: firstSet(in.Overrides.StartingPullLb, p.StartingPullLb),
		ClearanceIn:    firstSet(in.ClearanceIn, p.FrameClearanceIn),
		CasterHeightIn: firstSet(in.CasterHeightIn, p.DefaultCasterHeightIn),
		PIW:            firstSet(in.Belt.PIWOverride, in.Belt.PIW, bracket.PIW),
		PIL:            firstSet(in.Belt.PILOverride, in.Belt.PIL, bracket.PIL),
	}
}

// firstSet returns the first non-NaN value, or NaN.
func firstSet(values ...float64) float64 {
	for _, v := range values {
		if !math.IsNaN(v) {
			return v
		}
	}
	return math.NaN()
}
