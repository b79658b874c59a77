package calc

import (
	"math"
	"slices"

	"github.com/Simplici0/conveyor/internal/record"
)

// Product keys known to the engine.
const (
	ProductBeltConveyor     = "belt_conveyor_v1"
	ProductCleatedConveyor  = "cleated_conveyor_v1"
	ProductMagneticConveyor = "magnetic_conveyor_v1"
)

// beltlessProducts carry no conveyor belt, so belt selection is not required.
var beltlessProducts = map[string]bool{
	ProductMagneticConveyor: true,
}

// RequiresBeltValidation reports whether belt selection fields are mandatory
// for productKey. An empty or unknown key requires them.
func RequiresBeltValidation(productKey string) bool {
	return !beltlessProducts[productKey]
}

// Domain limits.
const (
	maxConveyorLengthIn = 1200.0
	minBeltWidthIn      = 6.0
	maxBeltWidthIn      = 60.0
	minPulleyDiaIn      = 2.0
	maxPulleyDiaIn      = 12.0
	highBeltSpeedFPM    = 300.0
	maxSurgeMultiplier  = 3.0
)

var (
	driveLocations  = []string{"head", "tail", "center"}
	driveHands      = []string{"left", "right"}
	sheetGauges     = []float64{10, 12, 14, 16}
	feedBehaviors   = []string{"steady", "surge", "batch"}
	oilyFluids      = []string{"oil", "solvent", "food_grease"}
	extremeTempTags = []string{"hot", "cold"}
)

// Validate checks inputs and parameters. It never fails; every finding is an
// Issue and only error-severity issues block a result.
func Validate(in Inputs, p Parameters, productKey string) Issues {
	c := &collector{}
	c.issues = append(c.issues, p.Check()...)

	r := Resolve(in, p)
	frame := SolveFrame(in.FrameHeight, in.MaxPulleyDiaIn(), in.Cleats, r)

	validateGeometry(c, in, p)
	validateSpeed(c, in)
	validateDrive(c, in, p)
	validateMaterial(c, in)
	validateFrame(c, in, p, frame)
	validateCleats(c, in, productKey)
	validateSupport(c, in, frame, r)
	if RequiresBeltValidation(productKey) {
		validateBelt(c, in)
	}
	validateSideLoading(c, in)
	validateShafts(c, in, p)
	validateOverrides(c, in, p)
	validateEnvironment(c, in)
	return c.issues
}

func (c *collector) required(field string, v float64) bool {
	if math.IsNaN(v) {
		c.errorf(field, "%s is required", field)
		return false
	}
	return true
}

func (c *collector) positive(field string, v float64) bool {
	if !c.required(field, v) {
		return false
	}
	if v <= 0 {
		c.errorf(field, "%s must be greater than 0", field)
		return false
	}
	return true
}

func (c *collector) within(field string, v, lo, hi float64) bool {
	if !c.required(field, v) {
		return false
	}
	if v < lo || v > hi {
		c.errorf(field, "%s must be between %g and %g", field, lo, hi)
		return false
	}
	return true
}

func validateGeometry(c *collector, in Inputs, p Parameters) {
	if c.positive(record.KeyConveyorLength, in.ConveyorLengthIn) && in.ConveyorLengthIn > maxConveyorLengthIn {
		c.errorf(record.KeyConveyorLength, "%s must not exceed %g in", record.KeyConveyorLength, maxConveyorLengthIn)
	}
	c.within(record.KeyBeltWidth, in.BeltWidthIn, minBeltWidthIn, maxBeltWidthIn)
	c.within(record.KeyDrivePulleyDia, in.DrivePulleyDiaIn, minPulleyDiaIn, maxPulleyDiaIn)
	c.within(record.KeyTailPulleyDia, in.TailPulleyDiaIn, minPulleyDiaIn, maxPulleyDiaIn)

	incline := math.Abs(in.InclineDeg)
	switch {
	case math.IsNaN(incline):
		c.errorf(record.KeyIncline, "%s must be a number", record.KeyIncline)
	case incline > p.InclineMaxDeg:
		c.errorf(record.KeyIncline, "incline of %g° exceeds the %g° maximum", in.InclineDeg, p.InclineMaxDeg)
	case incline > p.InclineStrongWarnDeg:
		c.warnf(record.KeyIncline, "incline of %g° is above %g°: product may roll back; cleats and engineering review recommended", in.InclineDeg, p.InclineStrongWarnDeg)
	case incline > p.InclineWarnDeg:
		c.warnf(record.KeyIncline, "incline of %g° is above %g°: confirm product will not slip on the belt", in.InclineDeg, p.InclineWarnDeg)
	}
}

func validateSpeed(c *collector, in Inputs) {
	switch s := in.Speed.(type) {
	case BeltSpeed:
		if c.positive(record.KeyBeltSpeed, s.FPM) && s.FPM > highBeltSpeedFPM {
			c.warnf(record.KeyBeltSpeed, "belt speed of %g FPM is above %g FPM; review product handling", s.FPM, highBeltSpeedFPM)
		}
	case DriveRPM:
		c.positive(record.KeyDriveRPM, s.RPM)
	default:
		c.errorf(record.KeySpeedMode, "%s must be %q or %q", record.KeySpeedMode, record.SpeedModeBeltSpeed, record.SpeedModeDriveRPM)
	}
	c.positive(record.KeyMotorRPM, in.MotorRPM)
	if !math.IsNaN(in.SelectedOutputRPM) && in.SelectedOutputRPM <= 0 {
		c.errorf(record.KeySelectedOutputRPM, "%s must be greater than 0", record.KeySelectedOutputRPM)
	}
}

func validateDrive(c *collector, in Inputs, p Parameters) {
	if in.DriveLocation != "" && !slices.Contains(driveLocations, in.DriveLocation) {
		c.errorf(record.KeyDriveLocation, "%s %q is not one of %v", record.KeyDriveLocation, in.DriveLocation, driveLocations)
	}
	if in.DriveHand != "" && !slices.Contains(driveHands, in.DriveHand) {
		c.errorf(record.KeyDriveHand, "%s %q is not one of %v", record.KeyDriveHand, in.DriveHand, driveHands)
	}

	switch d := in.Drive.(type) {
	case ShaftMounted:
	case BottomMount:
		driverOK := teeth(c, record.KeyGMSprocketTeeth, d.DriverTeeth, p)
		drivenOK := teeth(c, record.KeyShaftSprocketTeeth, d.DrivenTeeth, p)
		if driverOK && drivenOK {
			ratio := ChainRatio(d)
			if ratio < p.ChainRatioMin || ratio > p.ChainRatioMax {
				c.warnf(record.KeyShaftSprocketTeeth, "chain ratio %.3f is outside the recommended %g to %g", ratio, p.ChainRatioMin, p.ChainRatioMax)
			}
		}
	default:
		c.errorf(record.KeyMountingStyle, "%s must be %q or %q", record.KeyMountingStyle, record.MountingShaft, record.MountingBottom)
	}
}

func teeth(c *collector, field string, n float64, p Parameters) bool {
	if !c.positive(field, n) {
		return false
	}
	if n != math.Trunc(n) {
		c.errorf(field, "%s must be a whole number of teeth", field)
		return false
	}
	if n < p.MinSprocketTeeth {
		c.warnf(field, "sprockets below %g teeth wear quickly", p.MinSprocketTeeth)
	}
	return true
}

func validateMaterial(c *collector, in Inputs) {
	switch m := in.Material.(type) {
	case DiscreteParts:
		c.positive(record.KeyPartWeight, m.WeightLb)
		c.positive(record.KeyPartLength, m.LengthIn)
		if c.required(record.KeyPartSpacing, m.SpacingIn) && m.SpacingIn < 0 {
			c.errorf(record.KeyPartSpacing, "%s must not be negative", record.KeyPartSpacing)
		}
	case Bulk:
		validateBulk(c, in, m)
	default:
		c.errorf(record.KeyMaterialForm, "%s must be %q or %q", record.KeyMaterialForm, record.MaterialParts, record.MaterialBulk)
	}
}

func validateBulk(c *collector, in Inputs, b Bulk) {
	switch {
	case !math.IsNaN(b.MassFlowLbPerHr):
		c.positive(record.KeyBulkMassFlow, b.MassFlowLbPerHr)
	case !math.IsNaN(b.VolumeFlowFt3PerHr):
		c.positive(record.KeyBulkVolumeFlow, b.VolumeFlowFt3PerHr)
		c.positive(record.KeyBulkDensity, b.DensityLbPerFt3)
	default:
		c.errorf(record.KeyBulkMassFlow, "bulk material needs a mass flow, or a volume flow with density")
	}

	if !math.IsNaN(b.MaxLumpSizeIn) {
		switch {
		case b.MaxLumpSizeIn <= 0:
			c.errorf(record.KeyBulkLumpSize, "%s must be greater than 0", record.KeyBulkLumpSize)
		case in.BeltWidthIn > 0 && b.MaxLumpSizeIn > in.BeltWidthIn/2:
			c.errorf(record.KeyBulkLumpSize, "lumps larger than half the belt width (%g in) cannot be conveyed", in.BeltWidthIn/2)
		case in.BeltWidthIn > 0 && b.MaxLumpSizeIn > in.BeltWidthIn/3:
			c.warnf(record.KeyBulkLumpSize, "lumps larger than a third of the belt width (%g in) may spill", in.BeltWidthIn/3)
		}
	}

	if !math.IsNaN(b.SurgeMultiplier) {
		c.within(record.KeyBulkSurge, b.SurgeMultiplier, 1, maxSurgeMultiplier)
	}
	if b.FeedBehavior != "" && !slices.Contains(feedBehaviors, b.FeedBehavior) {
		c.errorf(record.KeyBulkFeedBehavior, "%s %q is not one of %v", record.KeyBulkFeedBehavior, b.FeedBehavior, feedBehaviors)
	}
	if b.FeedBehavior == "surge" && math.IsNaN(b.SurgeMultiplier) {
		c.warnf(record.KeyBulkSurge, "surge feed without a surge multiplier is sized for steady flow")
	}
}

func validateFrame(c *collector, in Inputs, p Parameters, frame Frame) {
	switch fc := in.Construction.(type) {
	case SheetMetalFrame:
		if c.required(record.KeyFrameGauge, fc.Gauge) && !slices.Contains(sheetGauges, fc.Gauge) {
			c.errorf(record.KeyFrameGauge, "%s must be one of %v", record.KeyFrameGauge, sheetGauges)
		}
	case ChannelFrame:
		if fc.Series == "" {
			c.errorf(record.KeyFrameChannel, "%s is required for structural channel frames", record.KeyFrameChannel)
		}
	}

	if !math.IsNaN(in.ClearanceIn) && in.ClearanceIn < 0 {
		c.errorf(record.KeyFrameClearance, "%s must not be negative", record.KeyFrameClearance)
	}

	switch m := in.FrameHeight.(type) {
	case StandardFrame:
	case LowProfileFrame:
		if in.Cleats != nil {
			c.errorf(record.KeyCleatsEnabled, "cleats cannot be used with a low-profile frame: its snub rollers are incompatible with cleated belts")
		}
	case CustomFrame:
		if !c.required(record.KeyCustomFrameHeight, m.HeightIn) {
			return
		}
		if m.HeightIn < p.MinCustomFrameHeightIn {
			c.errorf(record.KeyCustomFrameHeight, "%s must be at least %g in", record.KeyCustomFrameHeight, p.MinCustomFrameHeightIn)
			return
		}
		if m.HeightIn < frame.RequiredHeightIn {
			c.warnf(record.KeyCustomFrameHeight, "custom frame height is below the %.2f in required for a return roller", frame.RequiredHeightIn)
		}
		if frame.SnubRollersRequired && in.Cleats != nil {
			c.errorf(record.KeyCleatsEnabled, "frame height requires snub rollers, which are incompatible with cleated belts")
		}
	default:
		c.errorf(record.KeyFrameHeightMode, "%s must be %q, %q or %q", record.KeyFrameHeightMode, record.FrameStandard, record.FrameLowProfile, record.FrameCustom)
	}
}

func validateCleats(c *collector, in Inputs, productKey string) {
	cl := in.Cleats
	if cl == nil {
		if productKey == ProductCleatedConveyor {
			c.errorf(record.KeyCleatsEnabled, "%s requires cleats", productKey)
		}
		return
	}
	c.positive(record.KeyCleatHeight, cl.HeightIn)
	c.positive(record.KeyCleatSpacing, cl.SpacingIn)
	if c.required(record.KeyCleatWeight, cl.WeightLbPerIn) && cl.WeightLbPerIn < 0 {
		c.errorf(record.KeyCleatWeight, "%s must not be negative", record.KeyCleatWeight)
	}
	if cl.SpacingIn > 0 && cl.HeightIn > 0 && cl.SpacingIn < 2*cl.HeightIn {
		c.warnf(record.KeyCleatSpacing, "cleats spaced closer than twice their height may not clear the pulleys")
	}
	if in.InclineDeg == 0 {
		c.infof(record.KeyCleatsEnabled, "cleats are usually only needed on inclined conveyors")
	}
}

func validateSupport(c *collector, in Inputs, frame Frame, r Resolved) {
	ends := []struct {
		supportField, tobField string
		support                Support
		tob                    float64
	}{
		{record.KeyTailSupport, record.KeyTOBTail, in.TailSupport, in.TOBTailIn},
		{record.KeyDriveSupport, record.KeyTOBDrive, in.DriveSupport, in.TOBDriveIn},
	}
	for _, e := range ends {
		switch e.support {
		case SupportExternal:
			continue
		case SupportLegs, SupportCasters:
		default:
			c.errorf(e.supportField, "%s must be %q, %q or %q", e.supportField, SupportExternal, SupportLegs, SupportCasters)
			continue
		}
		if !c.positive(e.tobField, e.tob) {
			continue
		}
		minTOB := frame.FrameHeightIn
		if e.support == SupportCasters {
			minTOB += r.CasterHeightIn
		}
		if e.tob < minTOB {
			c.errorf(e.tobField, "top of belt %g in is below the %.2f in the frame and supports need", e.tob, minTOB)
		}
	}
	if !math.IsNaN(in.CasterHeightIn) && in.CasterHeightIn <= 0 {
		c.errorf(record.KeyCasterHeight, "%s must be greater than 0", record.KeyCasterHeight)
	}
}

func validateBelt(c *collector, in Inputs) {
	b := in.Belt
	hasCoefficients := !math.IsNaN(b.PIW) || !math.IsNaN(b.PIWOverride)
	if b.CatalogKey == "" && !hasCoefficients {
		c.errorf(record.KeyBeltCatalogKey, "select a belt or enter its weight coefficients")
	}
	for _, v := range []struct {
		field string
		val   float64
	}{
		{record.KeyBeltPIWOverride, b.PIWOverride},
		{record.KeyBeltPILOverride, b.PILOverride},
	} {
		if !math.IsNaN(v.val) && v.val < 0 {
			c.errorf(v.field, "%s must not be negative", v.field)
		}
	}

	var minDia float64
	switch b.Tracking {
	case TrackingCrowned:
		minDia = b.MinDiaNoVGuideIn
	case TrackingVGuided:
		minDia = b.MinDiaWithVGuideIn
	default:
		c.errorf(record.KeyBeltTracking, "%s must be %q or %q", record.KeyBeltTracking, TrackingCrowned, TrackingVGuided)
		return
	}
	if math.IsNaN(minDia) {
		return
	}
	for _, pulley := range []struct {
		field string
		dia   float64
	}{
		{record.KeyDrivePulleyDia, in.DrivePulleyDiaIn},
		{record.KeyTailPulleyDia, in.TailPulleyDiaIn},
	} {
		if pulley.dia < minDia {
			c.errorf(pulley.field, "the selected belt needs pulleys of at least %g in with %s tracking", minDia, b.Tracking)
		}
	}
}

func validateSideLoading(c *collector, in Inputs) {
	switch in.SideLoading {
	case SideLoadingNone, SideLoadingLight:
	case SideLoadingModerate:
		if in.Belt.Tracking == TrackingCrowned {
			c.infof(record.KeySideLoading, "moderate side loading tracks better with a V-guided belt")
		}
	case SideLoadingHeavy:
		if in.Belt.Tracking == TrackingVGuided {
			c.warnf(record.KeySideLoading, "heavy side loading on a V-guided belt needs engineering review")
		} else {
			c.errorf(record.KeySideLoading, "heavy side loading requires a V-guided belt; crowned pulleys cannot hold tracking")
		}
	default:
		c.errorf(record.KeySideLoading, "%s %q is not a known severity", record.KeySideLoading, in.SideLoading)
	}
}

func validateShafts(c *collector, in Inputs, p Parameters) {
	switch s := in.Shafts.(type) {
	case CalculatedShafts:
	case ManualShafts:
		c.within(record.KeyDriveShaftDia, s.DriveIn, p.ManualShaftMinIn, p.ManualShaftMaxIn)
		c.within(record.KeyTailShaftDia, s.TailIn, p.ManualShaftMinIn, p.ManualShaftMaxIn)
	default:
		c.errorf(record.KeyShaftMode, "%s must be %q or %q", record.KeyShaftMode, record.ShaftCalculated, record.ShaftManual)
	}
}

func validateOverrides(c *collector, in Inputs, p Parameters) {
	o := in.Overrides
	if !math.IsNaN(o.FrictionCoeff) {
		c.within(record.KeyFrictionCoeff, o.FrictionCoeff, p.FrictionCoeffMin, p.FrictionCoeffMax)
	}
	if !math.IsNaN(o.SafetyFactor) {
		c.within(record.KeySafetyFactor, o.SafetyFactor, p.SafetyFactorMin, p.SafetyFactorMax)
	}
	if !math.IsNaN(o.StartingPullLb) && o.StartingPullLb < 0 {
		c.errorf(record.KeyStartingPull, "%s must not be negative", record.KeyStartingPull)
	}
}

func validateEnvironment(c *collector, in Inputs) {
	if slices.Contains(oilyFluids, in.FluidType) {
		c.infof(record.KeyFluidType, "%s exposure: an oil-resistant belt material is recommended", in.FluidType)
	}
	if slices.Contains(extremeTempTags, in.TemperatureClass) {
		c.infof(record.KeyTemperatureClass, "%s parts: a temperature-rated belt material is recommended", in.TemperatureClass)
	}
}
