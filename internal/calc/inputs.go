package calc

import (
	"math"

	"github.com/Simplici0/conveyor/internal/record"
)

// Inputs is a migrated configuration record decoded into typed form. Every
// mode is a tagged variant holding only the fields valid for it; a nil
// variant means the record named no usable mode. Missing numbers are NaN.
type Inputs struct {
	ConveyorLengthIn float64
	BeltWidthIn      float64
	InclineDeg       float64

	Speed             SpeedMode
	MotorRPM          float64
	DrivePulleyDiaIn  float64
	TailPulleyDiaIn   float64
	DriveLocation     string
	DriveHand         string
	GearmotorOrient   string
	Drive             DriveArrangement
	SelectedOutputRPM float64

	Material     MaterialForm
	Construction FrameConstruction
	FrameHeight  FrameHeightMode
	ClearanceIn  float64
	Cleats       *Cleats

	TailSupport    Support
	DriveSupport   Support
	TOBTailIn      float64
	TOBDriveIn     float64
	CasterHeightIn float64

	Belt        Belt
	SideLoading SideLoading
	Shafts      ShaftSizing
	Tube        *TubeGeometry

	FluidType        string
	TemperatureClass string

	Overrides Overrides
}

// SpeedMode selects how the belt speed requirement is expressed.
type SpeedMode interface{ speedMode() }

// BeltSpeed specifies the desired belt speed in feet per minute.
type BeltSpeed struct{ FPM float64 }

// DriveRPM specifies the desired drive shaft speed directly.
type DriveRPM struct{ RPM float64 }

func (BeltSpeed) speedMode() {}
func (DriveRPM) speedMode()  {}

// DriveArrangement is the coupling between gearmotor and drive shaft.
type DriveArrangement interface{ driveArrangement() }

// ShaftMounted couples the gearmotor directly to the drive shaft.
type ShaftMounted struct{}

// BottomMount couples the gearmotor through a chain stage. DriverTeeth is the
// gearmotor sprocket, DrivenTeeth the drive shaft sprocket.
type BottomMount struct {
	DriverTeeth float64
	DrivenTeeth float64
}

func (ShaftMounted) driveArrangement() {}
func (BottomMount) driveArrangement()  {}

// MaterialForm selects how the conveyed load is described.
type MaterialForm interface{ materialForm() }

// DiscreteParts conveys individual parts at a fixed spacing.
type DiscreteParts struct {
	WeightLb  float64
	LengthIn  float64
	SpacingIn float64
}

// Bulk conveys loose material described by a flow rate.
type Bulk struct {
	MassFlowLbPerHr    float64
	VolumeFlowFt3PerHr float64
	DensityLbPerFt3    float64
	MaxLumpSizeIn      float64
	SurgeMultiplier    float64
	FeedBehavior       string
}

func (DiscreteParts) materialForm() {}
func (Bulk) materialForm()          {}

// FrameConstruction is the frame build type.
type FrameConstruction interface{ frameConstruction() }

// SheetMetalFrame is a formed frame of the given gauge.
type SheetMetalFrame struct{ Gauge float64 }

// ChannelFrame is a structural channel frame of the given series.
type ChannelFrame struct{ Series string }

func (SheetMetalFrame) frameConstruction() {}
func (ChannelFrame) frameConstruction()    {}

// FrameHeightMode selects how frame height is derived.
type FrameHeightMode interface{ frameHeightMode() string }

// StandardFrame leaves room for a full return roller.
type StandardFrame struct{}

// LowProfileFrame omits the return roller and relies on snub rollers.
type LowProfileFrame struct{}

// CustomFrame uses an explicit frame height.
type CustomFrame struct{ HeightIn float64 }

func (StandardFrame) frameHeightMode() string   { return record.FrameStandard }
func (LowProfileFrame) frameHeightMode() string { return record.FrameLowProfile }
func (CustomFrame) frameHeightMode() string     { return record.FrameCustom }

// ShaftSizing selects computed or explicit shaft diameters.
type ShaftSizing interface{ shaftSizing() string }

// CalculatedShafts sizes shafts from belt pull and torque.
type CalculatedShafts struct{}

// ManualShafts passes explicit diameters through.
type ManualShafts struct {
	DriveIn float64
	TailIn  float64
}

func (CalculatedShafts) shaftSizing() string { return record.ShaftCalculated }
func (ManualShafts) shaftSizing() string     { return record.ShaftManual }

// Cleats describes a cleated belt. A nil *Cleats means cleats are disabled.
type Cleats struct {
	HeightIn      float64
	SpacingIn     float64
	WeightLbPerIn float64
	Profile       string
}

// Support is how one end of the conveyor is held up.
type Support string

const (
	SupportExternal Support = record.SupportExternal
	SupportLegs     Support = record.SupportLegs
	SupportCasters  Support = record.SupportCasters
)

// FloorSupported reports whether the end stands on legs or casters.
func (s Support) FloorSupported() bool { return s == SupportLegs || s == SupportCasters }

// Tracking is the belt tracking method.
type Tracking string

const (
	TrackingCrowned Tracking = "crowned"
	TrackingVGuided Tracking = "v_guided"
)

// Belt carries the belt selection and any catalog values resolved for it.
type Belt struct {
	CatalogKey         string
	Tracking           Tracking
	PIW                float64
	PIL                float64
	PIWOverride        float64
	PILOverride        float64
	MinDiaNoVGuideIn   float64
	MinDiaWithVGuideIn float64
}

// SideLoading is the severity of lateral loading onto the belt.
type SideLoading string

const (
	SideLoadingNone     SideLoading = "none"
	SideLoadingLight    SideLoading = "light"
	SideLoadingModerate SideLoading = "moderate"
	SideLoadingHeavy    SideLoading = "heavy"
)

// TubeGeometry enables the pulley tube stress check.
type TubeGeometry struct {
	Construction string
	ODIn         float64
	WallIn       float64
	HubCentersIn float64
}

// Overrides are per-request replacements for engineering constants. NaN
// means not overridden.
type Overrides struct {
	FrictionCoeff  float64
	SafetyFactor   float64
	StartingPullLb float64
}

// Decode builds typed inputs from a migrated record. It never fails: fields
// that are missing or of the wrong shape become NaN or a nil variant and are
// reported by Validate.
func Decode(r record.Record) Inputs {
	in := Inputs{
		ConveyorLengthIn: r.Num(record.KeyConveyorLength),
		BeltWidthIn:      r.Num(record.KeyBeltWidth),
		InclineDeg:       r.Num(record.KeyIncline),

		MotorRPM:          r.Num(record.KeyMotorRPM),
		DrivePulleyDiaIn:  r.Num(record.KeyDrivePulleyDia),
		TailPulleyDiaIn:   r.Num(record.KeyTailPulleyDia),
		DriveLocation:     r.String(record.KeyDriveLocation),
		DriveHand:         r.String(record.KeyDriveHand),
		GearmotorOrient:   r.String(record.KeyGearmotorOrient),
		SelectedOutputRPM: r.Num(record.KeySelectedOutputRPM),

		ClearanceIn: r.Num(record.KeyFrameClearance),

		TailSupport:    Support(r.String(record.KeyTailSupport)),
		DriveSupport:   Support(r.String(record.KeyDriveSupport)),
		TOBTailIn:      r.Num(record.KeyTOBTail),
		TOBDriveIn:     r.Num(record.KeyTOBDrive),
		CasterHeightIn: r.Num(record.KeyCasterHeight),

		Belt: Belt{
			CatalogKey:         r.String(record.KeyBeltCatalogKey),
			Tracking:           Tracking(r.String(record.KeyBeltTracking)),
			PIW:                r.Num(record.KeyBeltPIW),
			PIL:                r.Num(record.KeyBeltPIL),
			PIWOverride:        r.Num(record.KeyBeltPIWOverride),
			PILOverride:        r.Num(record.KeyBeltPILOverride),
			MinDiaNoVGuideIn:   r.Num(record.KeyBeltMinDiaNoVGuide),
			MinDiaWithVGuideIn: r.Num(record.KeyBeltMinDiaWithVGuide),
		},
		SideLoading: SideLoading(r.String(record.KeySideLoading)),

		FluidType:        r.String(record.KeyFluidType),
		TemperatureClass: r.String(record.KeyTemperatureClass),

		Overrides: Overrides{
			FrictionCoeff:  r.Num(record.KeyFrictionCoeff),
			SafetyFactor:   r.Num(record.KeySafetyFactor),
			StartingPullLb: r.Num(record.KeyStartingPull),
		},
	}

	if !r.Has(record.KeyIncline) {
		in.InclineDeg = 0
	}
	if in.Belt.Tracking == "" {
		in.Belt.Tracking = TrackingCrowned
	}
	if in.SideLoading == "" {
		in.SideLoading = SideLoadingNone
	}

	switch r.String(record.KeySpeedMode) {
	case record.SpeedModeBeltSpeed:
		in.Speed = BeltSpeed{FPM: r.Num(record.KeyBeltSpeed)}
	case record.SpeedModeDriveRPM:
		in.Speed = DriveRPM{RPM: r.Num(record.KeyDriveRPM)}
	}

	switch r.String(record.KeyMountingStyle) {
	case record.MountingShaft:
		in.Drive = ShaftMounted{}
	case record.MountingBottom:
		in.Drive = BottomMount{
			DriverTeeth: r.Num(record.KeyGMSprocketTeeth),
			DrivenTeeth: r.Num(record.KeyShaftSprocketTeeth),
		}
	}

	switch r.String(record.KeyMaterialForm) {
	case record.MaterialParts:
		in.Material = DiscreteParts{
			WeightLb:  r.Num(record.KeyPartWeight),
			LengthIn:  r.Num(record.KeyPartLength),
			SpacingIn: r.Num(record.KeyPartSpacing),
		}
	case record.MaterialBulk:
		in.Material = Bulk{
			MassFlowLbPerHr:    r.Num(record.KeyBulkMassFlow),
			VolumeFlowFt3PerHr: r.Num(record.KeyBulkVolumeFlow),
			DensityLbPerFt3:    r.Num(record.KeyBulkDensity),
			MaxLumpSizeIn:      r.Num(record.KeyBulkLumpSize),
			SurgeMultiplier:    r.Num(record.KeyBulkSurge),
			FeedBehavior:       r.String(record.KeyBulkFeedBehavior),
		}
	}

	switch r.String(record.KeyFrameConstruction) {
	case record.ConstructionSheetMetal:
		in.Construction = SheetMetalFrame{Gauge: r.Num(record.KeyFrameGauge)}
	case record.ConstructionChannel:
		in.Construction = ChannelFrame{Series: r.String(record.KeyFrameChannel)}
	}

	switch r.String(record.KeyFrameHeightMode) {
	case record.FrameStandard:
		in.FrameHeight = StandardFrame{}
	case record.FrameLowProfile:
		in.FrameHeight = LowProfileFrame{}
	case record.FrameCustom:
		in.FrameHeight = CustomFrame{HeightIn: r.Num(record.KeyCustomFrameHeight)}
	}

	switch r.String(record.KeyShaftMode) {
	case record.ShaftCalculated:
		in.Shafts = CalculatedShafts{}
	case record.ShaftManual:
		in.Shafts = ManualShafts{
			DriveIn: r.Num(record.KeyDriveShaftDia),
			TailIn:  r.Num(record.KeyTailShaftDia),
		}
	}

	if r.Bool(record.KeyCleatsEnabled) {
		in.Cleats = &Cleats{
			HeightIn:      r.Num(record.KeyCleatHeight),
			SpacingIn:     r.Num(record.KeyCleatSpacing),
			WeightLbPerIn: r.Num(record.KeyCleatWeight),
			Profile:       r.String(record.KeyCleatProfile),
		}
	}

	if r.Has(record.KeyTubeOD) || r.Has(record.KeyTubeWall) || r.Has(record.KeyHubCenters) {
		in.Tube = &TubeGeometry{
			Construction: r.String(record.KeyPulleyConstruction),
			ODIn:         r.Num(record.KeyTubeOD),
			WallIn:       r.Num(record.KeyTubeWall),
			HubCentersIn: r.Num(record.KeyHubCenters),
		}
	}

	return in
}

// MaxPulleyDiaIn is the larger of the drive and tail pulley diameters.
func (in Inputs) MaxPulleyDiaIn() float64 {
	if math.IsNaN(in.DrivePulleyDiaIn) || math.IsNaN(in.TailPulleyDiaIn) {
		return math.NaN()
	}
	return math.Max(in.DrivePulleyDiaIn, in.TailPulleyDiaIn)
}

// LegsRequired reports whether either end stands on the floor.
func (in Inputs) LegsRequired() bool {
	return in.TailSupport.FloorSupported() || in.DriveSupport.FloorSupported()
}

// ChainRatio is driven teeth over driver teeth, 1 without a chain stage.
func (in Inputs) ChainRatio() float64 {
	return ChainRatio(in.Drive)
}
