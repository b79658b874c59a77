package calc

import "math"

// Outputs is the complete derived design. Every field is populated on every
// run; quantities that could not be computed are NaN (null in JSON).
type Outputs struct {
	// Drivetrain
	DriveShaftRPM      Quantity `json:"drive_shaft_rpm"`
	BeltSpeedFPM       Quantity `json:"belt_speed_fpm"`
	ChainRatio         Quantity `json:"chain_ratio"`
	GearmotorOutputRPM Quantity `json:"gearmotor_output_rpm"`
	GearRatio          Quantity `json:"gear_ratio"`
	TotalDriveRatio    Quantity `json:"total_drive_ratio"`

	ActualDriveShaftRPM Quantity `json:"actual_drive_shaft_rpm"`
	ActualBeltSpeedFPM  Quantity `json:"actual_belt_speed_fpm"`
	SpeedDeviationPct   Quantity `json:"speed_deviation_pct"`

	// Belt
	DrivePulleyDiaIn Quantity `json:"drive_pulley_diameter_in"`
	TailPulleyDiaIn  Quantity `json:"tail_pulley_diameter_in"`
	MaxPulleyDiaIn   Quantity `json:"max_pulley_diameter_in"`
	BeltLengthIn     Quantity `json:"belt_length_in"`
	PIW              Quantity `json:"piw"`
	PIL              Quantity `json:"pil"`
	BeltWeightLb     Quantity `json:"belt_weight_lb"`
	CleatCount       Quantity `json:"cleat_count"`
	CleatWeightLb    Quantity `json:"cleat_weight_lb"`
	TotalBeltWeight  Quantity `json:"total_belt_weight_lb"`

	// Load
	MaterialForm      string   `json:"material_form"`
	PitchIn           Quantity `json:"pitch_in"`
	PartsOnBelt       Quantity `json:"parts_on_belt"`
	PartsPerMinute    Quantity `json:"parts_per_minute"`
	MassFlowLbPerHr   Quantity `json:"mass_flow_lb_per_hr"`
	DesignFlowLbPerHr Quantity `json:"design_flow_lb_per_hr"`
	LoadOnBeltLb      Quantity `json:"load_on_belt_lb"`

	// Pull and torque
	FrictionCoeff        Quantity `json:"friction_coeff"`
	SafetyFactor         Quantity `json:"safety_factor"`
	FrictionPullLb       Quantity `json:"friction_pull_lb"`
	InclinePullLb        Quantity `json:"incline_pull_lb"`
	StartingPullLb       Quantity `json:"starting_pull_lb"`
	TotalBeltPullLb      Quantity `json:"total_belt_pull_lb"`
	DriveShaftTorqueInLb Quantity `json:"drive_shaft_torque_in_lb"`
	GearmotorTorqueInLb  Quantity `json:"gearmotor_torque_in_lb"`

	// Frame
	FrameHeightMode        string   `json:"frame_height_mode"`
	RequiredFrameHeightIn  Quantity `json:"required_frame_height_in"`
	FrameClearanceIn       Quantity `json:"frame_clearance_in"`
	ReferenceFrameHeightIn Quantity `json:"reference_frame_height_in"`
	FrameHeightIn          Quantity `json:"frame_height_in"`
	SnubThresholdIn        Quantity `json:"snub_threshold_in"`
	SnubRollersRequired    bool     `json:"snub_rollers_required"`

	// Shafts
	ShaftDiameterMode string      `json:"shaft_diameter_mode"`
	DriveShaftDiaIn   Quantity    `json:"drive_shaft_diameter_in"`
	TailShaftDiaIn    Quantity    `json:"tail_shaft_diameter_in"`
	TubeStress        *TubeStress `json:"tube_stress,omitempty"`

	// Support
	LegsRequired        bool     `json:"legs_required"`
	TailLegExtensionIn  Quantity `json:"tail_leg_extension_in"`
	DriveLegExtensionIn Quantity `json:"drive_leg_extension_in"`
}

// Calculate runs the formula pipeline. It always completes: invalid or
// missing inputs show up as NaN in the affected outputs only.
func Calculate(in Inputs, p Parameters) Outputs {
	return calculate(in, Resolve(in, p))
}

func calculate(in Inputs, r Resolved) Outputs {
	dt := SolveDrivetrain(in.Speed, in.DrivePulleyDiaIn, in.MotorRPM, in.Drive)
	tp := SolveThroughput(in.Material, in.ConveyorLengthIn, dt.BeltSpeedFPM)
	bp := SolveBeltPull(in, r, tp.LoadOnBeltLb, dt.ChainRatio)
	fr := SolveFrame(in.FrameHeight, in.MaxPulleyDiaIn(), in.Cleats, r)
	sh := SolveShafts(in.Shafts, in.BeltWidthIn, bp.TotalBeltPullLb, bp.DriveShaftTorqueIn, r)
	sg := SolveSupport(in, fr.FrameHeightIn, r)

	actualRPM, actualFPM, deviation := math.NaN(), math.NaN(), math.NaN()
	if in.SelectedOutputRPM > 0 {
		actualRPM, actualFPM = ActualBeltSpeed(in.SelectedOutputRPM, dt.ChainRatio, in.DrivePulleyDiaIn)
		deviation = SpeedDeviationPct(actualFPM, dt.BeltSpeedFPM)
	}

	return Outputs{
		DriveShaftRPM:      Quantity(dt.DriveShaftRPM),
		BeltSpeedFPM:       Quantity(dt.BeltSpeedFPM),
		ChainRatio:         Quantity(dt.ChainRatio),
		GearmotorOutputRPM: Quantity(dt.GearmotorOutputRPM),
		GearRatio:          Quantity(dt.GearRatio),
		TotalDriveRatio:    Quantity(dt.TotalDriveRatio),

		ActualDriveShaftRPM: Quantity(actualRPM),
		ActualBeltSpeedFPM:  Quantity(actualFPM),
		SpeedDeviationPct:   Quantity(deviation),

		DrivePulleyDiaIn: Quantity(in.DrivePulleyDiaIn),
		TailPulleyDiaIn:  Quantity(in.TailPulleyDiaIn),
		MaxPulleyDiaIn:   Quantity(in.MaxPulleyDiaIn()),
		BeltLengthIn:     Quantity(bp.BeltLengthIn),
		PIW:              Quantity(r.PIW),
		PIL:              Quantity(r.PIL),
		BeltWeightLb:     Quantity(bp.BeltWeightLb),
		CleatCount:       Quantity(bp.CleatCount),
		CleatWeightLb:    Quantity(bp.CleatWeightLb),
		TotalBeltWeight:  Quantity(bp.TotalBeltWeightLb),

		MaterialForm:      tp.Form,
		PitchIn:           Quantity(tp.PitchIn),
		PartsOnBelt:       Quantity(tp.PartsOnBelt),
		PartsPerMinute:    Quantity(tp.PartsPerMinute),
		MassFlowLbPerHr:   Quantity(tp.MassFlowLbPerHr),
		DesignFlowLbPerHr: Quantity(tp.DesignFlowLbPerHr),
		LoadOnBeltLb:      Quantity(tp.LoadOnBeltLb),

		FrictionCoeff:        Quantity(r.FrictionCoeff),
		SafetyFactor:         Quantity(r.SafetyFactor),
		FrictionPullLb:       Quantity(bp.FrictionPullLb),
		InclinePullLb:        Quantity(bp.InclinePullLb),
		StartingPullLb:       Quantity(bp.StartingPullLb),
		TotalBeltPullLb:      Quantity(bp.TotalBeltPullLb),
		DriveShaftTorqueInLb: Quantity(bp.DriveShaftTorqueIn),
		GearmotorTorqueInLb:  Quantity(bp.GearmotorTorqueIn),

		FrameHeightMode:        fr.Mode,
		RequiredFrameHeightIn:  Quantity(fr.RequiredHeightIn),
		FrameClearanceIn:       Quantity(fr.ClearanceIn),
		ReferenceFrameHeightIn: Quantity(fr.ReferenceHeightIn),
		FrameHeightIn:          Quantity(fr.FrameHeightIn),
		SnubThresholdIn:        Quantity(fr.SnubThresholdIn),
		SnubRollersRequired:    fr.SnubRollersRequired,

		ShaftDiameterMode: sh.Mode,
		DriveShaftDiaIn:   Quantity(sh.DriveIn),
		TailShaftDiaIn:    Quantity(sh.TailIn),
		TubeStress:        CheckTubeStress(in.Tube, bp.TotalBeltPullLb, r.Params),

		LegsRequired:        sg.LegsRequired,
		TailLegExtensionIn:  Quantity(sg.TailLegExtensionIn),
		DriveLegExtensionIn: Quantity(sg.DriveLegExtensionIn),
	}
}
