package record

// Field names of a stored configuration record. They double as the field
// names reported on validation issues.
const (
	KeySchemaVersion = "schema_version"

	KeyConveyorLength = "conveyor_length_cc_in"
	KeyBeltWidth      = "belt_width_in"
	KeyIncline        = "conveyor_incline_deg"

	KeySpeedMode          = "speed_mode"
	KeyBeltSpeed          = "belt_speed_fpm"
	KeyDriveRPM           = "drive_rpm"
	KeyMotorRPM           = "motor_rpm"
	KeyDrivePulleyDia     = "drive_pulley_diameter_in"
	KeyTailPulleyDia      = "tail_pulley_diameter_in"
	KeyTailMatchesDrive   = "tail_matches_drive"
	KeyDriveLocation      = "drive_location"
	KeyDriveHand          = "drive_hand"
	KeyGearmotorOrient    = "gearmotor_orientation"
	KeyMountingStyle      = "gearmotor_mounting_style"
	KeyGMSprocketTeeth    = "gm_sprocket_teeth"
	KeyShaftSprocketTeeth = "drive_shaft_sprocket_teeth"
	KeySelectedOutputRPM  = "selected_gm_output_rpm"

	KeyMaterialForm     = "material_form"
	KeyPartWeight       = "part_weight_lb"
	KeyPartLength       = "part_length_in"
	KeyPartSpacing      = "part_spacing_in"
	KeyBulkMassFlow     = "bulk_mass_flow_lb_per_hr"
	KeyBulkVolumeFlow   = "bulk_volume_flow_ft3_per_hr"
	KeyBulkDensity      = "bulk_density_lb_per_ft3"
	KeyBulkLumpSize     = "bulk_max_lump_size_in"
	KeyBulkSurge        = "bulk_surge_multiplier"
	KeyBulkFeedBehavior = "bulk_feed_behavior"

	KeyFrameConstruction = "frame_construction_type"
	KeyFrameGauge        = "frame_sheet_metal_gauge"
	KeyFrameChannel      = "frame_structural_channel_series"
	KeyFrameHeightMode   = "frame_height_mode"
	KeyCustomFrameHeight = "custom_frame_height_in"
	KeyFrameClearance    = "frame_clearance_in"

	KeyCleatsEnabled = "cleats_enabled"
	KeyCleatHeight   = "cleat_height_in"
	KeyCleatSpacing  = "cleat_spacing_in"
	KeyCleatWeight   = "cleat_weight_lb_per_in"
	KeyCleatProfile  = "cleat_profile"

	KeyTailSupport  = "tail_support_type"
	KeyDriveSupport = "drive_support_type"
	KeyTOBTail      = "tob_tail_in"
	KeyTOBDrive     = "tob_drive_in"
	KeyCasterHeight = "caster_height_in"

	KeyBeltCatalogKey       = "belt_catalog_key"
	KeyBeltTracking         = "belt_tracking_method"
	KeyBeltPIW              = "belt_piw"
	KeyBeltPIL              = "belt_pil"
	KeyBeltPIWOverride      = "belt_piw_override"
	KeyBeltPILOverride      = "belt_pil_override"
	KeyBeltMinDiaNoVGuide   = "belt_min_pulley_dia_no_vguide_in"
	KeyBeltMinDiaWithVGuide = "belt_min_pulley_dia_with_vguide_in"
	KeySideLoading          = "side_loading_severity"

	KeyShaftMode     = "shaft_diameter_mode"
	KeyDriveShaftDia = "drive_shaft_diameter_in"
	KeyTailShaftDia  = "tail_shaft_diameter_in"

	KeyPulleyConstruction = "pulley_construction"
	KeyTubeOD             = "pulley_tube_od_in"
	KeyTubeWall           = "pulley_tube_wall_in"
	KeyHubCenters         = "pulley_hub_centers_in"

	KeyFluidType        = "fluid_type"
	KeyTemperatureClass = "part_temperature_class"

	KeyFrictionCoeff = "friction_coeff"
	KeySafetyFactor  = "safety_factor"
	KeyStartingPull  = "starting_belt_pull_lb"
)

// Legacy fields consumed by the migrator.
const (
	legacyPulleyDiameter = "pulley_diameter_in"
	legacyDriveRPM       = "drive_rpm_input"
	legacySupportOption  = "support_option"
)

// Mode values.
const (
	SpeedModeBeltSpeed = "belt_speed"
	SpeedModeDriveRPM  = "drive_rpm"

	MountingShaft  = "shaft_mounted"
	MountingBottom = "bottom_mount"

	MaterialParts = "parts"
	MaterialBulk  = "bulk"

	ConstructionSheetMetal = "sheet_metal"
	ConstructionChannel    = "structural_channel"

	FrameStandard   = "standard"
	FrameLowProfile = "low_profile"
	FrameCustom     = "custom"

	SupportExternal = "external"
	SupportLegs     = "legs"
	SupportCasters  = "casters"

	ShaftCalculated = "calculated"
	ShaftManual     = "manual"
)

// retiredKeys no longer exist in the schema and are dropped on load.
var retiredKeys = []string{
	legacyPulleyDiameter,
	legacySupportOption,
	"belt_speed_mode_v1",
	"use_legacy_torque",
	"legacy_frame_height_in",
	"bed_type",
	"motor_brand",
	"emergency_stop_qty",
	"pulley_surface_legacy",
}

var numericKeys = map[string]struct{}{
	KeyConveyorLength: {}, KeyBeltWidth: {}, KeyIncline: {},
	KeyBeltSpeed: {}, KeyDriveRPM: {}, KeyMotorRPM: {},
	KeyDrivePulleyDia: {}, KeyTailPulleyDia: {},
	KeyGMSprocketTeeth: {}, KeyShaftSprocketTeeth: {}, KeySelectedOutputRPM: {},
	KeyPartWeight: {}, KeyPartLength: {}, KeyPartSpacing: {},
	KeyBulkMassFlow: {}, KeyBulkVolumeFlow: {}, KeyBulkDensity: {}, KeyBulkLumpSize: {}, KeyBulkSurge: {},
	KeyFrameGauge: {}, KeyCustomFrameHeight: {}, KeyFrameClearance: {},
	KeyCleatHeight: {}, KeyCleatSpacing: {}, KeyCleatWeight: {},
	KeyTOBTail: {}, KeyTOBDrive: {}, KeyCasterHeight: {},
	KeyBeltPIW: {}, KeyBeltPIL: {}, KeyBeltPIWOverride: {}, KeyBeltPILOverride: {},
	KeyBeltMinDiaNoVGuide: {}, KeyBeltMinDiaWithVGuide: {},
	KeyDriveShaftDia: {}, KeyTailShaftDia: {},
	KeyTubeOD: {}, KeyTubeWall: {}, KeyHubCenters: {},
	KeyFrictionCoeff: {}, KeySafetyFactor: {}, KeyStartingPull: {},
	legacyPulleyDiameter: {}, legacyDriveRPM: {},
}

var boolKeys = map[string]struct{}{
	KeyTailMatchesDrive: {},
	KeyCleatsEnabled:    {},
}

var (
	partsKeys = []string{KeyPartWeight, KeyPartLength, KeyPartSpacing}
	bulkKeys  = []string{KeyBulkMassFlow, KeyBulkVolumeFlow, KeyBulkDensity, KeyBulkLumpSize, KeyBulkSurge, KeyBulkFeedBehavior}
	cleatKeys = []string{KeyCleatHeight, KeyCleatSpacing, KeyCleatWeight, KeyCleatProfile}
)
