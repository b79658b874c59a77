package calc

import "math"

// Drivetrain is the speed and ratio chain from motor to belt.
type Drivetrain struct {
	DriveShaftRPM      float64
	BeltSpeedFPM       float64
	ChainRatio         float64
	GearmotorOutputRPM float64
	GearRatio          float64
	TotalDriveRatio    float64
}

// BeltSpeedFromRPM converts drive shaft RPM to belt speed in feet per minute
// for a pulley of diameter diaIn inches.
func BeltSpeedFromRPM(rpm, diaIn float64) float64 {
	return rpm * math.Pi * diaIn / 12
}

// RPMFromBeltSpeed converts belt speed in feet per minute to drive shaft RPM.
func RPMFromBeltSpeed(fpm, diaIn float64) float64 {
	return div(fpm*12, math.Pi*diaIn)
}

// ChainRatio is driven teeth over driver teeth for a bottom-mount drive and
// exactly 1 for a shaft-mounted drive.
func ChainRatio(d DriveArrangement) float64 {
	switch v := d.(type) {
	case BottomMount:
		if !(v.DriverTeeth > 0) || !(v.DrivenTeeth > 0) {
			return math.NaN()
		}
		return v.DrivenTeeth / v.DriverTeeth
	case ShaftMounted:
		return 1
	default:
		return math.NaN()
	}
}

// SolveDrivetrain derives the drive shaft speed from whichever speed mode is
// active and carries it through the chain and gear stages.
func SolveDrivetrain(speed SpeedMode, driveDiaIn, motorRPM float64, drive DriveArrangement) Drivetrain {
	var dt Drivetrain
	switch s := speed.(type) {
	case BeltSpeed:
		dt.BeltSpeedFPM = s.FPM
		dt.DriveShaftRPM = RPMFromBeltSpeed(s.FPM, driveDiaIn)
	case DriveRPM:
		dt.DriveShaftRPM = s.RPM
		dt.BeltSpeedFPM = BeltSpeedFromRPM(s.RPM, driveDiaIn)
	default:
		dt.DriveShaftRPM = math.NaN()
		dt.BeltSpeedFPM = math.NaN()
	}

	dt.ChainRatio = ChainRatio(drive)
	dt.GearmotorOutputRPM = dt.DriveShaftRPM * dt.ChainRatio
	dt.GearRatio = div(motorRPM, dt.GearmotorOutputRPM)
	dt.TotalDriveRatio = dt.GearRatio * dt.ChainRatio
	return dt
}

// ActualBeltSpeed runs a gearmotor's rated output RPM back through the chain
// stage and drive pulley.
func ActualBeltSpeed(gmOutputRPM, chainRatio, driveDiaIn float64) (shaftRPM, fpm float64) {
	shaftRPM = div(gmOutputRPM, chainRatio)
	return shaftRPM, BeltSpeedFromRPM(shaftRPM, driveDiaIn)
}

// SpeedDeviationPct is the signed percentage by which actual differs from desired.
func SpeedDeviationPct(actual, desired float64) float64 {
	return div(actual-desired, desired) * 100
}

// div divides, yielding NaN instead of an infinity when b is zero.
func div(a, b float64) float64 {
	if b == 0 || math.IsNaN(b) {
		return math.NaN()
	}
	return a / b
}
