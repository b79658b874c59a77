package calc

import (
	"math"
	"testing"

	"github.com/Simplici0/conveyor/internal/record"
	"github.com/stretchr/testify/assert"
)

func fourInchFrame(t *testing.T, mode string, kv ...any) Frame {
	t.Helper()
	rec := with(baseRecord(),
		record.KeyDrivePulleyDia, 4.0,
		record.KeyTailPulleyDia, 4.0,
		record.KeyFrameHeightMode, mode,
	)
	in := decode(t, with(rec, kv...))
	return SolveFrame(in.FrameHeight, in.MaxPulleyDiaIn(), in.Cleats, Resolve(in, DefaultParameters()))
}

func TestSolveFrame_Standard(t *testing.T) {
	f := fourInchFrame(t, record.FrameStandard)

	nearlyEqual(t, "required", f.RequiredHeightIn, 6)
	nearlyEqual(t, "reference", f.ReferenceHeightIn, 6.5)
	nearlyEqual(t, "frame", f.FrameHeightIn, 6.5)
	nearlyEqual(t, "snub threshold", f.SnubThresholdIn, 6.5)
	assert.False(t, f.SnubRollersRequired)
}

func TestSolveFrame_LowProfileNeedsSnubRollers(t *testing.T) {
	f := fourInchFrame(t, record.FrameLowProfile)

	nearlyEqual(t, "required", f.RequiredHeightIn, 4)
	nearlyEqual(t, "reference", f.ReferenceHeightIn, 4.5)
	assert.True(t, f.SnubRollersRequired)
}

func TestSolveFrame_CustomHeight(t *testing.T) {
	f := fourInchFrame(t, record.FrameCustom, record.KeyCustomFrameHeight, 8.0)
	nearlyEqual(t, "frame", f.FrameHeightIn, 8)
	assert.False(t, f.SnubRollersRequired)

	f = fourInchFrame(t, record.FrameCustom, record.KeyCustomFrameHeight, 5.0)
	assert.True(t, f.SnubRollersRequired)
}

func TestSolveFrame_CleatsAndClearance(t *testing.T) {
	f := fourInchFrame(t, record.FrameStandard,
		record.KeyCleatsEnabled, true,
		record.KeyCleatHeight, 1.5,
		record.KeyCleatSpacing, 12.0,
		record.KeyCleatWeight, 0.02,
		record.KeyFrameClearance, 1.0,
	)
	nearlyEqual(t, "cleat allowance", f.CleatAllowanceIn, 3)
	nearlyEqual(t, "required", f.RequiredHeightIn, 9)
	nearlyEqual(t, "reference", f.ReferenceHeightIn, 10)
}

func TestSolveFrame_SnubThresholdIsStrict(t *testing.T) {
	f := fourInchFrame(t, record.FrameCustom, record.KeyCustomFrameHeight, 6.5)
	assert.False(t, f.SnubRollersRequired, "frame exactly at the threshold needs no snub rollers")
}

func TestSolveSupport_LegExtension(t *testing.T) {
	in := decode(t, with(baseRecord(),
		record.KeyTailSupport, record.SupportLegs,
		record.KeyDriveSupport, record.SupportCasters,
		record.KeyTOBTail, 30.0,
		record.KeyTOBDrive, 30.0,
		record.KeyCasterHeight, 4.0,
	))
	g := SolveSupport(in, 6, Resolve(in, DefaultParameters()))

	assert.True(t, g.LegsRequired)
	nearlyEqual(t, "tail extension", g.TailLegExtensionIn, 24)
	nearlyEqual(t, "drive extension", g.DriveLegExtensionIn, 20)
}

func TestSolveSupport_ExternalEndsHaveNoLegs(t *testing.T) {
	in := decode(t, baseRecord())
	g := SolveSupport(in, 6, Resolve(in, DefaultParameters()))

	assert.False(t, g.LegsRequired)
	assert.True(t, math.IsNaN(g.TailLegExtensionIn))
	assert.True(t, math.IsNaN(g.DriveLegExtensionIn))
}
