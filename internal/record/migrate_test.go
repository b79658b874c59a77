package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMigrate(t *testing.T, in Record) Record {
	t.Helper()
	out, err := Migrate(in)
	require.NoError(t, err)
	return out
}

func TestMigrate_LegacySingleDiameterFillsBothAndLinks(t *testing.T) {
	out := mustMigrate(t, Record{legacyPulleyDiameter: 6.0})

	assert.Equal(t, 6.0, out[KeyDrivePulleyDia])
	assert.Equal(t, 6.0, out[KeyTailPulleyDia])
	assert.Equal(t, true, out[KeyTailMatchesDrive])
	assert.NotContains(t, out, legacyPulleyDiameter)
}

func TestMigrate_NoDiameterDefaultsToFourInches(t *testing.T) {
	out := mustMigrate(t, Record{})

	assert.Equal(t, 4.0, out[KeyDrivePulleyDia])
	assert.Equal(t, 4.0, out[KeyTailPulleyDia])
}

func TestMigrate_MirrorsSingleDiameter(t *testing.T) {
	out := mustMigrate(t, Record{KeyTailPulleyDia: 3.0})
	assert.Equal(t, 3.0, out[KeyDrivePulleyDia])

	out = mustMigrate(t, Record{KeyDrivePulleyDia: 5.0})
	assert.Equal(t, 5.0, out[KeyTailPulleyDia])
}

func TestMigrate_TailMatchesDriveWins(t *testing.T) {
	out := mustMigrate(t, Record{
		KeyDrivePulleyDia:   6.0,
		KeyTailPulleyDia:    4.0,
		KeyTailMatchesDrive: true,
	})
	assert.Equal(t, 6.0, out[KeyTailPulleyDia])
}

func TestMigrate_SpeedModeBackfill(t *testing.T) {
	out := mustMigrate(t, Record{legacyDriveRPM: 85.0})
	assert.Equal(t, SpeedModeDriveRPM, out[KeySpeedMode])
	assert.Equal(t, 85.0, out[KeyDriveRPM])
	assert.Equal(t, 85.0, out[legacyDriveRPM])

	out = mustMigrate(t, Record{legacyDriveRPM: 0.0, KeyBeltSpeed: 50.0})
	assert.Equal(t, SpeedModeBeltSpeed, out[KeySpeedMode])

	out = mustMigrate(t, Record{})
	assert.Equal(t, SpeedModeBeltSpeed, out[KeySpeedMode])
}

func TestMigrate_DriveRPMModeKeepsLegacyMirrored(t *testing.T) {
	out := mustMigrate(t, Record{
		KeySpeedMode:   SpeedModeDriveRPM,
		KeyDriveRPM:    120.0,
		legacyDriveRPM: 90.0,
	})
	assert.Equal(t, 120.0, out[legacyDriveRPM])
}

func TestMigrate_SupportOption(t *testing.T) {
	cases := []struct {
		legacy string
		want   string
	}{
		{"floor_mounted", SupportLegs},
		{"suspended", SupportExternal},
		{"integrated", SupportExternal},
	}
	for _, c := range cases {
		out := mustMigrate(t, Record{legacySupportOption: c.legacy})
		assert.Equal(t, c.want, out[KeyTailSupport], c.legacy)
		assert.Equal(t, c.want, out[KeyDriveSupport], c.legacy)
		assert.NotContains(t, out, legacySupportOption)
	}
}

func TestMigrate_PrunesInactiveModeFields(t *testing.T) {
	out := mustMigrate(t, Record{
		KeyTailSupport:        SupportExternal,
		KeyDriveSupport:       SupportExternal,
		KeyTOBTail:            30.0,
		KeyTOBDrive:           30.0,
		KeyCleatsEnabled:      false,
		KeyCleatHeight:        1.0,
		KeyCleatSpacing:       12.0,
		KeyGMSprocketTeeth:    18.0,
		KeyShaftSprocketTeeth: 24.0,
		KeyDriveShaftDia:      1.0,
		KeyCustomFrameHeight:  5.0,
		KeyMaterialForm:       MaterialParts,
		KeyBulkMassFlow:       500.0,
	})

	for _, k := range []string{
		KeyTOBTail, KeyTOBDrive, KeyCleatHeight, KeyCleatSpacing,
		KeyGMSprocketTeeth, KeyShaftSprocketTeeth, KeyDriveShaftDia,
		KeyCustomFrameHeight, KeyBulkMassFlow,
	} {
		assert.NotContains(t, out, k)
	}
}

func TestMigrate_KeepsActiveModeFields(t *testing.T) {
	out := mustMigrate(t, Record{
		KeyTailSupport:        SupportLegs,
		KeyTOBTail:            30.0,
		KeyCleatsEnabled:      true,
		KeyCleatHeight:        1.0,
		KeyMountingStyle:      MountingBottom,
		KeyGMSprocketTeeth:    18.0,
		KeyShaftSprocketTeeth: 24.0,
	})

	assert.Equal(t, 30.0, out[KeyTOBTail])
	assert.Equal(t, 1.0, out[KeyCleatHeight])
	assert.Equal(t, 18.0, out[KeyGMSprocketTeeth])
}

func TestMigrate_StripsRetiredKeysSilently(t *testing.T) {
	out := mustMigrate(t, Record{"use_legacy_torque": true, "bed_type": "slider"})
	assert.NotContains(t, out, "use_legacy_torque")
	assert.NotContains(t, out, "bed_type")
	assert.Equal(t, CurrentSchemaVersion, out[KeySchemaVersion])
}

func TestMigrate_CoercesStringNumbers(t *testing.T) {
	out := mustMigrate(t, Record{KeyConveyorLength: " 120.5 ", KeyCleatsEnabled: "true"})
	assert.Equal(t, 120.5, out[KeyConveyorLength])
	assert.Equal(t, true, out[KeyCleatsEnabled])
}

func TestMigrate_RejectsUninterpretableRecords(t *testing.T) {
	_, err := Migrate(Record{KeyBeltWidth: "wide"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Migrate(Record{KeySchemaVersion: "9.0.0"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))

	_, err = Migrate(Record{KeySchemaVersion: "2.4.1"})
	assert.NoError(t, err)
}

func TestMigrate_DoesNotMutateInput(t *testing.T) {
	in := Record{legacyPulleyDiameter: 6.0, legacySupportOption: "floor_mounted"}
	_ = mustMigrate(t, in)

	assert.Equal(t, Record{legacyPulleyDiameter: 6.0, legacySupportOption: "floor_mounted"}, in)
}

func TestMigrate_IdempotentOnFixtures(t *testing.T) {
	fixtures := []Record{
		{},
		{legacyPulleyDiameter: 2.5, legacyDriveRPM: 100.0, legacySupportOption: "floor_mounted", KeyTOBTail: 30.0},
		{KeyDrivePulleyDia: 4.0, KeyTailPulleyDia: 3.0, KeySpeedMode: SpeedModeBeltSpeed, KeyBeltSpeed: 65.0},
		{KeyCleatsEnabled: "false", KeyCleatHeight: "1.5", KeyMaterialForm: MaterialBulk, KeyPartWeight: 2.0},
		{KeySchemaVersion: "1.2.0", KeyMountingStyle: MountingBottom, KeyGMSprocketTeeth: 18.0, KeyShaftSprocketTeeth: 24.0},
	}
	for i, f := range fixtures {
		once := mustMigrate(t, f)
		twice := mustMigrate(t, once)
		assert.Equal(t, once, twice, "fixture %d", i)
	}
}

func TestParse(t *testing.T) {
	rec, err := Parse([]byte(`{"belt_width_in": 18, "speed_mode": "belt_speed"}`))
	require.NoError(t, err)
	assert.Equal(t, 18.0, rec.Num(KeyBeltWidth))
	assert.Equal(t, SpeedModeBeltSpeed, rec.String(KeySpeedMode))

	_, err = Parse([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrMalformed)
}
