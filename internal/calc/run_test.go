package calc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Simplici0/conveyor/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReferenceScenario(t *testing.T) {
	res, err := Run(baseRecord(), nil, ProductBeltConveyor)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	within(t, "drive shaft rpm", res.Outputs.DriveShaftRPM.Float(), 100, 0.01)
	within(t, "gear ratio", res.Outputs.GearRatio.Float(), 17.5, 0.01)
	assert.Equal(t, ModelVersion, res.Metadata.ModelVersion)
	assert.Equal(t, record.CurrentSchemaVersion, res.Metadata.SchemaVersion)
	assert.True(t, res.Metadata.BeltValidationApplied)
	assert.Equal(t, record.CurrentSchemaVersion, res.NormalizedInputs[record.KeySchemaVersion])
}

func TestRun_ChainRatioFlowsThroughOutputs(t *testing.T) {
	res, err := Run(with(baseRecord(),
		record.KeyMountingStyle, record.MountingBottom,
		record.KeyGMSprocketTeeth, 18.0,
		record.KeyShaftSprocketTeeth, 24.0,
	), nil, ProductBeltConveyor)
	require.NoError(t, err)

	o := res.Outputs
	nearlyEqual(t, "chain ratio", o.ChainRatio.Float(), 24.0/18.0)
	nearlyEqual(t, "gearmotor output rpm", o.GearmotorOutputRPM.Float(), o.DriveShaftRPM.Float()*24/18)
	nearlyEqual(t, "total drive ratio", o.TotalDriveRatio.Float(), o.GearRatio.Float()*24/18)
}

func TestRun_OneBadFieldKeepsTheRest(t *testing.T) {
	res, err := Run(with(baseRecord(), record.KeyBeltWidth, nil), nil, ProductBeltConveyor)
	require.NoError(t, err)

	assert.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, record.KeyBeltWidth, res.Errors[0].Field)

	o := res.Outputs
	assert.True(t, o.DriveShaftRPM.Valid())
	assert.True(t, o.BeltLengthIn.Valid())
	assert.True(t, o.FrameHeightIn.Valid())
	assert.False(t, o.BeltWeightLb.Valid())
	assert.False(t, o.TotalBeltPullLb.Valid())
}

func TestRun_SelectedOutputRPMReportsDeviation(t *testing.T) {
	res, err := Run(with(baseRecord(), record.KeySelectedOutputRPM, 105.0), nil, ProductBeltConveyor)
	require.NoError(t, err)

	nearlyEqual(t, "actual shaft rpm", res.Outputs.ActualDriveShaftRPM.Float(), 105)
	within(t, "deviation", res.Outputs.SpeedDeviationPct.Float(), 5, 0.01)

	res, err = Run(baseRecord(), nil, ProductBeltConveyor)
	require.NoError(t, err)
	assert.False(t, res.Outputs.SpeedDeviationPct.Valid())
}

func TestRun_ParameterOverrides(t *testing.T) {
	p := DefaultParameters()
	p.SafetyFactor = 1.5
	res, err := Run(baseRecord(), &p, ProductBeltConveyor)
	require.NoError(t, err)
	nearlyEqual(t, "safety factor", res.Outputs.SafetyFactor.Float(), 1.5)

	res, err = Run(with(baseRecord(), record.KeySafetyFactor, 3.0), &p, ProductBeltConveyor)
	require.NoError(t, err)
	nearlyEqual(t, "record override wins", res.Outputs.SafetyFactor.Float(), 3)
}

func TestRun_MalformedRecord(t *testing.T) {
	_, err := Run(with(baseRecord(), record.KeySchemaVersion, "9.0.0"), nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, record.ErrUnsupportedSchema))
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	rec := with(baseRecord(), "pulley_diameter_in", 4.0)
	before := rec.Clone()
	_, err := Run(rec, nil, "")
	require.NoError(t, err)
	assert.Equal(t, before, rec)
}

func TestResult_MarshalsMissingValuesAsNull(t *testing.T) {
	res, err := Run(with(baseRecord(), record.KeyBeltWidth, nil), nil, ProductBeltConveyor)
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded struct {
		Outputs map[string]any `json:"outputs"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded.Outputs["belt_weight_lb"])
	assert.NotNil(t, decoded.Outputs["drive_shaft_rpm"])
	assert.NotContains(t, decoded.Outputs, "tube_stress")
}
