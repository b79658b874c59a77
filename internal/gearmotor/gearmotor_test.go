package gearmotor

import (
	"math"
	"testing"

	"github.com/Simplici0/conveyor/internal/calc"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func catalog() []PerformancePoint {
	return []PerformancePoint{
		{Key: "GM-100-A", OutputRPM: 100, RatedTorqueInLb: 300, ServiceFactor: 1.5},
		{Key: "GM-105-B", OutputRPM: 105, RatedTorqueInLb: 600, ServiceFactor: 1.5},
		{Key: "GM-095-C", OutputRPM: 95, RatedTorqueInLb: 900, ServiceFactor: 1.0},
		{Key: "GM-100-D", OutputRPM: 100, RatedTorqueInLb: 150, ServiceFactor: 1.0},
		{Key: "GM-125-E", OutputRPM: 125, RatedTorqueInLb: 1000, ServiceFactor: 2.0},
	}
}

func keys(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Key
	}
	return out
}

func TestRank_FiltersAndOrders(t *testing.T) {
	got := Rank(Requirement{OutputRPM: 100, TorqueInLb: 250, TargetServiceFactor: 1.5}, catalog())

	// GM-100-D adjusts to 100 in-lb and is dropped.
	assert.Equal(t, []string{"GM-100-A", "GM-095-C", "GM-105-B", "GM-125-E"}, keys(got))

	first := got[0]
	nearlyEqual(t, "adjusted capacity", first.AdjustedCapacity, 300)
	nearlyEqual(t, "oversize", first.OversizeRatio, 300.0/250)
	nearlyEqual(t, "speed delta", first.SpeedDelta, 0)
	nearlyEqual(t, "speed delta pct", first.SpeedDeltaPct, 0)
	assert.False(t, first.ActualBeltSpeedFPM.Valid())
}

func TestRank_EqualSpeedDeltaFallsBackToOversize(t *testing.T) {
	got := Rank(Requirement{OutputRPM: 100, TorqueInLb: 200, TargetServiceFactor: 1.5}, catalog())
	require.GreaterOrEqual(t, len(got), 3)
	// 95 and 105 are both 5% away; 095-C adjusts to 600, 105-B to 600 as well.
	assert.Equal(t, "GM-095-C", got[1].Key, "ties on speed and size break by key")
	assert.Equal(t, "GM-105-B", got[2].Key)
}

func TestRank_CapacityBoundaryIsInclusive(t *testing.T) {
	got := Rank(Requirement{OutputRPM: 100, TorqueInLb: 300, TargetServiceFactor: 1.5}, catalog())
	assert.Contains(t, keys(got), "GM-100-A")
}

func TestRank_DefaultTargetServiceFactor(t *testing.T) {
	explicit := Rank(Requirement{OutputRPM: 100, TorqueInLb: 250, TargetServiceFactor: DefaultTargetServiceFactor}, catalog())
	implicit := Rank(Requirement{OutputRPM: 100, TorqueInLb: 250}, catalog())
	assert.Equal(t, keys(explicit), keys(implicit))
}

func TestRank_SpeedWindowAndLimit(t *testing.T) {
	got := Rank(Requirement{OutputRPM: 100, TorqueInLb: 250, MaxSpeedDeltaPct: 10, Limit: 2}, catalog())
	assert.Equal(t, []string{"GM-100-A", "GM-095-C"}, keys(got))
}

func TestRank_NoRequirementNoCandidates(t *testing.T) {
	assert.Empty(t, Rank(Requirement{OutputRPM: math.NaN(), TorqueInLb: 100}, catalog()))
	assert.Empty(t, Rank(Requirement{OutputRPM: 100, TorqueInLb: math.NaN()}, catalog()))
	assert.Empty(t, Rank(Requirement{OutputRPM: 100, TorqueInLb: 1e6}, catalog()))
}

func TestRank_ReportsActualBeltSpeed(t *testing.T) {
	got := Rank(Requirement{OutputRPM: 100, TorqueInLb: 250, DriveDiaIn: 4, ChainRatio: 2}, catalog())
	require.NotEmpty(t, got)
	nearlyEqual(t, "fpm", got[0].ActualBeltSpeedFPM.Float(), 50*math.Pi*4/12)
}

func TestFromOutputs(t *testing.T) {
	res, err := calc.Run(map[string]any{
		"conveyor_length_cc_in":    120.0,
		"belt_width_in":            18.0,
		"speed_mode":               "belt_speed",
		"belt_speed_fpm":           65.45,
		"motor_rpm":                1750.0,
		"drive_pulley_diameter_in": 2.5,
		"part_weight_lb":           5.0,
		"part_length_in":           12.0,
		"part_spacing_in":          6.0,
	}, nil, calc.ProductBeltConveyor)
	require.NoError(t, err)

	req := FromOutputs(res.Outputs, 1.5)
	nearlyEqual(t, "rpm", req.OutputRPM, res.Outputs.GearmotorOutputRPM.Float())
	nearlyEqual(t, "torque", req.TorqueInLb, res.Outputs.GearmotorTorqueInLb.Float())
	nearlyEqual(t, "chain ratio", req.ChainRatio, 1)
	nearlyEqual(t, "drive dia", req.DriveDiaIn, 2.5)
}

func TestActualBeltSpeedIsMonotonicInSprocketTeeth(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	point := []PerformancePoint{{Key: "GM", OutputRPM: 90, RatedTorqueInLb: 1000, ServiceFactor: 1.5}}
	speed := func(driver, driven int) float64 {
		ratio := calc.ChainRatio(calc.BottomMount{DriverTeeth: float64(driver), DrivenTeeth: float64(driven)})
		cs := Rank(Requirement{OutputRPM: 90, TorqueInLb: 10, DriveDiaIn: 4, ChainRatio: ratio}, point)
		return cs[0].ActualBeltSpeedFPM.Float()
	}

	properties.Property("more driver teeth is faster", prop.ForAll(
		func(driver, driven int) bool { return speed(driver+1, driven) > speed(driver, driven) },
		gen.IntRange(9, 60), gen.IntRange(9, 60),
	))
	properties.Property("more driven teeth is slower", prop.ForAll(
		func(driver, driven int) bool { return speed(driver, driven+1) < speed(driver, driven) },
		gen.IntRange(9, 60), gen.IntRange(9, 60),
	))

	properties.TestingRun(t)
}
