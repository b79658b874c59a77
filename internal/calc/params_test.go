package calc

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/Simplici0/conveyor/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParameters_PassCheck(t *testing.T) {
	assert.Empty(t, DefaultParameters().Check())
}

func TestParameters_CheckNamesTheField(t *testing.T) {
	p := DefaultParameters()
	p.InclineStrongWarnDeg = 10
	p.BeltWeightBrackets = nil

	is := p.Check()
	require.NotEmpty(t, is)
	assert.NotEmpty(t, is.Field("parameters.incline_strong_warn_deg"))
	assert.NotEmpty(t, is.Field("parameters.belt_weight_brackets"))
}

func TestBeltWeightFor(t *testing.T) {
	p := DefaultParameters()
	nearlyEqual(t, "2 in", p.BeltWeightFor(2).PIW, 0.00109)
	nearlyEqual(t, "2.5 in", p.BeltWeightFor(2.5).PIW, 0.00109)
	nearlyEqual(t, "4 in", p.BeltWeightFor(4).PIW, 0.00138)
	nearlyEqual(t, "8 in", p.BeltWeightFor(8).PIW, 0.00165)
	assert.True(t, math.IsNaN(p.BeltWeightFor(math.NaN()).PIW))
}

func TestResolve_Precedence(t *testing.T) {
	in := decode(t, with(baseRecord(),
		record.KeyBeltPIW, 0.002,
		record.KeyBeltPIWOverride, 0.003,
		record.KeyFrictionCoeff, 0.3,
	))
	r := Resolve(in, DefaultParameters())

	nearlyEqual(t, "piw", r.PIW, 0.003)
	nearlyEqual(t, "pil falls back to bracket", r.PIL, 0.0025)
	nearlyEqual(t, "friction", r.FrictionCoeff, 0.3)
	nearlyEqual(t, "safety factor", r.SafetyFactor, 2)
	nearlyEqual(t, "clearance", r.ClearanceIn, 0.5)
}

func TestQuantity_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		A Quantity `json:"a"`
		B Quantity `json:"b"`
		C Quantity `json:"c"`
	}{Quantity(1.5), NaN(), Quantity(math.Inf(1))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null,"c":null}`, string(raw))

	var q Quantity
	require.NoError(t, json.Unmarshal([]byte("null"), &q))
	assert.False(t, q.Valid())
	require.NoError(t, json.Unmarshal([]byte("2.25"), &q))
	assert.Equal(t, 2.25, q.Float())
}

func TestIssues_Partition(t *testing.T) {
	is := Issues{
		{Field: "a", Severity: SeverityError},
		{Field: "b", Severity: SeverityWarning},
		{Field: "a", Severity: SeverityInfo},
	}
	assert.True(t, is.HasErrors())
	assert.Len(t, is.Errors(), 1)
	assert.Len(t, is.Warnings(), 1)
	assert.Len(t, is.Info(), 1)
	assert.Len(t, is.Field("a"), 2)
	assert.False(t, Issues{}.HasErrors())
}
