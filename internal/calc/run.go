package calc

import (
	"fmt"

	"github.com/Simplici0/conveyor/internal/record"
)

// ModelVersion identifies the formula set that produced a result.
const ModelVersion = "belt_conveyor_v1.4"

// Metadata describes how a result was produced.
type Metadata struct {
	ModelVersion          string `json:"model_version"`
	SchemaVersion         string `json:"schema_version"`
	ProductKey            string `json:"product_key"`
	BeltValidationApplied bool   `json:"belt_validation_applied"`
}

// Result is the complete outcome of one calculation request. Success is true
// iff Errors is empty; Outputs are populated either way.
type Result struct {
	Success          bool          `json:"success"`
	Outputs          Outputs       `json:"outputs"`
	Errors           []Issue       `json:"errors"`
	Warnings         []Issue       `json:"warnings"`
	Info             []Issue       `json:"info"`
	Metadata         Metadata      `json:"metadata"`
	NormalizedInputs record.Record `json:"normalized_inputs"`
}

// Run migrates rec, validates it against p and computes outputs. A nil p runs
// with DefaultParameters. The only error is a malformed record; every domain
// problem is reported through the Result.
func Run(rec record.Record, p *Parameters, productKey string) (Result, error) {
	params := DefaultParameters()
	if p != nil {
		params = *p
	}

	migrated, err := record.Migrate(rec)
	if err != nil {
		return Result{}, fmt.Errorf("migrate record: %w", err)
	}

	in := Decode(migrated)
	issues := Validate(in, params, productKey)
	out := calculate(in, Resolve(in, params))

	return Result{
		Success:  !issues.HasErrors(),
		Outputs:  out,
		Errors:   issues.Errors(),
		Warnings: issues.Warnings(),
		Info:     issues.Info(),
		Metadata: Metadata{
			ModelVersion:          ModelVersion,
			SchemaVersion:         record.CurrentSchemaVersion,
			ProductKey:            productKey,
			BeltValidationApplied: RequiresBeltValidation(productKey),
		},
		NormalizedInputs: migrated,
	}, nil
}
