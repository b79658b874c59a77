package calc

import (
	"math"
	"testing"

	"github.com/Simplici0/conveyor/internal/record"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	within(t, name, got, want, 1e-9)
}

func within(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Fatalf("%s = %v, want %v (±%g)", name, got, want, tol)
	}
}

func isNaN(t *testing.T, name string, got float64) {
	t.Helper()
	if !math.IsNaN(got) {
		t.Fatalf("%s = %v, want NaN", name, got)
	}
}

// baseRecord is a valid shaft-mounted parts conveyor running 65.45 FPM on
// 2.5 in pulleys from a 1750 RPM motor.
func baseRecord() record.Record {
	return record.Record{
		record.KeyConveyorLength:    120.0,
		record.KeyBeltWidth:         18.0,
		record.KeyIncline:           0.0,
		record.KeySpeedMode:         record.SpeedModeBeltSpeed,
		record.KeyBeltSpeed:         65.45,
		record.KeyMotorRPM:          1750.0,
		record.KeyDrivePulleyDia:    2.5,
		record.KeyTailPulleyDia:     2.5,
		record.KeyMountingStyle:     record.MountingShaft,
		record.KeyMaterialForm:      record.MaterialParts,
		record.KeyPartWeight:        5.0,
		record.KeyPartLength:        12.0,
		record.KeyPartSpacing:       6.0,
		record.KeyFrameConstruction: record.ConstructionSheetMetal,
		record.KeyFrameGauge:        14.0,
		record.KeyFrameHeightMode:   record.FrameStandard,
		record.KeyTailSupport:       record.SupportExternal,
		record.KeyDriveSupport:      record.SupportExternal,
		record.KeyBeltCatalogKey:    "PVC120",
		record.KeyShaftMode:         record.ShaftCalculated,
	}
}

// with returns a copy of rec with the given key/value pairs applied. A nil
// value deletes the key.
func with(rec record.Record, kv ...any) record.Record {
	out := rec.Clone()
	for i := 0; i+1 < len(kv); i += 2 {
		k := kv[i].(string)
		if kv[i+1] == nil {
			delete(out, k)
			continue
		}
		out[k] = kv[i+1]
	}
	return out
}

func decode(t *testing.T, rec record.Record) Inputs {
	t.Helper()
	migrated, err := record.Migrate(rec)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return Decode(migrated)
}
