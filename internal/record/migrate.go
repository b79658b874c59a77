package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CurrentSchemaVersion is stamped on every migrated record.
const CurrentSchemaVersion = "3.0.0"

// defaultPulleyDiameter applies when a legacy record carries no diameter at all.
const defaultPulleyDiameter = 4.0

var currentSchema = semver.MustParse(CurrentSchemaVersion)

// Migrate upgrades rec to the current schema. The input is never modified and
// Migrate(Migrate(x)) equals Migrate(x).
func Migrate(rec Record) (Record, error) {
	out := rec.Clone()

	if err := checkSchema(out); err != nil {
		return nil, err
	}
	if err := coerce(out); err != nil {
		return nil, err
	}

	reconcilePulleys(out)
	backfillSpeedMode(out)
	migrateSupport(out)
	defaultModes(out)
	prune(out)
	out.drop(retiredKeys...)

	out[KeySchemaVersion] = CurrentSchemaVersion
	return out, nil
}

// LegsRequired reports whether either end of the conveyor stands on the floor.
func LegsRequired(r Record) bool {
	return floorSupported(r.String(KeyTailSupport)) || floorSupported(r.String(KeyDriveSupport))
}

func floorSupported(support string) bool {
	return support == SupportLegs || support == SupportCasters
}

func checkSchema(r Record) error {
	raw, ok := r[KeySchemaVersion]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%w: %s must be a string", ErrMalformed, KeySchemaVersion)
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedSchema, s, err)
	}
	if v.Major() > currentSchema.Major() {
		return fmt.Errorf("%w: %s is newer than %s", ErrUnsupportedSchema, v, currentSchema)
	}
	return nil
}

// coerce converts numbers and booleans that older clients stored as strings.
func coerce(r Record) error {
	for k, v := range r {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if _, numeric := numericKeys[k]; numeric {
			if s == "" {
				delete(r, k)
				continue
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("%w: %s=%q is not numeric", ErrMalformed, k, s)
			}
			r[k] = f
			continue
		}
		if _, boolean := boolKeys[k]; boolean {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("%w: %s=%q is not a boolean", ErrMalformed, k, s)
			}
			r[k] = b
		}
	}
	return nil
}

func reconcilePulleys(r Record) {
	_, hasDrive := r.Float(KeyDrivePulleyDia)
	_, hasTail := r.Float(KeyTailPulleyDia)

	switch {
	case !hasDrive && !hasTail:
		d := defaultPulleyDiameter
		if r.positive(legacyPulleyDiameter) {
			d = r.Num(legacyPulleyDiameter)
		}
		r[KeyDrivePulleyDia] = d
		r[KeyTailPulleyDia] = d
		r[KeyTailMatchesDrive] = true
	case hasDrive && !hasTail:
		r[KeyTailPulleyDia] = r.Num(KeyDrivePulleyDia)
	case !hasDrive && hasTail:
		r[KeyDrivePulleyDia] = r.Num(KeyTailPulleyDia)
	}

	if r.Bool(KeyTailMatchesDrive) {
		r[KeyTailPulleyDia] = r.Num(KeyDrivePulleyDia)
	}
}

func backfillSpeedMode(r Record) {
	if r.String(KeySpeedMode) == "" {
		if r.positive(legacyDriveRPM) || r.positive(KeyDriveRPM) {
			r[KeySpeedMode] = SpeedModeDriveRPM
		} else {
			r[KeySpeedMode] = SpeedModeBeltSpeed
		}
	}

	if r.String(KeySpeedMode) != SpeedModeDriveRPM {
		return
	}
	if !r.Has(KeyDriveRPM) && r.Has(legacyDriveRPM) {
		r[KeyDriveRPM] = r[legacyDriveRPM]
	}
	if r.Has(KeyDriveRPM) {
		r[legacyDriveRPM] = r[KeyDriveRPM]
	}
}

func migrateSupport(r Record) {
	legacy := r.String(legacySupportOption)
	delete(r, legacySupportOption)

	var mapped string
	switch legacy {
	case "floor_mounted":
		mapped = SupportLegs
	case "suspended", "integrated":
		mapped = SupportExternal
	default:
		return
	}
	if r.String(KeyTailSupport) == "" {
		r[KeyTailSupport] = mapped
	}
	if r.String(KeyDriveSupport) == "" {
		r[KeyDriveSupport] = mapped
	}
}

func defaultModes(r Record) {
	defaults := []struct{ key, value string }{
		{KeyMountingStyle, MountingShaft},
		{KeyMaterialForm, MaterialParts},
		{KeyFrameHeightMode, FrameStandard},
		{KeyShaftMode, ShaftCalculated},
		{KeyTailSupport, SupportExternal},
		{KeyDriveSupport, SupportExternal},
	}
	for _, d := range defaults {
		if r.String(d.key) == "" {
			r[d.key] = d.value
		}
	}
	if _, ok := r[KeyCleatsEnabled].(bool); !ok {
		r[KeyCleatsEnabled] = false
	}
}

// prune removes fields that belong to a mode that is not active.
func prune(r Record) {
	if !LegsRequired(r) {
		r.drop(KeyTOBTail, KeyTOBDrive)
	}
	if r.String(KeyTailSupport) != SupportCasters && r.String(KeyDriveSupport) != SupportCasters {
		r.drop(KeyCasterHeight)
	}
	if !r.Bool(KeyCleatsEnabled) {
		r.drop(cleatKeys...)
	}
	if r.String(KeyMountingStyle) != MountingBottom {
		r.drop(KeyGMSprocketTeeth, KeyShaftSprocketTeeth)
	}
	if r.String(KeyShaftMode) != ShaftManual {
		r.drop(KeyDriveShaftDia, KeyTailShaftDia)
	}
	if r.String(KeyFrameHeightMode) != FrameCustom {
		r.drop(KeyCustomFrameHeight)
	}
	switch r.String(KeyMaterialForm) {
	case MaterialParts:
		r.drop(bulkKeys...)
	case MaterialBulk:
		r.drop(partsKeys...)
	}
	switch r.String(KeyFrameConstruction) {
	case ConstructionSheetMetal:
		r.drop(KeyFrameChannel)
	case ConstructionChannel:
		r.drop(KeyFrameGauge)
	}
}
