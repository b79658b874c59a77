// Package record holds the stored shape of a conveyor configuration and the
// migrator that upgrades legacy records to the current schema.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrMalformed         = errors.New("malformed configuration record")
	ErrUnsupportedSchema = errors.New("unsupported schema version")
)

// Record is a configuration record as persisted: a flat JSON object keyed by
// field name.
type Record map[string]any

// Parse decodes a JSON object into a Record.
func Parse(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case Record:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}

// Has reports whether key is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Float returns the numeric value at key. Absent, null and non-numeric
// values yield NaN and false.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	default:
		return math.NaN(), false
	}
}

// Num is Float without the presence flag.
func (r Record) Num(key string) float64 {
	f, _ := r.Float(key)
	return f
}

// String returns the trimmed string at key, or "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return strings.TrimSpace(s)
}

// Bool returns the boolean at key; anything else is false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

func (r Record) positive(key string) bool {
	f, ok := r.Float(key)
	return ok && f > 0
}

func (r Record) drop(keys ...string) {
	for _, k := range keys {
		delete(r, k)
	}
}
