package calc

import (
	"encoding/json"
	"math"
)

// Quantity is a computed number that may be not-a-number when its inputs are
// missing or invalid. It encodes NaN and infinities as JSON null.
type Quantity float64

// NaN is the sentinel for a quantity that could not be computed.
func NaN() Quantity { return Quantity(math.NaN()) }

// Valid reports whether q holds a finite number.
func (q Quantity) Valid() bool {
	f := float64(q)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float returns q as a float64.
func (q Quantity) Float() float64 { return float64(q) }

// MarshalJSON implements json.Marshaler.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(q))
}

// UnmarshalJSON implements json.Unmarshaler; null decodes to NaN.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = NaN()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*q = Quantity(f)
	return nil
}
