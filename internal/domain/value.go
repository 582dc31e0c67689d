package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a metric value as published upstream: either a scalar or a
// breakdown keyed by sub-entity (chain, version, ...) of arbitrary depth.
type Value struct {
	scalar    float64
	breakdown map[string]Value
}

// Scalar creates a scalar value
func Scalar(v float64) Value {
	return Value{scalar: v}
}

// Breakdown creates a breakdown value
func Breakdown(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{breakdown: m}
}

// IsBreakdown reports whether the value carries per-sub-entity data
func (v Value) IsBreakdown() bool {
	return v.breakdown != nil
}

// Entries returns the breakdown entries, nil for scalars
func (v Value) Entries() map[string]Value {
	return v.breakdown
}

// Total sums every leaf of the value.
// Non-finite leaves inside a breakdown are skipped; a non-finite scalar is returned as is.
func (v Value) Total() float64 {
	if !v.IsBreakdown() {
		return v.scalar
	}

	var total float64
	for _, child := range v.breakdown {
		t := child.Total()
		if math.IsNaN(t) || math.IsInf(t, 0) {
			continue
		}
		total += t
	}
	return total
}

// MarshalJSON encodes scalars as numbers and breakdowns as nested objects
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsBreakdown() {
		return json.Marshal(v.breakdown)
	}
	if math.IsNaN(v.scalar) || math.IsInf(v.scalar, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON decodes a number, a numeric string or a nested object.
// Anything else decodes to a NaN scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = Scalar(math.NaN())
		return nil
	}

	switch data[0] {
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		m := make(map[string]Value, len(raw))
		for key, child := range raw {
			var cv Value
			if err := cv.UnmarshalJSON(child); err != nil {
				return err
			}
			if !cv.IsBreakdown() && math.IsNaN(cv.scalar) {
				continue
			}
			m[key] = cv
		}
		*v = Breakdown(m)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			f = math.NaN()
		}
		*v = Scalar(f)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			// null, booleans and arrays are not numeric
			f = math.NaN()
		}
		*v = Scalar(f)
	}

	return nil
}
