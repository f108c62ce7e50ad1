// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package collection

import (
	"fmt"
	"strconv"
)

// IDField is the reserved key under which a record's server-assigned
// identity is stored.  It is never part of a schema's declared fields
// and client-supplied values for it are dropped during projection.
const IDField = "id"

// Record is one entity instance: a mapping from declared field names
// to scalar values, plus the identity key.  Optional fields that were
// never supplied are present with a nil value, so every record of a
// collection has the same key set.
type Record map[string]interface{}

// ID returns the record's identity as a string.  Serial identities
// are stored as integers but still compare and print as their
// decimal form.
func (r Record) ID() string {
	switch v := r[IDField].(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Clone returns a shallow copy of the record.  Values are scalars, so
// a shallow copy is a full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// valuesEqual compares two scalar field values.  Numeric values
// compare by magnitude regardless of their concrete Go type, since
// decoders variously produce int, int64, and float64.
func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return af == bf
	}
	return a == b
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
