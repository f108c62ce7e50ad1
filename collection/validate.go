// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package collection

// This file holds the validation pipeline shared by all backends.
// The order matters and is part of the contract: presence first,
// then per-field value checks, then (in the backend, with the store
// contents in view) uniqueness.  The first failing stage wins and
// nothing is written.

import (
	"github.com/badoux/checkmail"
)

// CheckPresence verifies that every required field is present and
// non-null in input.  On failure it returns an ErrMissingFields
// naming all missing fields, in declaration order.
func (s Schema) CheckPresence(input map[string]interface{}) error {
	var missing []string
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		if v, present := input[f.Name]; !present || v == nil {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return ErrMissingFields{Fields: missing}
	}
	return nil
}

// CheckValues verifies the scalar kind, and then any declared
// format, of every declared field that is present and non-null in
// input.  Undeclared fields are ignored; projection will drop them.
func (s Schema) CheckValues(input map[string]interface{}) error {
	for _, f := range s.Fields {
		v, present := input[f.Name]
		if !present || v == nil {
			continue
		}
		if err := f.checkKind(v); err != nil {
			return err
		}
		if err := f.checkFormat(v, s.CheckDeliverability); err != nil {
			return err
		}
	}
	return nil
}

func (f Field) checkKind(v interface{}) error {
	switch f.Kind {
	case StringField:
		if _, ok := v.(string); !ok {
			return ErrBadValue{Field: f.Name, Reason: "expected a string"}
		}
	case NumberField:
		if _, ok := toFloat(v); !ok {
			return ErrBadValue{Field: f.Name, Reason: "expected a number"}
		}
	}
	return nil
}

func (f Field) checkFormat(v interface{}, deliverability bool) error {
	if f.Format != FormatEmail {
		return nil
	}
	// checkKind has already established this is a string.
	addr, _ := v.(string)
	if err := checkmail.ValidateFormat(addr); err != nil {
		return ErrBadValue{Field: f.Name, Reason: err.Error()}
	}
	if deliverability {
		if err := checkmail.ValidateHost(addr); err != nil {
			return ErrBadValue{Field: f.Name, Reason: err.Error()}
		}
	}
	return nil
}

// Project copies exactly the declared fields out of input into a new
// record.  Declared fields absent from input come through as nil;
// anything else in input, including a client-supplied identity, is
// silently dropped.
func (s Schema) Project(input map[string]interface{}) Record {
	out := make(Record, len(s.Fields)+1)
	for _, f := range s.Fields {
		out[f.Name] = input[f.Name]
	}
	return out
}

// PrepareCreate runs the create pipeline short of the uniqueness
// check: presence, then value checks, then projection.  The caller
// (a backend) checks uniqueness against the live collection and
// assigns the identity.
func (s Schema) PrepareCreate(input map[string]interface{}) (Record, error) {
	if err := s.CheckPresence(input); err != nil {
		return nil, err
	}
	if err := s.CheckValues(input); err != nil {
		return nil, err
	}
	return s.Project(input), nil
}

// PrepareUpdate validates input for a full replacement.  Every
// declared field is taken from input unconditionally, so fields the
// caller omitted come back nil and will clear the stored value.
func (s Schema) PrepareUpdate(input map[string]interface{}) (Record, error) {
	if err := s.CheckValues(input); err != nil {
		return nil, err
	}
	return s.Project(input), nil
}

// PreparePatch validates input for a partial update, returning only
// the declared fields that are present and non-null.  Null and
// absent fields are skipped rather than cleared.
func (s Schema) PreparePatch(input map[string]interface{}) (map[string]interface{}, error) {
	changes := make(map[string]interface{})
	for _, f := range s.Fields {
		if v, present := input[f.Name]; present && v != nil {
			changes[f.Name] = v
		}
	}
	if err := s.CheckValues(changes); err != nil {
		return nil, err
	}
	return changes, nil
}

// CheckUnique scans existing records for a conflict with candidate in
// any unique field, skipping the record whose identity is excludeID
// (so a record may keep its own values on update).  Backends with a
// query engine may run the equivalent check as a WHERE lookup
// instead.
func (s Schema) CheckUnique(existing []Record, candidate map[string]interface{}, excludeID string) error {
	for _, f := range s.UniqueFields() {
		v, present := candidate[f.Name]
		if !present || v == nil {
			continue
		}
		for _, rec := range existing {
			if excludeID != "" && rec.ID() == excludeID {
				continue
			}
			if valuesEqual(rec[f.Name], v) {
				return ErrDuplicateValue{Field: f.Name, Value: v}
			}
		}
	}
	return nil
}
