// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package collection

// FieldKind describes the scalar type of a declared field.
type FieldKind int

const (
	// StringField holds a string value.
	StringField FieldKind = iota

	// NumberField holds a numeric value.  JSON and YAML decoders
	// hand numbers over as float64 or as one of the integer
	// types; all of those are accepted.
	NumberField
)

// Format names an additional syntactic constraint on a string field,
// beyond its scalar kind.
type Format int

const (
	// FormatNone applies no extra constraint.
	FormatNone Format = iota

	// FormatEmail requires an RFC 5322 address; if the schema
	// also enables deliverability checks, the address's host must
	// resolve and accept mail.
	FormatEmail
)

// IdentityKind describes how a collection assigns record identities.
type IdentityKind int

const (
	// SerialIdentity assigns increasing integers, starting at one
	// more than the largest identity already present (or 1 for an
	// empty collection).  Identities are never reassigned.
	SerialIdentity IdentityKind = iota

	// TokenIdentity assigns random 128-bit UUIDs.
	TokenIdentity
)

// Field declares one named field of a schema.
type Field struct {
	// Name is the field's key in record maps and wire payloads.
	Name string `mapstructure:"name" yaml:"name"`

	// Kind is the field's scalar type.
	Kind FieldKind `mapstructure:"kind" yaml:"kind"`

	// Required marks fields that must be present and non-null
	// when a record is created.
	Required bool `mapstructure:"required" yaml:"required"`

	// Unique marks fields whose value may appear in at most one
	// record of the collection.
	Unique bool `mapstructure:"unique" yaml:"unique"`

	// Format names an extra syntactic constraint, if any.
	Format Format `mapstructure:"format" yaml:"format"`
}

// Schema statically declares the shape of one collection.  Fields not
// declared here never survive projection, so a client cannot smuggle
// its own "id" or arbitrary extra keys into the store.
type Schema struct {
	// Name identifies the collection, e.g. "customers".  It
	// appears in URLs and must be non-empty.
	Name string `mapstructure:"name" yaml:"name"`

	// Identity selects how record identities are assigned.
	Identity IdentityKind `mapstructure:"identity" yaml:"identity"`

	// Fields lists the declared fields, in their preferred
	// presentation order.
	Fields []Field `mapstructure:"fields" yaml:"fields"`

	// CheckDeliverability extends FormatEmail validation with a
	// host lookup.  Leave it off in tests and offline setups.
	CheckDeliverability bool `mapstructure:"check_deliverability" yaml:"check_deliverability"`
}

// Field returns the declared field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields returns the names of all required fields, in
// declaration order.
func (s Schema) RequiredFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// UniqueFields returns all fields with a uniqueness constraint, in
// declaration order.
func (s Schema) UniqueFields() []Field {
	var fields []Field
	for _, f := range s.Fields {
		if f.Unique {
			fields = append(fields, f)
		}
	}
	return fields
}
