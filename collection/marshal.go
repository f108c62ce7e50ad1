// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package collection

import (
	"fmt"
)

// MarshalText returns a string representing a field kind.
func (kind FieldKind) MarshalText() ([]byte, error) {
	switch kind {
	case StringField:
		return []byte("string"), nil
	case NumberField:
		return []byte("number"), nil
	default:
		return nil, fmt.Errorf("invalid field kind (marshal, %+v)", kind)
	}
}

// UnmarshalText populates a field kind from a string.
func (kind *FieldKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "string", "":
		*kind = StringField
	case "number":
		*kind = NumberField
	default:
		return fmt.Errorf("invalid field kind (unmarshal, %+v)", string(text))
	}
	return nil
}

// MarshalText returns a string representing a field format.
func (format Format) MarshalText() ([]byte, error) {
	switch format {
	case FormatNone:
		return []byte(""), nil
	case FormatEmail:
		return []byte("email"), nil
	default:
		return nil, fmt.Errorf("invalid format (marshal, %+v)", format)
	}
}

// UnmarshalText populates a field format from a string.
func (format *Format) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*format = FormatNone
	case "email":
		*format = FormatEmail
	default:
		return fmt.Errorf("invalid format (unmarshal, %+v)", string(text))
	}
	return nil
}

// MarshalText returns a string representing an identity kind.
func (kind IdentityKind) MarshalText() ([]byte, error) {
	switch kind {
	case SerialIdentity:
		return []byte("serial"), nil
	case TokenIdentity:
		return []byte("token"), nil
	default:
		return nil, fmt.Errorf("invalid identity kind (marshal, %+v)", kind)
	}
}

// UnmarshalText populates an identity kind from a string.
func (kind *IdentityKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "serial", "":
		*kind = SerialIdentity
	case "token":
		*kind = TokenIdentity
	default:
		return fmt.Errorf("invalid identity kind (unmarshal, %+v)", string(text))
	}
	return nil
}
