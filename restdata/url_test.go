// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct{ plain, encoded string }{
		{"customers", "customers"},
		{"5a0b2e1c-0b6a-4a3e-9f6e-0c8f4f2d1a7b", "5a0b2e1c-0b6a-4a3e-9f6e-0c8f4f2d1a7b"},
		{"", "-"},
		{"-", "-LQ"},
		{"\u0000", "-AA"},
		{"white space", "-d2hpdGUgc3BhY2U"},
	}
	for _, test := range tests {
		enc := MaybeEncodeName(test.plain)
		if enc != test.encoded {
			t.Errorf("MaybeEncodeName(%q) => %q, want %q",
				test.plain, enc, test.encoded)
		}

		dec, err := MaybeDecodeName(test.encoded)
		if err != nil {
			t.Errorf("MaybeDecodeName(%q) => error %v",
				test.encoded, err)
		} else if dec != test.plain {
			t.Errorf("MaybeDecodeName(%q) => %q, want %q",
				test.encoded, dec, test.plain)
		}
	}
}

func TestDecodeBadBase64(t *testing.T) {
	if _, err := MaybeDecodeName("-???"); err == nil {
		t.Error("MaybeDecodeName(\"-???\") => no error")
	}
}
