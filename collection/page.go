// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package collection

// Page selects one slice of a collection listing.  Pages are
// numbered from 1.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Size is the number of records per page.
	Size int
}

// DefaultPage is the page used when a caller supplies no parameters.
var DefaultPage = Page{Number: 1, Size: 10}

// Validate checks that both parameters are at least 1.
func (p Page) Validate() error {
	if p.Number < 1 || p.Size < 1 {
		return ErrBadPage{Reason: "page/size must be more than 0"}
	}
	return nil
}

// Bounds clips the page onto a collection of n records, returning
// half-open slice bounds.  Pages past the end come back empty.
func (p Page) Bounds(n int) (lo, hi int) {
	lo = (p.Number - 1) * p.Size
	hi = lo + p.Size
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}
