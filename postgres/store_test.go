// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinod-kayartaya/go-collection/collection/storetest"
)

// Suite is the per-backend generic test suite.  It needs a real
// PostgreSQL server: set GO_COLLECTION_POSTGRES to a libpq
// connection string to run it, otherwise the whole suite is skipped.
type Suite struct {
	storetest.Suite
}

// SetupSuite does global setup for the test suite.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	store, err := NewWithClock(os.Getenv("GO_COLLECTION_POSTGRES"), s.Clock)
	s.Require().NoError(err)
	s.Store = store
}

// TestStore runs the generic store tests against a PostgreSQL
// backend.
func TestStore(t *testing.T) {
	if os.Getenv("GO_COLLECTION_POSTGRES") == "" {
		t.Skip("set GO_COLLECTION_POSTGRES to run PostgreSQL tests")
	}
	suite.Run(t, &Suite{})
}
