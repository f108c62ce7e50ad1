// Copyright 2025 The go-collection Authors.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinod-kayartaya/go-collection/collection/storetest"
)

// Suite is the per-backend generic test suite.
type Suite struct {
	storetest.Suite
}

// SetupSuite does global setup for the test suite.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	s.Store = New()
}

// TestStore runs the generic store tests against the memory backend.
func TestStore(t *testing.T) {
	suite.Run(t, &Suite{})
}
