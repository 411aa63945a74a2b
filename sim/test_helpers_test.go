package sim

import (
	"testing"

	"github.com/inference-sim/lrtf-sim/sim/internal/testutil"
)

// mustRegister registers a request or fails the test.
func mustRegister(t *testing.T, reg *Registry, id string, arrival, pages int64) *Request {
	t.Helper()
	req, err := reg.Register(id, arrival, pages)
	if err != nil {
		t.Fatalf("Register(%q, %d, %d): %v", id, arrival, pages, err)
	}
	return req
}

// mustSimulator builds a simulator or fails the test.
func mustSimulator(t *testing.T, threads int, threshold int64, reg *Registry, opts ...Option) *Simulator {
	t.Helper()
	s, err := NewSimulator(NewSchedulerConfig(threads, threshold), reg, opts...)
	if err != nil {
		t.Fatalf("NewSimulator(%d, %d): %v", threads, threshold, err)
	}
	return s
}

// registryFromGolden populates a registry from a golden test case.
func registryFromGolden(t *testing.T, tc testutil.GoldenTestCase) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, r := range tc.Requests {
		mustRegister(t, reg, r.ID, r.Arrival, r.Pages)
	}
	return reg
}

// exampleRegistry returns the four-request mix: A(0,10) B(1,3) C(2,8) D(4,20).
func exampleRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	mustRegister(t, reg, "A", 0, 10)
	mustRegister(t, reg, "B", 1, 3)
	mustRegister(t, reg, "C", 2, 8)
	mustRegister(t, reg, "D", 4, 20)
	return reg
}
