package workload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/lrtf-sim/sim"
)

func TestGenerateDeclarations_SameSeed_Deterministic(t *testing.T) {
	g := &GenerateSpec{
		Seed: 42, Count: 50,
		Arrival: ArrivalSpec{Process: "poisson", Rate: 0.3},
		Pages:   PagesSpec{Type: "exponential", Mean: 6},
	}

	first, err := GenerateDeclarations(g)
	require.NoError(t, err)
	second, err := GenerateDeclarations(g)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateDeclarations_ArrivalsNonDecreasing_PagesPositive(t *testing.T) {
	g := &GenerateSpec{
		Seed: 3, Count: 200, IDPrefix: "r",
		Arrival: ArrivalSpec{Process: "poisson", Rate: 2, Start: 5},
		Pages:   PagesSpec{Type: "gaussian", Mean: 10, StdDev: 4, Min: 1, Max: 30},
	}

	decls, err := GenerateDeclarations(g)
	require.NoError(t, err)
	require.Len(t, decls, 200)

	assert.Equal(t, int64(5), decls[0].Arrival)
	for i, d := range decls {
		if i > 0 && d.Arrival < decls[i-1].Arrival {
			t.Errorf("arrival decreased at %d: %d < %d", i, d.Arrival, decls[i-1].Arrival)
		}
		if d.Pages < 1 || d.Pages > 30 {
			t.Errorf("pages out of range at %d: %d", i, d.Pages)
		}
	}
	assert.Equal(t, "r0", decls[0].ID)
	assert.Equal(t, "r199", decls[199].ID)
}

func TestGenerateDeclarations_ConstantArrivals_EvenlySpaced(t *testing.T) {
	g := &GenerateSpec{
		Count:   4,
		Arrival: ArrivalSpec{Process: "constant", Interval: 3, Start: 1},
		Pages:   PagesSpec{Type: "constant", Value: 2},
	}

	decls, err := GenerateDeclarations(g)
	require.NoError(t, err)

	want := []Declaration{
		{ID: "request_0", Arrival: 1, Pages: 2},
		{ID: "request_1", Arrival: 4, Pages: 2},
		{ID: "request_2", Arrival: 7, Pages: 2},
		{ID: "request_3", Arrival: 10, Pages: 2},
	}
	assert.Equal(t, want, decls)
}

func TestWorkloadSpec_Declarations_ExplicitThenGenerated(t *testing.T) {
	spec := ScenarioStarvation(1)

	decls, err := spec.Declarations()
	require.NoError(t, err)

	require.Len(t, decls, 11)
	assert.Equal(t, "big", decls[0].ID)
	assert.Equal(t, "small_0", decls[1].ID)
}

func TestPopulate_DuplicateID_ReturnsRegistryError(t *testing.T) {
	reg := sim.NewRegistry()
	decls := []Declaration{{ID: "A", Arrival: 0, Pages: 1}, {ID: "A", Arrival: 2, Pages: 1}}

	err := Populate(reg, decls)

	if !errors.Is(err, sim.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	assert.Equal(t, 1, reg.Len())
}

func TestParseRequestFlag(t *testing.T) {
	tests := []struct {
		value   string
		want    Declaration
		wantErr bool
	}{
		{"A:0:10", Declaration{ID: "A", Arrival: 0, Pages: 10}, false},
		{"job-7:12:3", Declaration{ID: "job-7", Arrival: 12, Pages: 3}, false},
		{"A:0", Declaration{}, true},
		{"A:x:10", Declaration{}, true},
		{"A:0:ten", Declaration{}, true},
		{"A:0:1:2", Declaration{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseRequestFlag(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
