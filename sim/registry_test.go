package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register_ValidDeclaration_InitializesState(t *testing.T) {
	reg := NewRegistry()

	req, err := reg.Register("A", 2, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), req.Remaining)
	assert.Equal(t, int64(0), req.WaitingTime)
	assert.False(t, req.CompletionSet)
	assert.Same(t, req, reg.Get("A"))
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Register_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		arrival int64
		pages   int64
		want    error
	}{
		{"duplicate id", "A", 0, 1, ErrDuplicateRequest},
		{"empty id", "", 0, 1, ErrInvalidRequest},
		{"zero pages", "B", 0, 0, ErrInvalidRequest},
		{"negative pages", "B", 0, -3, ErrInvalidRequest},
		{"negative arrival", "B", -1, 1, ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a registry already holding A
			reg := NewRegistry()
			mustRegister(t, reg, "A", 0, 1)

			// WHEN an invalid declaration is registered
			req, err := reg.Register(tt.id, tt.arrival, tt.pages)

			// THEN it is rejected and nothing is added
			if !errors.Is(err, tt.want) {
				t.Fatalf("Register error = %v, want %v", err, tt.want)
			}
			assert.Nil(t, req)
			assert.Equal(t, 1, reg.Len())
		})
	}
}

func TestRegistry_ReadyAt_FiltersByArrivalAndRemaining(t *testing.T) {
	reg := NewRegistry()
	a := mustRegister(t, reg, "A", 0, 5)
	b := mustRegister(t, reg, "B", 2, 5)
	c := mustRegister(t, reg, "C", 1, 5)
	c.Remaining = 0

	assert.Equal(t, []*Request{a}, reg.ReadyAt(0))
	assert.Equal(t, []*Request{a}, reg.ReadyAt(1), "finished C excluded")
	assert.Equal(t, []*Request{a, b}, reg.ReadyAt(2))
}

func TestRegistry_AllUnfinished(t *testing.T) {
	reg := NewRegistry()
	a := mustRegister(t, reg, "A", 0, 5)
	mustRegister(t, reg, "B", 9, 1).Remaining = 0

	assert.Equal(t, []*Request{a}, reg.AllUnfinished())

	a.Remaining = 0
	assert.Empty(t, reg.AllUnfinished())
}

func TestRegistry_ArrivalsAt(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "A", 0, 1)
	b := mustRegister(t, reg, "B", 3, 1)
	c := mustRegister(t, reg, "C", 3, 1)

	assert.Equal(t, []*Request{b, c}, reg.ArrivalsAt(3))
	assert.Empty(t, reg.ArrivalsAt(1))
}

func TestRegistry_Requests_RegistrationOrderCopy(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, "Z", 0, 1)
	mustRegister(t, reg, "A", 0, 1)

	reqs := reg.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "Z", reqs[0].ID)
	assert.Equal(t, "A", reqs[1].ID)

	reqs[0] = nil
	assert.NotNil(t, reg.Requests()[0], "mutating the returned slice must not affect the registry")
	assert.Equal(t, int64(2), reg.TotalPages())
	assert.Nil(t, reg.Get("missing"))
}
