// Implements the Registry, which owns every Request for the lifetime of a run.

package sim

import (
	"fmt"
	"strings"
)

// Registry holds the static declaration and mutable runtime state of every request.
// Requests live in an arena slice in registration order; byID indexes into it.
// The Simulator mutates entries in place during a run; nothing else should.
type Registry struct {
	requests []*Request
	byID     map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		requests: make([]*Request, 0),
		byID:     make(map[string]int),
	}
}

// Register declares a new request with Remaining = totalPages, WaitingTime = 0
// and no completion. Returns ErrDuplicateRequest if id is already registered and
// ErrInvalidRequest if id is empty, arrival is negative or totalPages <= 0.
func (r *Registry) Register(id string, arrival, totalPages int64) (*Request, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id must not be empty", ErrInvalidRequest)
	}
	if _, exists := r.byID[id]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateRequest, id)
	}
	if arrival < 0 {
		return nil, fmt.Errorf("%w: request %q arrival must be non-negative, got %d", ErrInvalidRequest, id, arrival)
	}
	if totalPages <= 0 {
		return nil, fmt.Errorf("%w: request %q total pages must be positive, got %d", ErrInvalidRequest, id, totalPages)
	}
	req := NewRequest(id, arrival, totalPages)
	req.index = len(r.requests)
	r.requests = append(r.requests, req)
	r.byID[id] = req.index
	return req, nil
}

// Get returns the request registered under id, or nil.
func (r *Registry) Get(id string) *Request {
	idx, ok := r.byID[id]
	if !ok {
		return nil
	}
	return r.requests[idx]
}

// Len returns the number of registered requests.
func (r *Registry) Len() int {
	return len(r.requests)
}

// Requests returns every registered request in registration order.
// The slice is a copy; the entries are shared.
func (r *Registry) Requests() []*Request {
	out := make([]*Request, len(r.requests))
	copy(out, r.requests)
	return out
}

// ReadyAt returns the requests with Arrival <= tick and Remaining > 0, in registration order.
func (r *Registry) ReadyAt(tick int64) []*Request {
	ready := make([]*Request, 0, len(r.requests))
	for _, req := range r.requests {
		if req.ReadyAt(tick) {
			ready = append(ready, req)
		}
	}
	return ready
}

// AllUnfinished returns the requests with Remaining > 0, in registration order.
func (r *Registry) AllUnfinished() []*Request {
	unfinished := make([]*Request, 0, len(r.requests))
	for _, req := range r.requests {
		if req.Remaining > 0 {
			unfinished = append(unfinished, req)
		}
	}
	return unfinished
}

// ArrivalsAt returns the requests whose Arrival equals tick.
func (r *Registry) ArrivalsAt(tick int64) []*Request {
	var arrivals []*Request
	for _, req := range r.requests {
		if req.Arrival == tick {
			arrivals = append(arrivals, req)
		}
	}
	return arrivals
}

// TotalPages returns the sum of TotalPages over all registered requests.
func (r *Registry) TotalPages() int64 {
	var total int64
	for _, req := range r.requests {
		total += req.TotalPages
	}
	return total
}

func (r *Registry) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, req := range r.requests {
		sb.WriteString(fmt.Sprint(*req))
		if i < len(r.requests)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
