// Defines the Request struct that models a single unit of schedulable work.
// Tracks arrival, total and remaining pages, waiting time, and completion tick.

package sim

import (
	"fmt"
)

// RequestState represents the lifecycle state of a request at a given tick.
type RequestState string

const (
	StatePending   RequestState = "pending"   // not yet arrived
	StateReady     RequestState = "ready"     // arrived, work remaining
	StateCompleted RequestState = "completed" // all pages drained
)

// Request models a single request's lifecycle in the simulation.
// Identity, Arrival and TotalPages are fixed at registration; Remaining,
// WaitingTime and Completion are mutated only by the Simulator.
type Request struct {
	ID         string // Unique, caller-assigned identifier
	Arrival    int64  // Tick at which the request becomes eligible to run
	TotalPages int64  // Total work units; 1 page = 1 thread-tick

	Remaining   int64 // Pages still to be drained
	WaitingTime int64 // Consecutive ready ticks without a thread

	CompletionSet bool  // Tracks whether Completion has been set
	Completion    int64 // First tick index at which Remaining reached 0, plus one

	index int // registration order within the owning Registry
}

// NewRequest creates a Request with Remaining = totalPages and no completion.
// Panics if id is empty, arrival is negative, or totalPages is not positive;
// Registry.Register validates these first and returns errors instead.
func NewRequest(id string, arrival, totalPages int64) *Request {
	if id == "" {
		panic("NewRequest: id must not be empty")
	}
	if arrival < 0 {
		panic(fmt.Sprintf("NewRequest: arrival must be non-negative, got %d", arrival))
	}
	if totalPages <= 0 {
		panic(fmt.Sprintf("NewRequest: totalPages must be positive, got %d", totalPages))
	}
	return &Request{
		ID:         id,
		Arrival:    arrival,
		TotalPages: totalPages,
		Remaining:  totalPages,
	}
}

// ReadyAt reports whether the request has arrived by tick and still has work.
func (req *Request) ReadyAt(tick int64) bool {
	return req.Arrival <= tick && req.Remaining > 0
}

// StateAt returns the lifecycle state of the request as seen at tick.
func (req *Request) StateAt(tick int64) RequestState {
	switch {
	case req.Remaining == 0:
		return StateCompleted
	case req.Arrival > tick:
		return StatePending
	default:
		return StateReady
	}
}

// Turnaround returns Completion - Arrival, and false if the request has not completed.
func (req *Request) Turnaround() (int64, bool) {
	if !req.CompletionSet {
		return 0, false
	}
	return req.Completion - req.Arrival, true
}

// drain assigns threads to the request for the tick being scheduled.
// Resets the waiting counter and records completion when the last page drains.
func (req *Request) drain(threads, tick int64) {
	if threads <= 0 || threads > req.Remaining {
		panic(fmt.Sprintf("drain: request %s given %d threads with %d pages remaining", req.ID, threads, req.Remaining))
	}
	req.Remaining -= threads
	req.WaitingTime = 0
	if req.Remaining == 0 {
		if req.CompletionSet {
			panic(fmt.Sprintf("drain: completion of request %s already set to %d", req.ID, req.Completion))
		}
		req.Completion = tick + 1
		req.CompletionSet = true
	}
}

// This method returns a human-readable string representation of a Request.
func (req Request) String() string {
	return fmt.Sprintf("Request: (ID: %s, Arrival: %d, Remaining: %d/%d, WaitingTime: %d)",
		req.ID, req.Arrival, req.Remaining, req.TotalPages, req.WaitingTime)
}
