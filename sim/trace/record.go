// Package trace provides decision-trace recording for scheduling analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// AllocationReason names the rule that granted threads to a request.
type AllocationReason string

const (
	// ReasonStarvation marks the single override granted to the most starving request.
	ReasonStarvation AllocationReason = "starvation"
	// ReasonFairShare marks threads granted in shortest-remaining order.
	ReasonFairShare AllocationReason = "fair-share"
)

// Candidate captures a ready request's state after waiting-time accrual,
// before any thread is granted in that tick.
type Candidate struct {
	RequestID   string `json:"request_id" yaml:"request_id"`
	Remaining   int64  `json:"remaining" yaml:"remaining"`
	WaitingTime int64  `json:"waiting_time" yaml:"waiting_time"`
}

// AllocationRecord captures threads granted to one request in one tick.
type AllocationRecord struct {
	RequestID string           `json:"request_id" yaml:"request_id"`
	Threads   int64            `json:"threads" yaml:"threads"`
	Reason    AllocationReason `json:"reason" yaml:"reason"`
	Completed bool             `json:"completed" yaml:"completed"` // last page drained this tick
}

// TickRecord captures every decision made in one scheduled tick.
// Idle ticks with an empty ready set are recorded with no candidates.
type TickRecord struct {
	Tick        int64              `json:"tick" yaml:"tick"`
	Ready       []Candidate        `json:"ready" yaml:"ready"`             // ordered shortest remaining first
	Allocations []AllocationRecord `json:"allocations" yaml:"allocations"` // in grant order
}

// Starving returns the candidates whose waiting time reached threshold.
func (tr TickRecord) Starving(threshold int64) []Candidate {
	var out []Candidate
	for _, c := range tr.Ready {
		if c.WaitingTime >= threshold {
			out = append(out, c)
		}
	}
	return out
}
