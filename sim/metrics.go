// Tracks simulation-wide and per-request scheduling statistics.

package sim

import "sort"

// Metrics aggregates statistics about the simulation as ticks are committed.
// Useful for evaluating the policy and debugging behavior over time.
type Metrics struct {
	ScheduledTicks      int64 // Ticks with a non-empty ready set
	IdleTicks           int64 // Ticks with an empty ready set
	BusySlots           int64 // Integral of busy threads over time
	CompletedRequests   int   // Number of requests completed
	StarvationOverrides int   // Ticks on which the starvation rule fired
	SimEndedTime        int64 // Clock when Run returned
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) observeTick(rec TickRecord, allocs []allocation) {
	if len(allocs) == 0 {
		m.IdleTicks++
	} else {
		m.ScheduledTicks++
	}
	m.BusySlots += int64(rec.Busy())
	for _, a := range allocs {
		if a.starvation {
			m.StarvationOverrides++
		}
		if a.req.Remaining == 0 {
			m.CompletedRequests++
		}
	}
}

// RequestStats is the per-request view exposed to presentation layers.
// Completion and Turnaround are nil until the request finishes.
type RequestStats struct {
	ID         string `json:"id" yaml:"id"`
	Arrival    int64  `json:"arrival" yaml:"arrival"`
	TotalPages int64  `json:"pages" yaml:"pages"`
	Completion *int64 `json:"completion" yaml:"completion"`
	Turnaround *int64 `json:"turnaround" yaml:"turnaround"`
}

// CollectStats builds RequestStats for every request in reg, sorted by ID.
func CollectStats(reg *Registry) []RequestStats {
	reqs := reg.Requests()
	stats := make([]RequestStats, 0, len(reqs))
	for _, req := range reqs {
		s := RequestStats{ID: req.ID, Arrival: req.Arrival, TotalPages: req.TotalPages}
		if req.CompletionSet {
			completion := req.Completion
			turnaround := req.Completion - req.Arrival
			s.Completion = &completion
			s.Turnaround = &turnaround
		}
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].ID < stats[j].ID
	})
	return stats
}

// Summary condenses a finished run into headline numbers.
type Summary struct {
	Makespan            int64   `json:"makespan" yaml:"makespan"` // timeline length in ticks
	CompletedRequests   int     `json:"completed_requests" yaml:"completed_requests"`
	IdleTicks           int64   `json:"idle_ticks" yaml:"idle_ticks"`
	StarvationOverrides int     `json:"starvation_overrides" yaml:"starvation_overrides"`
	BusySlots           int64   `json:"busy_slots" yaml:"busy_slots"`
	TotalSlots          int64   `json:"total_slots" yaml:"total_slots"`
	Utilization         float64 `json:"utilization" yaml:"utilization"` // BusySlots / TotalSlots
	MeanTurnaround      float64 `json:"mean_turnaround" yaml:"mean_turnaround"`
	MaxTurnaround       int64   `json:"max_turnaround" yaml:"max_turnaround"`
	P50Turnaround       float64 `json:"p50_turnaround" yaml:"p50_turnaround"`
	P90Turnaround       float64 `json:"p90_turnaround" yaml:"p90_turnaround"`
	P99Turnaround       float64 `json:"p99_turnaround" yaml:"p99_turnaround"`
}

// Summarize computes a Summary from the metrics, the finished requests and the timeline width.
func (m *Metrics) Summarize(stats []RequestStats, threads int) Summary {
	s := Summary{
		Makespan:            m.ScheduledTicks + m.IdleTicks,
		CompletedRequests:   m.CompletedRequests,
		IdleTicks:           m.IdleTicks,
		StarvationOverrides: m.StarvationOverrides,
		BusySlots:           m.BusySlots,
	}
	s.TotalSlots = s.Makespan * int64(threads)
	if s.TotalSlots > 0 {
		s.Utilization = float64(s.BusySlots) / float64(s.TotalSlots)
	}

	turnarounds := make([]int64, 0, len(stats))
	for _, st := range stats {
		if st.Turnaround != nil {
			turnarounds = append(turnarounds, *st.Turnaround)
		}
	}
	if len(turnarounds) > 0 {
		sort.Slice(turnarounds, func(i, j int) bool { return turnarounds[i] < turnarounds[j] })
		s.MeanTurnaround = CalculateMean(turnarounds)
		s.MaxTurnaround = turnarounds[len(turnarounds)-1]
		s.P50Turnaround = CalculatePercentile(turnarounds, 50)
		s.P90Turnaround = CalculatePercentile(turnarounds, 90)
		s.P99Turnaround = CalculatePercentile(turnarounds, 99)
	}
	return s
}
