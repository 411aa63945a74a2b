package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTicks          int              `json:"total_ticks" yaml:"total_ticks"`
	IdleTicks           int              `json:"idle_ticks" yaml:"idle_ticks"` // ticks with an empty ready set
	StarvationOverrides int              `json:"starvation_overrides" yaml:"starvation_overrides"`
	MaxWaitingTime      int64            `json:"max_waiting_time" yaml:"max_waiting_time"` // largest post-accrual waiting time observed
	ThreadsByRequest    map[string]int64 `json:"threads_by_request" yaml:"threads_by_request"`
	OverridesByRequest  map[string]int   `json:"overrides_by_request" yaml:"overrides_by_request"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ThreadsByRequest:   make(map[string]int64),
		OverridesByRequest: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalTicks = len(st.Ticks)
	for _, tick := range st.Ticks {
		if len(tick.Ready) == 0 {
			summary.IdleTicks++
		}
		for _, c := range tick.Ready {
			if c.WaitingTime > summary.MaxWaitingTime {
				summary.MaxWaitingTime = c.WaitingTime
			}
		}
		for _, a := range tick.Allocations {
			summary.ThreadsByRequest[a.RequestID] += a.Threads
			if a.Reason == ReasonStarvation {
				summary.StarvationOverrides++
				summary.OverridesByRequest[a.RequestID]++
			}
		}
	}

	return summary
}
