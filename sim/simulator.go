// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/lrtf-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, the request
// registry, and the timeline produced by the Collaborative LRTF policy.
//
// Each tick it accrues waiting time for every ready request, serves at most
// one starving request with up to all threads, then drains the remaining
// threads into the ready set shortest-remaining first. A Simulator is not
// safe for concurrent use; independent runs need independent instances.
type Simulator struct {
	Clock    int64
	Config   SchedulerConfig
	Registry *Registry
	Metrics  *Metrics
	// Trace is nil unless enabled through WithTrace.
	Trace *trace.SimulationTrace

	timeline *Timeline
	// arrivals holds requests that have not reached their arrival tick.
	// Built on the first Step so that registrations made after construction are seen.
	arrivals *ArrivalQueue
}

// Option configures optional Simulator behavior.
type Option func(*Simulator)

// WithTrace enables decision tracing at the given level.
func WithTrace(cfg trace.TraceConfig) Option {
	return func(sim *Simulator) {
		if cfg.Enabled() {
			sim.Trace = trace.NewSimulationTrace(cfg)
		}
	}
}

// NewSimulator validates cfg and creates a Simulator over reg.
// Returns ErrInvalidConfig if cfg is invalid or reg is nil.
func NewSimulator(cfg SchedulerConfig, reg *Registry, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("%w: registry must not be nil", ErrInvalidConfig)
	}
	s := &Simulator{
		Clock:    0,
		Config:   cfg,
		Registry: reg,
		Metrics:  NewMetrics(),
		timeline: NewTimeline(cfg.Threads),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Timeline returns the timeline recorded so far. Only complete after Run returns.
func (sim *Simulator) Timeline() *Timeline {
	return sim.timeline
}

// Run executes ticks from the current clock until no request has work remaining.
// Terminates within sum(TotalPages) scheduled ticks plus the idle ticks before
// the last arrival.
func (sim *Simulator) Run() {
	logrus.Infof("Starting simulation with %d threads, starvation threshold %d, %d requests",
		sim.Config.Threads, sim.Config.StarvationThreshold, sim.Registry.Len())
	for sim.Step() {
	}
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
}

// Step executes exactly one tick. Returns false, without recording a tick,
// once every request has finished.
func (sim *Simulator) Step() bool {
	if len(sim.Registry.AllUnfinished()) == 0 {
		return false
	}
	if sim.arrivals == nil {
		sim.arrivals = NewArrivalQueue(sim.Registry.Requests())
	}
	tick := sim.Clock

	for _, req := range sim.arrivals.PopArrived(tick) {
		if req.Arrival == tick {
			req.WaitingTime = 0
		}
		logrus.Debugf("[tick %07d] %s arrived with %d pages", tick, req.ID, req.TotalPages)
	}

	ready := sim.Registry.ReadyAt(tick)
	if len(ready) == 0 {
		logrus.Debugf("[tick %07d] no ready requests, all threads idle", tick)
		sim.commit(tick, idleRecord(sim.Config.Threads), nil, nil)
		return true
	}

	for _, req := range ready {
		req.WaitingTime++
	}
	orderByRemaining(ready)

	var candidates []trace.Candidate
	if sim.Trace != nil {
		candidates = make([]trace.Candidate, len(ready))
		for i, req := range ready {
			candidates[i] = trace.Candidate{RequestID: req.ID, Remaining: req.Remaining, WaitingTime: req.WaitingTime}
		}
	}

	allocs := allocate(ready, sim.Config.Threads, sim.Config.StarvationThreshold, tick)

	rec := make(TickRecord, 0, sim.Config.Threads)
	for _, a := range allocs {
		for range a.threads {
			rec = append(rec, a.req.ID)
		}
		if a.starvation {
			logrus.Debugf("[tick %07d] starvation override: %s gets %d threads", tick, a.req.ID, a.threads)
		}
		if a.req.CompletionSet && a.req.Completion == tick+1 {
			logrus.Debugf("[tick %07d] %s completed", tick, a.req.ID)
		}
	}
	for len(rec) < sim.Config.Threads {
		rec = append(rec, IdleSlot)
	}

	sim.commit(tick, rec, allocs, candidates)
	return true
}

// commit appends the record, updates metrics and trace, and advances the clock.
func (sim *Simulator) commit(tick int64, rec TickRecord, allocs []allocation, candidates []trace.Candidate) {
	sim.timeline.append(rec)
	sim.Metrics.observeTick(rec, allocs)

	if sim.Trace != nil {
		tr := trace.TickRecord{Tick: tick, Ready: candidates, Allocations: make([]trace.AllocationRecord, 0, len(allocs))}
		for _, a := range allocs {
			reason := trace.ReasonFairShare
			if a.starvation {
				reason = trace.ReasonStarvation
			}
			tr.Allocations = append(tr.Allocations, trace.AllocationRecord{
				RequestID: a.req.ID,
				Threads:   a.threads,
				Reason:    reason,
				Completed: a.req.Remaining == 0,
			})
		}
		sim.Trace.RecordTick(tr)
	}

	sim.Clock++
}

// Stats returns per-request statistics sorted by ID.
func (sim *Simulator) Stats() []RequestStats {
	return CollectStats(sim.Registry)
}
