package sim

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/inference-sim/lrtf-sim/sim/trace"
)

type drawnDecl struct {
	arrival, pages int64
}

type drawnRun struct {
	threads   int
	threshold int64
	decls     []drawnDecl
	sim       *Simulator
}

// drawRun draws a small random workload, runs it with decision tracing and
// returns the finished simulator.
func drawRun(t *rapid.T) drawnRun {
	threads := rapid.IntRange(1, 6).Draw(t, "threads")
	threshold := rapid.Int64Range(0, 6).Draw(t, "threshold")
	n := rapid.IntRange(1, 8).Draw(t, "requests")

	reg := NewRegistry()
	decls := make([]drawnDecl, n)
	for i := range n {
		arrival := rapid.Int64Range(0, 10).Draw(t, fmt.Sprintf("arrival_%d", i))
		pages := rapid.Int64Range(1, 15).Draw(t, fmt.Sprintf("pages_%d", i))
		decls[i] = drawnDecl{arrival: arrival, pages: pages}
		if _, err := reg.Register(fmt.Sprintf("r%d", i), arrival, pages); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	s, err := NewSimulator(NewSchedulerConfig(threads, threshold), reg,
		WithTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions}))
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	s.Run()
	return drawnRun{threads: threads, threshold: threshold, decls: decls, sim: s}
}

func TestProperty_PageConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		run := drawRun(t)
		slots := run.sim.Timeline().ThreadTicks()
		for _, req := range run.sim.Registry.Requests() {
			if slots[req.ID] != req.TotalPages {
				t.Fatalf("%s occupies %d slots, want %d", req.ID, slots[req.ID], req.TotalPages)
			}
		}
	})
}

func TestProperty_TerminationAndCompletion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		run := drawRun(t)
		s := run.sim

		var bound int64
		for _, d := range run.decls {
			bound = max(bound, d.arrival)
		}
		bound += s.Registry.TotalPages()
		if int64(s.Timeline().Len()) > bound {
			t.Fatalf("timeline has %d ticks, bound is %d", s.Timeline().Len(), bound)
		}

		for _, req := range s.Registry.Requests() {
			if req.Remaining != 0 || !req.CompletionSet {
				t.Fatalf("%s unfinished: %s", req.ID, req)
			}
			if req.Completion <= req.Arrival {
				t.Fatalf("%s completed at %d before arriving at %d", req.ID, req.Completion, req.Arrival)
			}
		}
		if s.Step() {
			t.Fatalf("Step returned true after Run")
		}
	})
}

func TestProperty_CompletionMatchesLastSlot(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawRun(t).sim
		last := make(map[string]int)
		first := make(map[string]int)
		for i := 0; i < s.Timeline().Len(); i++ {
			for _, id := range s.Timeline().At(i) {
				if id == IdleSlot {
					continue
				}
				if _, ok := first[id]; !ok {
					first[id] = i
				}
				last[id] = i
			}
		}
		for _, req := range s.Registry.Requests() {
			if int64(last[req.ID])+1 != req.Completion {
				t.Fatalf("%s last served at tick %d but completion is %d", req.ID, last[req.ID], req.Completion)
			}
			if int64(first[req.ID]) < req.Arrival {
				t.Fatalf("%s served at tick %d before arrival %d", req.ID, first[req.ID], req.Arrival)
			}
		}
	})
}

// Every tick grants min(threads, ready work) slots; no thread idles while
// ready work is left over.
func TestProperty_WorkConserving(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		run := drawRun(t)
		s := run.sim
		for i, tr := range s.Trace.Ticks {
			rec := s.Timeline().At(i)
			if len(rec) != run.threads {
				t.Fatalf("tick %d has %d slots, want %d", i, len(rec), run.threads)
			}
			var work int64
			for _, c := range tr.Ready {
				work += c.Remaining
			}
			want := min(int64(run.threads), work)
			if int64(rec.Busy()) != want {
				t.Fatalf("tick %d busy %d, want %d (ready work %d)", i, rec.Busy(), want, work)
			}
		}
	})
}

// When any ready request has waited at least the threshold, the first grant of
// the tick is a starvation override for the longest waiter, ties broken by
// fewer remaining pages then registration order.
func TestProperty_StarvationOverridePicksLongestWaiter(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		run := drawRun(t)
		s := run.sim
		for _, tr := range s.Trace.Ticks {
			starving := tr.Starving(run.threshold)
			overrides := 0
			for _, a := range tr.Allocations {
				if a.Reason == trace.ReasonStarvation {
					overrides++
				}
			}
			if len(starving) == 0 {
				if overrides != 0 {
					t.Fatalf("tick %d: override without a starving candidate", tr.Tick)
				}
				continue
			}
			if overrides != 1 || tr.Allocations[0].Reason != trace.ReasonStarvation {
				t.Fatalf("tick %d: want exactly one leading override, got %+v", tr.Tick, tr.Allocations)
			}

			want := starving[0]
			for _, c := range starving[1:] {
				if c.WaitingTime > want.WaitingTime ||
					(c.WaitingTime == want.WaitingTime && c.Remaining < want.Remaining) ||
					(c.WaitingTime == want.WaitingTime && c.Remaining == want.Remaining &&
						s.Registry.Get(c.RequestID).index < s.Registry.Get(want.RequestID).index) {
					want = c
				}
			}
			got := tr.Allocations[0]
			if got.RequestID != want.RequestID {
				t.Fatalf("tick %d: override went to %s, want %s", tr.Tick, got.RequestID, want.RequestID)
			}
			if got.Threads != min(int64(run.threads), want.Remaining) {
				t.Fatalf("tick %d: override granted %d threads, want %d", tr.Tick, got.Threads, min(int64(run.threads), want.Remaining))
			}
		}
	})
}

// A served request's wait resets; an unserved ready request's wait grows by one.
func TestProperty_WaitingTimeAccrual(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawRun(t).sim
		ticks := s.Trace.Ticks
		for i := 0; i+1 < len(ticks); i++ {
			served := make(map[string]bool)
			for _, a := range ticks[i].Allocations {
				served[a.RequestID] = true
			}
			prev := make(map[string]int64)
			for _, c := range ticks[i].Ready {
				prev[c.RequestID] = c.WaitingTime
			}
			for _, c := range ticks[i+1].Ready {
				before, ok := prev[c.RequestID]
				if !ok {
					continue
				}
				want := before + 1
				if served[c.RequestID] {
					want = 1
				}
				if c.WaitingTime != want {
					t.Fatalf("tick %d: %s waited %d, want %d", ticks[i+1].Tick, c.RequestID, c.WaitingTime, want)
				}
			}
		}
	})
}

func TestProperty_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		run := drawRun(t)
		reg := NewRegistry()
		for i, d := range run.decls {
			if _, err := reg.Register(fmt.Sprintf("r%d", i), d.arrival, d.pages); err != nil {
				t.Fatalf("Register: %v", err)
			}
		}
		again, err := NewSimulator(NewSchedulerConfig(run.threads, run.threshold), reg)
		if err != nil {
			t.Fatalf("NewSimulator: %v", err)
		}
		again.Run()

		a, b := run.sim.Timeline().Records(), again.Timeline().Records()
		if len(a) != len(b) {
			t.Fatalf("timeline lengths differ: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if TickRecord(a[i]).String() != TickRecord(b[i]).String() {
				t.Fatalf("tick %d differs: %v vs %v", i, a[i], b[i])
			}
		}
	})
}
