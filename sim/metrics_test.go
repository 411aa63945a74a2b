package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveTick(t *testing.T) {
	// GIVEN a request drained to completion by a starvation allocation and one partially served
	done := NewRequest("done", 0, 2)
	part := NewRequest("part", 0, 5)
	done.drain(2, 3)
	part.drain(1, 3)
	m := NewMetrics()

	// WHEN a busy tick and an idle tick are observed
	m.observeTick(TickRecord{"done", "done", "part"}, []allocation{
		{req: done, threads: 2, starvation: true},
		{req: part, threads: 1},
	})
	m.observeTick(idleRecord(3), nil)

	// THEN counters reflect both ticks
	assert.Equal(t, int64(1), m.ScheduledTicks)
	assert.Equal(t, int64(1), m.IdleTicks)
	assert.Equal(t, int64(3), m.BusySlots)
	assert.Equal(t, 1, m.CompletedRequests)
	assert.Equal(t, 1, m.StarvationOverrides)
}

func TestCollectStats_SortedByIDWithNilForUnfinished(t *testing.T) {
	reg := NewRegistry()
	z := mustRegister(t, reg, "z", 1, 1)
	mustRegister(t, reg, "a", 0, 4)
	z.drain(1, 5)

	stats := CollectStats(reg)

	require.Len(t, stats, 2)
	assert.Equal(t, "a", stats[0].ID)
	assert.Nil(t, stats[0].Completion)
	assert.Nil(t, stats[0].Turnaround)
	assert.Equal(t, "z", stats[1].ID)
	require.NotNil(t, stats[1].Completion)
	assert.Equal(t, int64(6), *stats[1].Completion)
	assert.Equal(t, int64(5), *stats[1].Turnaround)
}

func TestMetrics_Summarize_FourRequestMix(t *testing.T) {
	// GIVEN the four-request mix run to completion on 4 threads
	s := mustSimulator(t, 4, 5, exampleRegistry(t))
	s.Run()

	// WHEN the run is summarized
	sum := s.Metrics.Summarize(s.Stats(), s.Config.Threads)

	// THEN makespan is D's completion and every page occupied one slot
	assert.Equal(t, int64(11), sum.Makespan)
	assert.Equal(t, 4, sum.CompletedRequests)
	assert.Equal(t, int64(41), sum.BusySlots)
	assert.Equal(t, int64(44), sum.TotalSlots)
	assert.InDelta(t, 41.0/44.0, sum.Utilization, 1e-9)
	// turnarounds 1, 4, 4, 7
	assert.Equal(t, 4.0, sum.MeanTurnaround)
	assert.Equal(t, int64(7), sum.MaxTurnaround)
	assert.Equal(t, 4.0, sum.P50Turnaround)
}

func TestMetrics_Summarize_Empty(t *testing.T) {
	sum := NewMetrics().Summarize(nil, 4)

	assert.Equal(t, Summary{}, sum)
}
