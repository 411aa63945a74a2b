package sim

import (
	"fmt"
	"strings"
)

// IdleSlot marks a thread that ran nothing during a tick.
const IdleSlot = ""

// TickRecord holds, per thread, the ID of the request it served during one tick.
// Busy slots come first; idle slots trail.
type TickRecord []string

// Busy returns the number of non-idle slots.
func (tr TickRecord) Busy() int {
	n := 0
	for _, id := range tr {
		if id != IdleSlot {
			n++
		}
	}
	return n
}

// Count returns how many slots ran the request with the given ID.
func (tr TickRecord) Count(id string) int {
	n := 0
	for _, slot := range tr {
		if slot == id {
			n++
		}
	}
	return n
}

func (tr TickRecord) String() string {
	slots := make([]string, len(tr))
	for i, id := range tr {
		if id == IdleSlot {
			slots[i] = "."
		} else {
			slots[i] = id
		}
	}
	return "[" + strings.Join(slots, " ") + "]"
}

// Timeline is the append-only, chronological sequence of tick records of one run.
// Record i describes tick i. Every record has exactly Threads slots.
type Timeline struct {
	threads int
	records []TickRecord
}

// NewTimeline creates an empty Timeline for the given thread count.
func NewTimeline(threads int) *Timeline {
	return &Timeline{threads: threads, records: make([]TickRecord, 0)}
}

// Threads returns the fixed record width.
func (tl *Timeline) Threads() int {
	return tl.threads
}

// Len returns the number of recorded ticks.
func (tl *Timeline) Len() int {
	return len(tl.records)
}

// At returns a copy of the record for tick i.
func (tl *Timeline) At(i int) TickRecord {
	out := make(TickRecord, len(tl.records[i]))
	copy(out, tl.records[i])
	return out
}

// Records returns a deep copy of all tick records, as plain string slices.
func (tl *Timeline) Records() [][]string {
	out := make([][]string, len(tl.records))
	for i, rec := range tl.records {
		out[i] = append([]string(nil), rec...)
	}
	return out
}

// ThreadTicks returns, per request ID, the number of slots it occupied across the timeline.
func (tl *Timeline) ThreadTicks() map[string]int64 {
	counts := make(map[string]int64)
	for _, rec := range tl.records {
		for _, id := range rec {
			if id != IdleSlot {
				counts[id]++
			}
		}
	}
	return counts
}

// append adds the next record. Panics if its width differs from the thread count.
func (tl *Timeline) append(rec TickRecord) {
	if len(rec) != tl.threads {
		panic(fmt.Sprintf("Timeline.append: record has %d slots, want %d", len(rec), tl.threads))
	}
	tl.records = append(tl.records, rec)
}

// idleRecord returns a record with every slot idle.
func idleRecord(threads int) TickRecord {
	rec := make(TickRecord, threads)
	for i := range rec {
		rec[i] = IdleSlot
	}
	return rec
}
