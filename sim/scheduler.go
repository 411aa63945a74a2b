package sim

import "sort"

// orderByRemaining sorts ready requests ascending by Remaining, then by
// registration order, so the smallest jobs drain first in the fair-share pass.
func orderByRemaining(reqs []*Request) {
	sort.SliceStable(reqs, func(i, j int) bool {
		if reqs[i].Remaining != reqs[j].Remaining {
			return reqs[i].Remaining < reqs[j].Remaining
		}
		return reqs[i].index < reqs[j].index
	})
}

// allocation is one scheduling decision within a tick.
type allocation struct {
	req        *Request
	threads    int64
	starvation bool
}

// allocate partitions threads among the ready requests for one tick:
// at most one starvation override, then fair share over the ordered set.
// ready must already be ordered by orderByRemaining and have had waiting
// time accrued. Requests are drained in place.
func allocate(ready []*Request, threads int, threshold int64, tick int64) []allocation {
	var allocs []allocation
	threadsLeft := int64(threads)

	if chosen := mostStarving(ready, threshold); chosen != nil {
		n := min(threadsLeft, chosen.Remaining)
		chosen.drain(n, tick)
		allocs = append(allocs, allocation{req: chosen, threads: n, starvation: true})
		threadsLeft -= n
	}

	for _, req := range ready {
		if threadsLeft <= 0 || req.Remaining == 0 {
			continue
		}
		needed := min(req.Remaining, threadsLeft)
		req.drain(needed, tick)
		allocs = append(allocs, allocation{req: req, threads: needed})
		threadsLeft -= needed
	}
	return allocs
}
