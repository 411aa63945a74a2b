package sim

import (
	"cmp"

	"github.com/addrummond/heap"
)

// starvingCandidate orders starving requests for the override:
// largest WaitingTime first, then smallest Remaining, then registration order.
type starvingCandidate struct {
	req *Request
}

func (a *starvingCandidate) Cmp(b *starvingCandidate) int {
	if c := cmp.Compare(b.req.WaitingTime, a.req.WaitingTime); c != 0 {
		return c
	}
	if c := cmp.Compare(a.req.Remaining, b.req.Remaining); c != 0 {
		return c
	}
	return cmp.Compare(a.req.index, b.req.index)
}

// mostStarving returns the ready request with WaitingTime >= threshold that
// the override serves, or nil if none is starving.
func mostStarving(ready []*Request, threshold int64) *Request {
	var starving heap.Heap[starvingCandidate, heap.Min]
	for _, req := range ready {
		if req.WaitingTime >= threshold {
			heap.PushOrderable(&starving, starvingCandidate{req: req})
		}
	}
	chosen, ok := heap.PopOrderable(&starving)
	if !ok {
		return nil
	}
	return chosen.req
}
