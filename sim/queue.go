// Implements the ArrivalQueue, which holds requests that have not yet arrived.
// Requests are popped at their arrival tick.

package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gammazero/deque"
)

// ArrivalQueue is a FIFO of pending requests ordered by arrival tick, then
// registration order. The simulator drains it one tick at a time.
type ArrivalQueue struct {
	queue deque.Deque[*Request]
}

// NewArrivalQueue builds a queue from reqs, sorted by arrival.
func NewArrivalQueue(reqs []*Request) *ArrivalQueue {
	sorted := make([]*Request, len(reqs))
	copy(sorted, reqs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Arrival != sorted[j].Arrival {
			return sorted[i].Arrival < sorted[j].Arrival
		}
		return sorted[i].index < sorted[j].index
	})
	aq := &ArrivalQueue{}
	for _, req := range sorted {
		aq.queue.PushBack(req)
	}
	return aq
}

// Len returns the number of requests still pending.
func (aq *ArrivalQueue) Len() int {
	return aq.queue.Len()
}

// Peek returns the next request to arrive without removing it.
// Returns nil if the queue is empty.
func (aq *ArrivalQueue) Peek() *Request {
	if aq.queue.Len() == 0 {
		return nil
	}
	return aq.queue.Front()
}

// PopArrived removes and returns every request with Arrival <= tick.
func (aq *ArrivalQueue) PopArrived(tick int64) []*Request {
	var arrived []*Request
	for aq.queue.Len() > 0 && aq.queue.Front().Arrival <= tick {
		arrived = append(arrived, aq.queue.PopFront())
	}
	return arrived
}

func (aq *ArrivalQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < aq.queue.Len(); i++ {
		sb.WriteString(fmt.Sprint(*aq.queue.At(i)))
		if i < aq.queue.Len()-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
