package workload

import (
	"hash/fnv"
	"math/rand"
)

// Random streams used by the generator.
const (
	// streamArrival draws inter-arrival gaps. Uses the seed directly.
	streamArrival = "arrival"
	// streamPages draws page counts.
	streamPages = "pages"
)

// partitionedRNG hands out one deterministic *rand.Rand per named stream, so
// changing the pages distribution never shifts the arrival sequence.
//
// Derivation: streamArrival uses the seed directly; every other stream uses
// seed XOR fnv1a64(name). Not safe for concurrent use.
type partitionedRNG struct {
	seed    int64
	streams map[string]*rand.Rand
}

func newPartitionedRNG(seed int64) *partitionedRNG {
	return &partitionedRNG{seed: seed, streams: make(map[string]*rand.Rand)}
}

// forStream returns the cached RNG for name, creating it on first use.
func (p *partitionedRNG) forStream(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	derived := p.seed
	if name != streamArrival {
		derived ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(derived))
	p.streams[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
