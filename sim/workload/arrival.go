package workload

import (
	"math/rand"
)

// ArrivalSampler generates inter-arrival gaps in ticks.
type ArrivalSampler interface {
	// SampleGap returns the next gap in ticks. Always returns a value >= 0;
	// a zero gap means the next request arrives on the same tick.
	SampleGap(rng *rand.Rand) int64
}

// ConstantSampler spaces arrivals a fixed number of ticks apart.
type ConstantSampler struct {
	interval int64
}

func (s *ConstantSampler) SampleGap(_ *rand.Rand) int64 {
	return s.interval
}

// PoissonSampler generates exponentially-distributed gaps, floored to whole ticks.
type PoissonSampler struct {
	ratePerTick float64
}

func (s *PoissonSampler) SampleGap(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() / s.ratePerTick)
}

// NewArrivalSampler creates an ArrivalSampler from a validated spec.
func NewArrivalSampler(spec ArrivalSpec) ArrivalSampler {
	switch spec.Process {
	case "poisson":
		rate := spec.Rate
		// floor avoids division by zero
		if rate < 1e-15 {
			rate = 1e-15
		}
		return &PoissonSampler{ratePerTick: rate}
	default:
		return &ConstantSampler{interval: spec.Interval}
	}
}
