package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// PagesSampler generates page counts for synthetic requests.
type PagesSampler interface {
	// Sample returns a positive page count (>= 1).
	Sample(rng *rand.Rand) int64
}

// ConstantPagesSampler always returns the same page count.
type ConstantPagesSampler struct {
	value int64
}

func (s *ConstantPagesSampler) Sample(_ *rand.Rand) int64 {
	return s.value
}

// UniformPagesSampler draws uniformly from [min, max].
type UniformPagesSampler struct {
	min, max int64
}

func (s *UniformPagesSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return s.min
	}
	return s.min + rng.Int63n(s.max-s.min+1)
}

// ExponentialPagesSampler produces exponentially-distributed page counts.
type ExponentialPagesSampler struct {
	mean float64
}

func (s *ExponentialPagesSampler) Sample(rng *rand.Rand) int64 {
	val := rng.ExpFloat64() * s.mean
	result := int64(math.Round(val))
	if result < 1 {
		return 1
	}
	return result
}

// GaussianPagesSampler produces clamped Gaussian page counts.
type GaussianPagesSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianPagesSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return s.min
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	result := int64(math.Round(clamped))
	if result < 1 {
		return 1
	}
	return result
}

// NewPagesSampler creates a PagesSampler from a spec.
func NewPagesSampler(spec PagesSpec) (PagesSampler, error) {
	if err := validatePagesSpec("pages", &spec); err != nil {
		return nil, err
	}
	switch spec.Type {
	case "constant":
		return &ConstantPagesSampler{value: spec.Value}, nil
	case "uniform":
		return &UniformPagesSampler{min: spec.Min, max: spec.Max}, nil
	case "exponential":
		return &ExponentialPagesSampler{mean: spec.Mean}, nil
	case "gaussian":
		return &GaussianPagesSampler{mean: spec.Mean, stdDev: spec.StdDev, min: spec.Min, max: spec.Max}, nil
	default:
		return nil, fmt.Errorf("unknown pages type %q", spec.Type)
	}
}
