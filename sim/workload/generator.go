package workload

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/lrtf-sim/sim"
)

// Declaration is one request to register before a run.
type Declaration struct {
	ID      string
	Arrival int64
	Pages   int64
}

// Declarations returns the explicit requests followed by the generated ones.
// Deterministic given the same spec.
func (s *WorkloadSpec) Declarations() ([]Declaration, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}
	decls := make([]Declaration, 0, len(s.Requests))
	for _, r := range s.Requests {
		decls = append(decls, Declaration{ID: r.ID, Arrival: r.Arrival, Pages: r.Pages})
	}
	if s.Generate != nil {
		generated, err := GenerateDeclarations(s.Generate)
		if err != nil {
			return nil, err
		}
		decls = append(decls, generated...)
	}
	return decls, nil
}

// GenerateDeclarations creates Count requests with sampled gaps and page counts.
// Deterministic given the same spec and seed. IDs are IDPrefix + sequence number.
func GenerateDeclarations(g *GenerateSpec) ([]Declaration, error) {
	if err := validateGenerate(g); err != nil {
		return nil, err
	}
	rngs := newPartitionedRNG(g.Seed)
	arrivalRNG, pagesRNG := rngs.forStream(streamArrival), rngs.forStream(streamPages)
	arrivalSampler := NewArrivalSampler(g.Arrival)
	pagesSampler, err := NewPagesSampler(g.Pages)
	if err != nil {
		return nil, fmt.Errorf("generate.pages: %w", err)
	}
	prefix := g.IDPrefix
	if prefix == "" {
		prefix = "request_"
	}

	decls := make([]Declaration, 0, g.Count)
	arrival := g.Arrival.Start
	for i := 0; i < g.Count; i++ {
		if i > 0 {
			arrival += arrivalSampler.SampleGap(arrivalRNG)
		}
		decls = append(decls, Declaration{
			ID:      fmt.Sprintf("%s%d", prefix, i),
			Arrival: arrival,
			Pages:   pagesSampler.Sample(pagesRNG),
		})
	}
	logrus.Debugf("generated %d requests (seed=%d, last arrival=%d)", len(decls), g.Seed, arrival)
	return decls, nil
}

// Populate registers every declaration with reg, stopping at the first error.
func Populate(reg *sim.Registry, decls []Declaration) error {
	for _, d := range decls {
		if _, err := reg.Register(d.ID, d.Arrival, d.Pages); err != nil {
			return err
		}
	}
	return nil
}

// ParseRequestFlag parses an "id:arrival:pages" declaration as given on the command line.
func ParseRequestFlag(value string) (Declaration, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return Declaration{}, fmt.Errorf("request %q: want id:arrival:pages", value)
	}
	arrival, arrivalErr := strconv.ParseInt(parts[1], 10, 64)
	pages, pagesErr := strconv.ParseInt(parts[2], 10, 64)
	if err := errors.Join(arrivalErr, pagesErr); err != nil {
		return Declaration{}, fmt.Errorf("request %q: %w", value, err)
	}
	return Declaration{ID: parts[0], Arrival: arrival, Pages: pages}, nil
}
