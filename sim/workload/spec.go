package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
// Threads and StarvationThreshold are optional; nil leaves the caller's defaults in place.
type WorkloadSpec struct {
	Version             string        `yaml:"version"`
	Threads             *int          `yaml:"threads,omitempty"`
	StarvationThreshold *int64        `yaml:"starvation_threshold,omitempty"`
	Requests            []RequestSpec `yaml:"requests,omitempty"`
	Generate            *GenerateSpec `yaml:"generate,omitempty"`
}

// RequestSpec declares one request explicitly.
type RequestSpec struct {
	ID      string `yaml:"id"`
	Arrival int64  `yaml:"arrival"`
	Pages   int64  `yaml:"pages"`
}

// GenerateSpec configures seeded synthetic request generation.
type GenerateSpec struct {
	Seed     int64       `yaml:"seed"`
	Count    int         `yaml:"count"`
	IDPrefix string      `yaml:"id_prefix,omitempty"` // default "request_"
	Arrival  ArrivalSpec `yaml:"arrival"`
	Pages    PagesSpec   `yaml:"pages"`
}

// ArrivalSpec configures the inter-arrival process, in ticks.
type ArrivalSpec struct {
	Process  string  `yaml:"process"`
	Start    int64   `yaml:"start,omitempty"`    // tick of the first arrival
	Interval int64   `yaml:"interval,omitempty"` // constant: ticks between arrivals
	Rate     float64 `yaml:"rate,omitempty"`     // poisson: arrivals per tick
}

// PagesSpec parameterizes the page count distribution.
type PagesSpec struct {
	Type   string  `yaml:"type"`
	Value  int64   `yaml:"value,omitempty"`   // constant
	Min    int64   `yaml:"min,omitempty"`     // uniform, gaussian
	Max    int64   `yaml:"max,omitempty"`     // uniform, gaussian
	Mean   float64 `yaml:"mean,omitempty"`    // exponential, gaussian
	StdDev float64 `yaml:"std_dev,omitempty"` // gaussian
}

// Valid value registries.
var (
	validVersions = map[string]bool{
		"": true, "1": true,
	}
	validArrivalProcesses = map[string]bool{
		"constant": true, "poisson": true,
	}
	validPagesTypes = map[string]bool{
		"constant": true, "uniform": true, "exponential": true, "gaussian": true,
	}
)

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	return ParseWorkloadSpec(data)
}

// ParseWorkloadSpec parses a YAML workload specification with strict field checking.
func ParseWorkloadSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		logrus.Debugf("workload spec has no version; assuming \"1\"")
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
// Duplicate IDs across explicit and generated requests are caught at registration.
func (s *WorkloadSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unknown version %q; valid: 1", s.Version)
	}
	if s.Threads != nil && *s.Threads < 1 {
		return fmt.Errorf("threads must be >= 1, got %d", *s.Threads)
	}
	if s.StarvationThreshold != nil && *s.StarvationThreshold < 0 {
		return fmt.Errorf("starvation_threshold must be >= 0, got %d", *s.StarvationThreshold)
	}
	if len(s.Requests) == 0 && s.Generate == nil {
		return fmt.Errorf("at least one request or a generate section required")
	}
	for i, r := range s.Requests {
		if err := validateRequest(&r, i); err != nil {
			return err
		}
	}
	if s.Generate != nil {
		if err := validateGenerate(s.Generate); err != nil {
			return err
		}
	}
	return nil
}

func validateRequest(r *RequestSpec, idx int) error {
	prefix := fmt.Sprintf("requests[%d]", idx)
	if r.ID == "" {
		return fmt.Errorf("%s: id must not be empty", prefix)
	}
	if r.Arrival < 0 {
		return fmt.Errorf("%s (%s): arrival must be non-negative, got %d", prefix, r.ID, r.Arrival)
	}
	if r.Pages <= 0 {
		return fmt.Errorf("%s (%s): pages must be positive, got %d", prefix, r.ID, r.Pages)
	}
	return nil
}

func validateGenerate(g *GenerateSpec) error {
	if g.Count <= 0 {
		return fmt.Errorf("generate.count must be positive, got %d", g.Count)
	}
	if !validArrivalProcesses[g.Arrival.Process] {
		return fmt.Errorf("generate.arrival: unknown process %q; valid: constant, poisson", g.Arrival.Process)
	}
	if g.Arrival.Start < 0 {
		return fmt.Errorf("generate.arrival.start must be non-negative, got %d", g.Arrival.Start)
	}
	switch g.Arrival.Process {
	case "constant":
		if g.Arrival.Interval < 0 {
			return fmt.Errorf("generate.arrival.interval must be non-negative, got %d", g.Arrival.Interval)
		}
	case "poisson":
		if err := validateFinitePositive("generate.arrival.rate", g.Arrival.Rate); err != nil {
			return err
		}
	}
	return validatePagesSpec("generate.pages", &g.Pages)
}

func validatePagesSpec(prefix string, p *PagesSpec) error {
	if !validPagesTypes[p.Type] {
		return fmt.Errorf("%s: unknown type %q; valid: constant, uniform, exponential, gaussian", prefix, p.Type)
	}
	switch p.Type {
	case "constant":
		if p.Value <= 0 {
			return fmt.Errorf("%s.value must be positive, got %d", prefix, p.Value)
		}
	case "uniform":
		if p.Min <= 0 || p.Max < p.Min {
			return fmt.Errorf("%s: uniform requires 0 < min <= max, got min=%d max=%d", prefix, p.Min, p.Max)
		}
	case "exponential":
		return validateFinitePositive(prefix+".mean", p.Mean)
	case "gaussian":
		if err := validateFinitePositive(prefix+".mean", p.Mean); err != nil {
			return err
		}
		if math.IsNaN(p.StdDev) || math.IsInf(p.StdDev, 0) || p.StdDev < 0 {
			return fmt.Errorf("%s.std_dev must be a finite non-negative number, got %f", prefix, p.StdDev)
		}
		if p.Min <= 0 || p.Max < p.Min {
			return fmt.Errorf("%s: gaussian requires 0 < min <= max, got min=%d max=%d", prefix, p.Min, p.Max)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
