package sim

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/lrtf-sim/sim/trace"
)

// Results bundles everything a presentation layer reads after a run.
type Results struct {
	RunID        string                 `json:"run_id" yaml:"run_id"`
	Config       SchedulerConfig        `json:"config" yaml:"config"`
	Summary      Summary                `json:"summary" yaml:"summary"`
	Requests     []RequestStats         `json:"requests" yaml:"requests"`
	Timeline     [][]string             `json:"timeline" yaml:"timeline"`
	Trace        *trace.SimulationTrace `json:"trace,omitempty" yaml:"trace,omitempty"`
	TraceSummary *trace.TraceSummary    `json:"trace_summary,omitempty" yaml:"trace_summary,omitempty"`
}

// Results snapshots the simulator state. Call after Run returns.
// Each call is tagged with a fresh run ID.
func (sim *Simulator) Results() *Results {
	stats := sim.Stats()
	r := &Results{
		RunID:    uuid.NewString(),
		Config:   sim.Config,
		Summary:  sim.Metrics.Summarize(stats, sim.Config.Threads),
		Requests: stats,
		Timeline: sim.timeline.Records(),
	}
	if sim.Trace != nil {
		r.Trace = sim.Trace
		r.TraceSummary = trace.Summarize(sim.Trace)
	}
	return r
}

// Output formats accepted by Results.Write.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// IsValidFormat reports whether name is a recognized output format.
func IsValidFormat(name string) bool {
	return name == FormatJSON || name == FormatYAML
}

// Write encodes the results to w in the given format.
func (r *Results) Write(w io.Writer, format string) error {
	return Encode(w, format, r)
}

// Encode writes v to w as indented JSON or YAML.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding results as json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding results as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flushing yaml results: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q; valid: json, yaml", format)
	}
	return nil
}
