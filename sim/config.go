package sim

import "fmt"

// DefaultStarvationThreshold is the waiting time at which a ready request is
// considered starving when no threshold is configured.
const DefaultStarvationThreshold int64 = 5

// SchedulerConfig groups the engine parameters.
type SchedulerConfig struct {
	Threads             int   `json:"threads" yaml:"threads"`                           // simulated execution threads (must be >= 1)
	StarvationThreshold int64 `json:"starvation_threshold" yaml:"starvation_threshold"` // waiting ticks before override (must be >= 0)
}

// NewSchedulerConfig creates a SchedulerConfig with all fields explicitly set.
func NewSchedulerConfig(threads int, starvationThreshold int64) SchedulerConfig {
	return SchedulerConfig{
		Threads:             threads,
		StarvationThreshold: starvationThreshold,
	}
}

// Validate returns ErrInvalidConfig if Threads < 1 or StarvationThreshold < 0.
func (c SchedulerConfig) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("%w: threads must be >= 1, got %d", ErrInvalidConfig, c.Threads)
	}
	if c.StarvationThreshold < 0 {
		return fmt.Errorf("%w: starvation threshold must be >= 0, got %d", ErrInvalidConfig, c.StarvationThreshold)
	}
	return nil
}
