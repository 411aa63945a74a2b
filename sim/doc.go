// Package sim provides the discrete-time Collaborative LRTF scheduling simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - request.go: Request state (remaining pages, waiting time, completion)
//   - registry.go: the Registry that owns every Request for a run
//   - simulator.go: the tick loop and its per-tick bookkeeping
//
// The allocation rules live in starvation.go (which request the override
// serves) and scheduler.go (override then fair share).
//
// # Architecture
//
// A run is a closed, deterministic pass over a fully known set of requests.
// Each tick, every ready request accrues one tick of waiting time; the request
// with the longest wait at or above the starvation threshold is served first
// with up to all threads, and the remaining threads go to the ready requests
// with the fewest pages left. One request may occupy several threads in a tick.
//
// Sub-packages:
//   - sim/trace/: per-tick decision trace recording
//   - sim/workload/: YAML workload specs and seeded synthetic request generation
//
// Results (results.go) is the read-only surface for presentation layers:
// the timeline, per-request statistics and summary metrics.
package sim
