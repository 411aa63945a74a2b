package workload

// Built-in scenario presets.
// Each returns a valid WorkloadSpec ready for use with Declarations.

func intPtr(v int) *int { return &v }
func int64Ptr(v int64) *int64 { return &v }

// ScenarioExample is the four-request mix used as the default run:
// four threads, threshold 5, one large late arrival.
func ScenarioExample() *WorkloadSpec {
	return &WorkloadSpec{
		Version: "1", Threads: intPtr(4), StarvationThreshold: int64Ptr(5),
		Requests: []RequestSpec{
			{ID: "A", Arrival: 0, Pages: 10},
			{ID: "B", Arrival: 1, Pages: 3},
			{ID: "C", Arrival: 2, Pages: 8},
			{ID: "D", Arrival: 4, Pages: 20},
		},
	}
}

// ScenarioIdleGap creates a single request that arrives after three idle ticks.
func ScenarioIdleGap() *WorkloadSpec {
	return &WorkloadSpec{
		Version: "1", Threads: intPtr(2), StarvationThreshold: int64Ptr(5),
		Requests: []RequestSpec{{ID: "X", Arrival: 3, Pages: 2}},
	}
}

// ScenarioStarvation pits one large request against a stream of small ones on a
// single thread, so the large request only progresses through the override.
func ScenarioStarvation(seed int64) *WorkloadSpec {
	return &WorkloadSpec{
		Version: "1", Threads: intPtr(1), StarvationThreshold: int64Ptr(3),
		Requests: []RequestSpec{{ID: "big", Arrival: 0, Pages: 12}},
		Generate: &GenerateSpec{
			Seed: seed, Count: 10, IDPrefix: "small_",
			Arrival: ArrivalSpec{Process: "constant", Interval: 1},
			Pages:   PagesSpec{Type: "uniform", Min: 1, Max: 2},
		},
	}
}
