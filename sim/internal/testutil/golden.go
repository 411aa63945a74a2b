// Package testutil provides shared test infrastructure for the LRTF simulator.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one scheduling scenario with its expected outcome.
type GoldenTestCase struct {
	Name                string           `json:"name"`
	Threads             int              `json:"threads"`
	StarvationThreshold int64            `json:"starvation_threshold"`
	Requests            []GoldenRequest  `json:"requests"`
	Completions         map[string]int64 `json:"completions"`
	StarvationOverrides int              `json:"starvation_overrides"`
	// Timeline uses "" for idle slots.
	Timeline [][]string `json:"timeline"`
}

// GoldenRequest is a request declaration in registration order.
type GoldenRequest struct {
	ID      string `json:"id"`
	Arrival int64  `json:"arrival"`
	Pages   int64  `json:"pages"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// SlotCounts returns, per request ID, the number of non-idle slots it holds in timeline.
func SlotCounts(timeline [][]string) map[string]int64 {
	counts := make(map[string]int64)
	for _, rec := range timeline {
		for _, id := range rec {
			if id != "" {
				counts[id]++
			}
		}
	}
	return counts
}
