// Package testutil provides shared test infrastructure for the MLFQ simulator.
// It holds the golden scenario types used by sim/ and cmd/ tests.
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

// GoldenTestCase is one hand-derived scenario: the input jobs and quanta,
// plus the exact expected timeline and statistics.
type GoldenTestCase struct {
	Name     string        `json:"name"`
	Jobs     []GoldenJob   `json:"jobs"`
	Quanta   []int64       `json:"quanta"`
	Timeline []string      `json:"timeline"`
	Stats    []GoldenStats `json:"stats"`
	Makespan int64         `json:"makespan"`
}

// GoldenJob is a job entry of a golden scenario.
type GoldenJob struct {
	ID      string `json:"id"`
	Arrival int64  `json:"arrival"`
	Burst   int64  `json:"burst"`
}

// GoldenStats is the expected statistics of one job.
type GoldenStats struct {
	ID         string `json:"id"`
	Turnaround int64  `json:"turnaround"`
	Waiting    int64  `json:"waiting"`
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
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}

	return &dataset
}
