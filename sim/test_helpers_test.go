package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mlfq-sim/sim/internal/testutil"
	"github.com/inference-sim/mlfq-sim/sim/trace"
)

// threeJobs is the A/B/C job set used across tests.
func threeJobs() []Job {
	return []Job{
		{ID: "A", ArrivalTime: 0, BurstTime: 10},
		{ID: "B", ArrivalTime: 1, BurstTime: 5},
		{ID: "C", ArrivalTime: 2, BurstTime: 8},
	}
}

func mustRegistry(t *testing.T, jobs []Job) *JobRegistry {
	t.Helper()
	reg, err := NewJobRegistry(jobs)
	require.NoError(t, err)
	return reg
}

func mustRun(t *testing.T, reg *JobRegistry, quanta QuantumConfig) *Result {
	t.Helper()
	res, err := Simulate(reg, quanta, trace.TraceConfig{Level: trace.TraceLevelDecisions})
	require.NoError(t, err)
	return res
}

func goldenRegistry(t *testing.T, tc testutil.GoldenTestCase) *JobRegistry {
	t.Helper()
	jobs := make([]Job, len(tc.Jobs))
	for i, j := range tc.Jobs {
		jobs[i] = Job{ID: j.ID, ArrivalTime: j.Arrival, BurstTime: j.Burst}
	}
	return mustRegistry(t, jobs)
}
