package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mlfq-sim/sim/internal/testutil"
)

func TestNewJobRegistry_InvalidJobs_ReturnConfigError(t *testing.T) {
	tests := []struct {
		name string
		jobs []Job
	}{
		{"empty", nil},
		{"empty id", []Job{{ID: "", BurstTime: 1}}},
		{"negative arrival", []Job{{ID: "A", ArrivalTime: -1, BurstTime: 1}}},
		{"zero burst", []Job{{ID: "A", BurstTime: 0}}},
		{"duplicate id", []Job{{ID: "A", BurstTime: 1}, {ID: "A", BurstTime: 2}}},
		{"total burst overflows clock", []Job{
			{ID: "A", BurstTime: math.MaxInt64/2 + 1},
			{ID: "B", BurstTime: math.MaxInt64/2 + 1},
		}},
		{"arrival plus burst overflows clock", []Job{{ID: "A", ArrivalTime: math.MaxInt64 - 1, BurstTime: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJobRegistry(tt.jobs)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestJobRegistry_CopiesInput(t *testing.T) {
	// GIVEN a registry built from a caller-owned slice
	jobs := threeJobs()
	reg, err := NewJobRegistry(jobs)
	require.NoError(t, err)

	// WHEN the caller mutates its slice and the returned copy
	jobs[0].BurstTime = 99
	got := reg.Jobs()
	got[1].BurstTime = 99

	// THEN the registry is unaffected
	assert.Equal(t, threeJobs(), reg.Jobs())
	assert.Equal(t, 3, reg.Len())
}

func TestJobRegistry_NewTrackedJobs_FreshInitialState(t *testing.T) {
	reg := mustRegistry(t, threeJobs())

	first := reg.NewTrackedJobs()
	for i, tj := range first {
		assert.Equal(t, reg.Jobs()[i], tj.Job)
		assert.Equal(t, tj.BurstTime, tj.RemainingTime)
		assert.Equal(t, 0, tj.Level)
		assert.False(t, tj.Completed)
		assert.False(t, tj.Enqueued)
		assert.Empty(t, tj.LevelHistory)
	}

	// WHEN one working set is mutated
	first[0].RemainingTime = 0
	first[0].Level = 2

	// THEN a new working set is unaffected
	second := reg.NewTrackedJobs()
	assert.Equal(t, int64(10), second[0].RemainingTime)
	assert.Equal(t, 0, second[0].Level)
}

func TestTrackedJob_String(t *testing.T) {
	tj := TrackedJob{Job: Job{ID: "A", ArrivalTime: 3}, RemainingTime: 4, Level: 1}
	assert.Contains(t, tj.String(), "ID: A")
	assert.Contains(t, tj.String(), "Level: 1")
}

func TestNewJobRegistry_LargestRepresentableMakespan_Accepted(t *testing.T) {
	_, err := NewJobRegistry([]Job{{ID: "A", ArrivalTime: math.MaxInt64 - 2, BurstTime: 2}})
	assert.NoError(t, err)
}

func TestMaxIntervals(t *testing.T) {
	tests := []struct {
		name   string
		jobs   []Job
		quanta QuantumConfig
		want   int64
	}{
		{"three jobs short quanta", threeJobs(), QuantumConfig{2, 4, 8}, 2 + 5 + 3 + 4},
		{"single level", threeJobs(), QuantumConfig{4}, 2 + 3 + 2 + 2},
		{"idle ticks before late arrival", []Job{{ID: "A", ArrivalTime: 3, BurstTime: 2}}, QuantumConfig{5}, 4},
		{"no quanta", threeJobs(), nil, 0},
		{"non-positive quantum saturates", threeJobs(), QuantumConfig{0}, math.MaxInt64},
		{"large burst saturates", []Job{
			{ID: "A", ArrivalTime: math.MaxInt64, BurstTime: 1},
			{ID: "B", BurstTime: 5},
		}, QuantumConfig{1}, math.MaxInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxIntervals(tt.jobs, tt.quanta))
		})
	}
}

func TestMaxIntervals_BoundsActualTimeline(t *testing.T) {
	// GIVEN every golden workload
	for _, tc := range testutil.LoadGoldenDataset(t).Tests {
		t.Run(tc.Name, func(t *testing.T) {
			reg := goldenRegistry(t, tc)
			quanta := QuantumConfig(tc.Quanta)

			// WHEN the workload is simulated
			res := mustRun(t, reg, quanta)

			// THEN the timeline never exceeds the precomputed bound
			assert.LessOrEqual(t, int64(len(res.Timeline)), MaxIntervals(reg.Jobs(), quanta))
		})
	}
}
