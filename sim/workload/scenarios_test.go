package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mlfq-sim/sim"
	"github.com/inference-sim/mlfq-sim/sim/trace"
)

func TestScenarios_AllValid(t *testing.T) {
	for name, build := range Scenarios {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, build().Validate())
		})
	}
}

func TestScenarioStarvation_LongJobWaitsWhileLevelZeroBusy(t *testing.T) {
	// GIVEN the starvation preset
	spec := ScenarioStarvation()
	reg, err := spec.Registry()
	require.NoError(t, err)

	// WHEN simulated under its configuration
	res, err := sim.Simulate(reg, spec.QuantumConfigs()[0], trace.TraceConfig{})
	require.NoError(t, err)

	// THEN the long job is not dispatched again until every short job has finished
	long := res.Stats[0]
	require.Equal(t, "long", long.ID)
	for _, st := range res.Stats[1:] {
		assert.Less(t, st.CompletionTime, int64(13), "short job %s", st.ID)
	}
	assert.Equal(t, int64(10), long.WaitingTime)
	assert.Equal(t, "12-16: long (Level 1)", res.Timeline[6].String())
}

func TestScenarioIdleGap_HasIdleTicks(t *testing.T) {
	spec := ScenarioIdleGap()
	reg, err := spec.Registry()
	require.NoError(t, err)

	res, err := sim.Simulate(reg, spec.QuantumConfigs()[0], trace.TraceConfig{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Summary.IdleTicks)
}
