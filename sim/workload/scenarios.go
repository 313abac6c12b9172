package workload

import "github.com/inference-sim/mlfq-sim/sim"

// Built-in scenario presets.

// ScenarioDefault is the three-job set evaluated under four configurations:
// increasing quanta, short quanta, a single level, and equal quanta.
func ScenarioDefault() *WorkloadSpec {
	return FromJobs(
		[]sim.Job{
			{ID: "A", ArrivalTime: 0, BurstTime: 10},
			{ID: "B", ArrivalTime: 1, BurstTime: 5},
			{ID: "C", ArrivalTime: 2, BurstTime: 8},
		},
		[]sim.QuantumConfig{{5, 10, 20}, {2, 4, 8}, {4}, {3, 3, 3}},
	)
}

// ScenarioIdleGap has a gap between the first completion and the next arrival,
// so the timeline contains IDLE ticks.
func ScenarioIdleGap() *WorkloadSpec {
	return FromJobs(
		[]sim.Job{
			{ID: "A", ArrivalTime: 0, BurstTime: 2},
			{ID: "B", ArrivalTime: 5, BurstTime: 3},
		},
		[]sim.QuantumConfig{{4}},
	)
}

// ScenarioStarvation keeps level 0 busy with short jobs while a long job
// waits at the lowest level.
func ScenarioStarvation() *WorkloadSpec {
	jobs := []sim.Job{{ID: "long", ArrivalTime: 0, BurstTime: 20}}
	for i, at := range []int64{1, 3, 5, 7, 9} {
		jobs = append(jobs, sim.Job{ID: string(rune('a' + i)), ArrivalTime: at, BurstTime: 2})
	}
	return FromJobs(jobs, []sim.QuantumConfig{{2, 4}})
}

// Scenarios maps preset names to constructors.
var Scenarios = map[string]func() *WorkloadSpec{
	"default":    ScenarioDefault,
	"idle-gap":   ScenarioIdleGap,
	"starvation": ScenarioStarvation,
}
