// Package sim provides the discrete-time Multi-Level Feedback Queue (MLFQ)
// scheduling engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - job.go: Job registry and the per-run TrackedJob working copies
//   - config.go: Quantum configuration (one time quantum per priority level)
//   - simulator.go: The scheduling loop (admit, select, run, complete or demote)
//   - metrics.go: Turnaround/waiting statistics derived from a finished run
//
// # Architecture
//
// A JobRegistry is read-only input and may be reused across any number of
// runs. Every call to NewSimulator takes a fresh TrackedJob copy, so runs with
// different quantum configurations never share mutable state.
//
// Sub-packages:
//   - sim/trace/: Decision trace recording (admissions, dispatches, demotions)
//   - sim/workload/: YAML workload specs and seeded synthetic job generation
package sim
