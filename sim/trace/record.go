// Package trace provides decision-trace recording for MLFQ scheduling runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// AdmissionRecord captures a job entering the level-0 queue.
// Clock may be later than ArrivalTime when the job arrived while another job
// was running; admission only happens between dispatches.
type AdmissionRecord struct {
	JobID       string
	ArrivalTime int64
	Clock       int64
}

// DispatchRecord captures one scheduling decision.
type DispatchRecord struct {
	JobID     string
	Clock     int64
	Level     int
	Quantum   int64
	RunTime   int64
	Remaining int64 // remaining burst after this dispatch
	Waiting   int   // jobs left queued across all levels
}

// DemotionRecord captures a job moving to a lower level (or staying at the
// lowest level) after exhausting its quantum.
type DemotionRecord struct {
	JobID     string
	Clock     int64
	FromLevel int
	ToLevel   int
}

// CompletionRecord captures a job finishing.
type CompletionRecord struct {
	JobID string
	Clock int64
	Level int
}

// IdleRecord captures one idle tick.
type IdleRecord struct {
	Clock int64
}
