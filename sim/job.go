// Defines the Job registry and the TrackedJob working copy that the
// scheduling loop mutates during a single run.

package sim

import (
	"fmt"
	"math"
)

// Job is a static unit of CPU work known before the simulation starts.
type Job struct {
	ID          string `json:"id"`           // Unique identifier
	ArrivalTime int64  `json:"arrival_time"` // Tick at which the job becomes eligible (>= 0)
	BurstTime   int64  `json:"burst_time"`   // Total CPU ticks required (> 0)
}

// Validate checks the per-job invariants.
func (j Job) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("%w: job id must not be empty", ErrInvalidConfig)
	}
	if j.ArrivalTime < 0 {
		return fmt.Errorf("%w: job %q has negative arrival time %d", ErrInvalidConfig, j.ID, j.ArrivalTime)
	}
	if j.BurstTime <= 0 {
		return fmt.Errorf("%w: job %q has non-positive burst time %d", ErrInvalidConfig, j.ID, j.BurstTime)
	}
	return nil
}

// JobRegistry is the ordered, immutable list of jobs to schedule.
// Registry order is the tie-break for jobs arriving at the same tick.
type JobRegistry struct {
	jobs []Job
}

// NewJobRegistry validates jobs and returns a registry holding its own copy.
func NewJobRegistry(jobs []Job) (*JobRegistry, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: job registry must contain at least one job", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return nil, err
		}
		if seen[j.ID] {
			return nil, fmt.Errorf("%w: duplicate job id %q", ErrInvalidConfig, j.ID)
		}
		seen[j.ID] = true
	}
	if clockOverflows(jobs) {
		return nil, fmt.Errorf("%w: latest arrival plus total burst time overflows the simulated clock", ErrInvalidConfig)
	}
	return &JobRegistry{jobs: append([]Job(nil), jobs...)}, nil
}

// clockOverflows reports whether max(arrival) + sum(burst), the latest tick a
// run over jobs can reach, exceeds int64. Idle ticks only occur before the
// last arrival.
func clockOverflows(jobs []Job) bool {
	var latest, total int64
	for _, j := range jobs {
		latest = max(latest, j.ArrivalTime)
		if j.BurstTime > math.MaxInt64-total {
			return true
		}
		total += j.BurstTime
	}
	return latest > math.MaxInt64-total
}

// MaxIntervals bounds the number of timeline intervals a run over jobs can
// produce: one per idle tick before the latest arrival plus
// ceil(burst/min(quanta)) dispatches per job. The result saturates at
// math.MaxInt64. Jobs need not be validated; non-positive values count as zero.
func MaxIntervals(jobs []Job, quanta QuantumConfig) int64 {
	if len(quanta) == 0 {
		return 0
	}
	smallest := quanta[0]
	for _, q := range quanta[1:] {
		smallest = min(smallest, q)
	}
	if smallest <= 0 {
		return math.MaxInt64
	}
	var bound int64
	for _, j := range jobs {
		bound = max(bound, j.ArrivalTime)
	}
	for _, j := range jobs {
		if j.BurstTime <= 0 {
			continue
		}
		dispatches := (j.BurstTime-1)/smallest + 1
		if dispatches > math.MaxInt64-bound {
			return math.MaxInt64
		}
		bound += dispatches
	}
	return bound
}

// Jobs returns a copy of the registered jobs in registry order.
func (r *JobRegistry) Jobs() []Job {
	return append([]Job(nil), r.jobs...)
}

// Len returns the number of registered jobs.
func (r *JobRegistry) Len() int {
	return len(r.jobs)
}

// NewTrackedJobs builds a fresh working set for one run.
// Every call returns new values; nothing is shared with previous runs.
func (r *JobRegistry) NewTrackedJobs() []*TrackedJob {
	tracked := make([]*TrackedJob, len(r.jobs))
	for i, j := range r.jobs {
		tracked[i] = &TrackedJob{
			Job:           j,
			RemainingTime: j.BurstTime,
		}
	}
	return tracked
}

// TrackedJob is a Job plus the mutable state owned by one simulation run.
type TrackedJob struct {
	Job

	RemainingTime  int64 // Starts at BurstTime, reaches exactly 0 on completion
	Level          int   // Current queue level, never decreases
	CompletionTime int64 // Valid only when Completed is true
	Completed      bool
	Enqueued       bool  // Set once, when first admitted to level 0
	LevelHistory   []int // Level of each dispatch, in dispatch order
}

func (tj TrackedJob) String() string {
	return fmt.Sprintf("Job: (ID: %s, Level: %d, Remaining: %d, ArrivalTime: %d)", tj.ID, tj.Level, tj.RemainingTime, tj.ArrivalTime)
}
