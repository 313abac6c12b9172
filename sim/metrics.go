// Derives per-job turnaround/waiting statistics and run-wide summaries
// from a finished simulation.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// JobStats holds the derived statistics of one job.
type JobStats struct {
	ID             string `json:"id"`
	ArrivalTime    int64  `json:"arrival_time"`
	BurstTime      int64  `json:"burst_time"`
	CompletionTime int64  `json:"completion_time"`
	TurnaroundTime int64  `json:"turnaround_time"` // completion - arrival
	WaitingTime    int64  `json:"waiting_time"`    // turnaround - burst
}

// ComputeStats derives JobStats in the order of jobs (registry order).
// Every job must have completed; a missing completion time or a negative
// waiting time is reported as ErrInvariantViolation rather than defaulted.
func ComputeStats(jobs []*TrackedJob) ([]JobStats, error) {
	stats := make([]JobStats, 0, len(jobs))
	for _, j := range jobs {
		if !j.Completed {
			return nil, fmt.Errorf("%w: job %q has no completion time (remaining=%d)", ErrInvariantViolation, j.ID, j.RemainingTime)
		}
		turnaround := j.CompletionTime - j.ArrivalTime
		waiting := turnaround - j.BurstTime
		if waiting < 0 {
			return nil, fmt.Errorf("%w: job %q has negative waiting time %d", ErrInvariantViolation, j.ID, waiting)
		}
		stats = append(stats, JobStats{
			ID:             j.ID,
			ArrivalTime:    j.ArrivalTime,
			BurstTime:      j.BurstTime,
			CompletionTime: j.CompletionTime,
			TurnaroundTime: turnaround,
			WaitingTime:    waiting,
		})
	}
	return stats, nil
}

// Summary aggregates one run.
type Summary struct {
	Makespan       int64   `json:"makespan"` // final clock value
	BusyTicks      int64   `json:"busy_ticks"`
	IdleTicks      int64   `json:"idle_ticks"`
	Dispatches     int     `json:"dispatches"`
	Demotions      int     `json:"demotions"` // level increases observed in the timeline
	AvgTurnaround  float64 `json:"avg_turnaround"`
	AvgWaiting     float64 `json:"avg_waiting"`
	P90Waiting     float64 `json:"p90_waiting"`
	MaxWaiting     int64   `json:"max_waiting"`
	CPUUtilization float64 `json:"cpu_utilization"` // busy / makespan
}

// Summarize computes run-wide aggregates from a timeline and its job stats.
func Summarize(tl Timeline, stats []JobStats) Summary {
	s := Summary{Makespan: tl.End()}
	lastLevel := make(map[string]int)
	for _, iv := range tl {
		if iv.Idle {
			s.IdleTicks += iv.Duration()
			continue
		}
		s.BusyTicks += iv.Duration()
		s.Dispatches++
		if prev, ok := lastLevel[iv.JobID]; ok && iv.Level > prev {
			s.Demotions++
		}
		lastLevel[iv.JobID] = iv.Level
	}
	if s.Makespan > 0 {
		s.CPUUtilization = float64(s.BusyTicks) / float64(s.Makespan)
	}

	turnarounds := make([]int64, len(stats))
	waits := make([]int64, len(stats))
	for i, st := range stats {
		turnarounds[i] = st.TurnaroundTime
		waits[i] = st.WaitingTime
	}
	slices.Sort(waits)
	s.AvgTurnaround = CalculateMean(turnarounds)
	s.AvgWaiting = CalculateMean(waits)
	if len(waits) > 0 {
		s.P90Waiting = CalculatePercentile(waits, 90)
		s.MaxWaiting = waits[len(waits)-1]
	}
	return s
}

// MetricsOutput is the JSON shape of one run's report.
type MetricsOutput struct {
	RunID    string     `json:"run_id,omitempty"`
	Quanta   []int64    `json:"quanta"`
	Timeline []string   `json:"timeline"`
	Stats    []JobStats `json:"stats"`
	Summary  Summary    `json:"summary"`
}

// NewMetricsOutput converts a Result into its JSON shape.
func NewMetricsOutput(runID string, r *Result) MetricsOutput {
	return MetricsOutput{
		RunID:    runID,
		Quanta:   []int64(r.Quanta),
		Timeline: r.Timeline.Strings(),
		Stats:    r.Stats,
		Summary:  r.Summary,
	}
}

// PrintReport writes the human-readable timeline and statistics for r.
func PrintReport(w io.Writer, r *Result) error {
	pw := &printer{w: w}
	pw.printf("=== MLFQ Simulation (quanta=%s) ===\n", r.Quanta)
	pw.printf("Execution Timeline:\n")
	for _, line := range r.Timeline.Strings() {
		pw.printf("  %s\n", line)
	}
	pw.printf("Job Statistics:\n")
	pw.printf("  %-10s %12s %12s\n", "Job", "Turnaround", "Waiting")
	for _, st := range r.Stats {
		pw.printf("  %-10s %12d %12d\n", st.ID, st.TurnaroundTime, st.WaitingTime)
	}
	pw.printf("Average Turnaround   : %.2f ticks\n", r.Summary.AvgTurnaround)
	pw.printf("Average Waiting      : %.2f ticks\n", r.Summary.AvgWaiting)
	pw.printf("Makespan             : %d ticks (idle %d)\n", r.Summary.Makespan, r.Summary.IdleTicks)
	pw.printf("Demotions            : %d\n", r.Summary.Demotions)
	pw.printf("CPU Utilization      : %.2f%%\n", r.Summary.CPUUtilization*100)
	return pw.err
}

// WriteJSON writes outputs as a single indented JSON array; nil writes [].
func WriteJSON(w io.Writer, outputs []MetricsOutput) error {
	if outputs == nil {
		outputs = []MetricsOutput{}
	}
	data, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// printer keeps the first write error so PrintReport can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
