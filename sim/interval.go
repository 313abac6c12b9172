package sim

import "fmt"

// Interval is one contiguous span of the execution timeline: either a job
// running at a level or a single idle tick.
type Interval struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	JobID string `json:"job_id,omitempty"`
	Level int    `json:"level"`
	Idle  bool   `json:"idle,omitempty"`
}

// Duration returns End - Start.
func (iv Interval) Duration() int64 {
	return iv.End - iv.Start
}

// String renders "{start}-{end}: {jobId} (Level {level})" or "{start}-{end}: IDLE".
func (iv Interval) String() string {
	if iv.Idle {
		return fmt.Sprintf("%d-%d: IDLE", iv.Start, iv.End)
	}
	return fmt.Sprintf("%d-%d: %s (Level %d)", iv.Start, iv.End, iv.JobID, iv.Level)
}

// Timeline is the chronological, append-only list of intervals of one run.
type Timeline []Interval

// Strings renders every interval in order.
func (tl Timeline) Strings() []string {
	out := make([]string, len(tl))
	for i, iv := range tl {
		out[i] = iv.String()
	}
	return out
}

// End returns the end tick of the last interval, or 0 for an empty timeline.
func (tl Timeline) End() int64 {
	if len(tl) == 0 {
		return 0
	}
	return tl[len(tl)-1].End
}
