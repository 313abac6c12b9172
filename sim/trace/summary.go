package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches   int
	DispatchesByLevel map[int]int // level → number of dispatches
	Admissions        int
	Demotions         int // level actually increased
	LowestLevelStays  int // quantum exhausted at the lowest level
	Completions       int
	IdleTicks         int
	MaxAdmissionDelay int64 // max(admission clock - arrival time)
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchesByLevel: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	for _, d := range st.Dispatches {
		summary.DispatchesByLevel[d.Level]++
	}

	summary.Admissions = len(st.Admissions)
	for _, a := range st.Admissions {
		if delay := a.Clock - a.ArrivalTime; delay > summary.MaxAdmissionDelay {
			summary.MaxAdmissionDelay = delay
		}
	}

	for _, d := range st.Demotions {
		if d.ToLevel > d.FromLevel {
			summary.Demotions++
		} else {
			summary.LowestLevelStays++
		}
	}

	summary.Completions = len(st.Completions)
	summary.IdleTicks = len(st.Idles)

	return summary
}
