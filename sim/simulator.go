// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/mlfq-sim/sim/trace"
)

// Simulator holds the state of one MLFQ run: the clock, the per-level queues
// and this run's TrackedJob working set. A Simulator is single-use.
type Simulator struct {
	Clock    int64
	Quanta   QuantumConfig
	Queues   *QueueSet
	Jobs     []*TrackedJob // registry order
	Timeline Timeline
	Trace    *trace.SimulationTrace // nil when tracing is disabled

	finished int
	ran      bool
}

// NewSimulator validates quanta and prepares a fresh run over registry.
// No simulation state is created when the configuration is invalid.
func NewSimulator(registry *JobRegistry, quanta QuantumConfig, traceConfig trace.TraceConfig) (*Simulator, error) {
	if err := quanta.Validate(); err != nil {
		return nil, err
	}
	if registry == nil || registry.Len() == 0 {
		return nil, fmt.Errorf("%w: job registry must contain at least one job", ErrInvalidConfig)
	}
	s := &Simulator{
		Clock:    0,
		Quanta:   append(QuantumConfig(nil), quanta...),
		Queues:   NewQueueSet(len(quanta)),
		Jobs:     registry.NewTrackedJobs(),
		Timeline: make(Timeline, 0),
	}
	if traceConfig.Enabled() {
		s.Trace = trace.NewSimulationTrace(traceConfig)
	}
	return s, nil
}

// Run executes the scheduling loop until every job has completed, then
// derives statistics. Calling Run twice on the same Simulator panics.
func (sim *Simulator) Run() (*Result, error) {
	if sim.ran {
		panic("Run: simulator already ran; build a new one per run")
	}
	sim.ran = true

	for sim.finished < len(sim.Jobs) {
		sim.admitArrivals()

		level := sim.Queues.FirstNonEmpty()
		if level < 0 {
			sim.idleTick()
			continue
		}
		sim.dispatch(level)
	}
	logrus.Infof("[tick %07d] Simulation ended (quanta=%s, jobs=%d)", sim.Clock, sim.Quanta, len(sim.Jobs))

	stats, err := ComputeStats(sim.Jobs)
	if err != nil {
		return nil, err
	}
	return &Result{
		Quanta:   sim.Quanta,
		Timeline: sim.Timeline,
		Stats:    stats,
		Summary:  Summarize(sim.Timeline, stats),
		Jobs:     sim.Jobs,
		Trace:    sim.Trace,
	}, nil
}

// admitArrivals moves every arrived, not-yet-enqueued job to the tail of
// level 0, in registry order.
func (sim *Simulator) admitArrivals() {
	for _, j := range sim.Jobs {
		if j.Enqueued || j.ArrivalTime > sim.Clock {
			continue
		}
		j.Enqueued = true
		sim.Queues.Level(0).Enqueue(j)
		logrus.Debugf("[tick %07d] Admitted %s (arrival=%d)", sim.Clock, j.ID, j.ArrivalTime)
		if sim.Trace != nil {
			sim.Trace.RecordAdmission(trace.AdmissionRecord{JobID: j.ID, ArrivalTime: j.ArrivalTime, Clock: sim.Clock})
		}
	}
}

// idleTick records a single idle unit and advances the clock by one.
func (sim *Simulator) idleTick() {
	sim.Timeline = append(sim.Timeline, Interval{Start: sim.Clock, End: sim.Clock + 1, Idle: true})
	logrus.Tracef("[tick %07d] CPU idle", sim.Clock)
	if sim.Trace != nil {
		sim.Trace.RecordIdle(trace.IdleRecord{Clock: sim.Clock})
	}
	sim.Clock++
}

// dispatch runs the head of the given level for min(quantum, remaining),
// then completes or demotes it.
func (sim *Simulator) dispatch(level int) {
	j := sim.Queues.Level(level).DequeueFront()
	if j.Level != level {
		panic(fmt.Sprintf("dispatch: job %s found at level %d but tracks level %d", j.ID, level, j.Level))
	}

	quantum := sim.Quanta[level]
	runTime := min(quantum, j.RemainingTime)
	start := sim.Clock

	sim.Timeline = append(sim.Timeline, Interval{Start: start, End: start + runTime, JobID: j.ID, Level: level})
	j.LevelHistory = append(j.LevelHistory, level)
	sim.Clock += runTime
	j.RemainingTime -= runTime

	logrus.Debugf("[tick %07d] Ran %s at level %d for %d (remaining=%d)", start, j.ID, level, runTime, j.RemainingTime)
	if sim.Trace != nil {
		sim.Trace.RecordDispatch(trace.DispatchRecord{
			JobID:     j.ID,
			Clock:     start,
			Level:     level,
			Quantum:   quantum,
			RunTime:   runTime,
			Remaining: j.RemainingTime,
			Waiting:   sim.Queues.TotalLen(),
		})
	}

	if j.RemainingTime == 0 {
		j.CompletionTime = sim.Clock
		j.Completed = true
		sim.finished++
		logrus.Debugf("[tick %07d] Completed %s", sim.Clock, j.ID)
		if sim.Trace != nil {
			sim.Trace.RecordCompletion(trace.CompletionRecord{JobID: j.ID, Clock: sim.Clock, Level: level})
		}
		return
	}

	next := min(level+1, sim.Quanta.MaxLevel())
	j.Level = next
	sim.Queues.Level(next).Enqueue(j)
	if sim.Trace != nil {
		sim.Trace.RecordDemotion(trace.DemotionRecord{JobID: j.ID, Clock: sim.Clock, FromLevel: level, ToLevel: next})
	}
}

// Result is everything one run produces.
type Result struct {
	Quanta   QuantumConfig
	Timeline Timeline
	Stats    []JobStats
	Summary  Summary
	Jobs     []*TrackedJob // final working copies, registry order
	Trace    *trace.SimulationTrace
}

// Simulate is a convenience wrapper: build a Simulator and run it.
func Simulate(registry *JobRegistry, quanta QuantumConfig, traceConfig trace.TraceConfig) (*Result, error) {
	s, err := NewSimulator(registry, quanta, traceConfig)
	if err != nil {
		return nil, err
	}
	return s.Run()
}
