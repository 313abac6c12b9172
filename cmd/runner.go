package cmd

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	sim "github.com/inference-sim/mlfq-sim/sim"
	"github.com/inference-sim/mlfq-sim/sim/trace"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
)

var validOutputs = map[string]bool{outputText: true, outputJSON: true}

// runOptions controls how configurations are executed and reported.
type runOptions struct {
	Output string
	Trace  trace.TraceConfig
}

// runReport is the outcome of one configuration.
type runReport struct {
	RunID  string
	Quanta sim.QuantumConfig
	Result *sim.Result // nil when Err is set
	Err    error
}

// runConfigurations simulates registry once per configuration, sequentially.
// Text reports are written to w as each run finishes; JSON output is one array
// of the successful runs written after the last one. A failing configuration is
// logged and skipped; the remaining ones still run. The returned error is
// non-nil if any run failed.
func runConfigurations(w io.Writer, registry *sim.JobRegistry, configs []sim.QuantumConfig, opts runOptions) ([]runReport, error) {
	reports := make([]runReport, 0, len(configs))
	var outputs []sim.MetricsOutput
	failed := 0
	for i, quanta := range configs {
		rep := runReport{RunID: uuid.NewString(), Quanta: quanta}
		log := logrus.WithFields(logrus.Fields{"run": rep.RunID, "quanta": quanta.String()})

		if i > 0 && opts.Output == outputText {
			if _, err := fmt.Fprintln(w); err != nil {
				return reports, err
			}
		}

		rep.Result, rep.Err = sim.Simulate(registry, quanta, opts.Trace)
		if rep.Err != nil {
			failed++
			log.Errorf("Simulation failed: %v", rep.Err)
			reports = append(reports, rep)
			continue
		}
		log.Infof("Simulation complete: makespan=%d avg_waiting=%.2f", rep.Result.Summary.Makespan, rep.Result.Summary.AvgWaiting)

		reports = append(reports, rep)
		if opts.Output == outputJSON {
			outputs = append(outputs, sim.NewMetricsOutput(rep.RunID, rep.Result))
			continue
		}
		if err := writeTextReport(w, rep); err != nil {
			return reports, err
		}
	}
	if opts.Output == outputJSON {
		if err := sim.WriteJSON(w, outputs); err != nil {
			return reports, err
		}
	}
	if failed > 0 {
		return reports, fmt.Errorf("%d of %d configurations failed", failed, len(configs))
	}
	return reports, nil
}

func writeTextReport(w io.Writer, rep runReport) error {
	if err := sim.PrintReport(w, rep.Result); err != nil {
		return err
	}
	if rep.Result.Trace != nil {
		return printTraceSummary(w, trace.Summarize(rep.Result.Trace))
	}
	return nil
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) error {
	_, err := fmt.Fprintf(w, "Trace: dispatches=%d demotions=%d lowest-level-requeues=%d idle=%d max-admission-delay=%d by-level=%v\n",
		s.TotalDispatches, s.Demotions, s.LowestLevelStays, s.IdleTicks, s.MaxAdmissionDelay, s.DispatchesByLevel)
	return err
}
