package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/mlfq-sim/sim"
	"github.com/inference-sim/mlfq-sim/sim/trace"
	"github.com/inference-sim/mlfq-sim/sim/workload"
)

var (
	logLevel        string   // Log verbosity level
	workloadPath    string   // YAML workload file (jobs + configurations)
	scenarioName    string   // Built-in scenario used when no workload file is given
	quantaFlags     []string // Quantum configurations, e.g. "5,10,20"; overrides the workload's
	outputFormat    string   // text or json
	traceLevel      string   // Decision trace verbosity
	metricsTextfile string   // Prometheus textfile output path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mlfq-sim",
	Short: "Discrete-time Multi-Level Feedback Queue scheduler simulator",
}

// runCmd simulates the job set under every quantum configuration
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the MLFQ simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if !validOutputs[outputFormat] {
			logrus.Fatalf("Invalid output format %q; valid: text, json", outputFormat)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level %q; valid: none, decisions", traceLevel)
		}

		spec, err := loadSpec(workloadPath, scenarioName)
		if err != nil {
			logrus.Fatalf("Unable to load workload: %v", err)
		}
		registry, err := spec.Registry()
		if err != nil {
			logrus.Fatalf("Invalid job set: %v", err)
		}
		configs, err := resolveConfigs(quantaFlags, spec)
		if err != nil {
			logrus.Fatalf("Invalid quantum configuration: %v", err)
		}

		logrus.Infof("Starting %d simulation(s) over %d jobs", len(configs), registry.Len())
		reports, runErr := runConfigurations(os.Stdout, registry, configs, runOptions{
			Output: outputFormat,
			Trace:  trace.TraceConfig{Level: trace.TraceLevel(traceLevel)},
		})

		if metricsTextfile != "" {
			if err := writeMetricsTextfile(metricsTextfile, reports); err != nil {
				logrus.Fatalf("Unable to write metrics: %v", err)
			}
			logrus.Infof("Metrics written to %s", metricsTextfile)
		}
		if runErr != nil {
			logrus.Fatalf("%v", runErr)
		}
	},
}

func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// loadSpec loads the workload file if given, otherwise the named built-in scenario.
func loadSpec(path, scenario string) (*workload.WorkloadSpec, error) {
	if path != "" {
		spec, err := workload.LoadWorkloadSpec(path)
		if err != nil {
			return nil, err
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return spec, nil
	}
	build, ok := workload.Scenarios[scenario]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", scenario)
	}
	return build(), nil
}

// resolveConfigs returns the --quanta flags if any were given, otherwise the
// spec's configurations.
func resolveConfigs(flags []string, spec *workload.WorkloadSpec) ([]sim.QuantumConfig, error) {
	if len(flags) == 0 {
		configs := spec.QuantumConfigs()
		if len(configs) == 0 {
			return nil, fmt.Errorf("%w: no quantum configurations; pass --quanta or list configurations in the workload", sim.ErrInvalidConfig)
		}
		return configs, nil
	}
	configs := make([]sim.QuantumConfig, 0, len(flags))
	for _, f := range flags {
		q, err := sim.ParseQuantumConfig(f)
		if err != nil {
			return nil, err
		}
		configs = append(configs, q)
	}
	return configs, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&workloadPath, "workload", "", "YAML workload file with jobs and quantum configurations")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "default", "Built-in scenario when --workload is not set (default, idle-gap, starvation)")
	runCmd.Flags().StringArrayVar(&quantaFlags, "quanta", nil, "Comma-separated quanta per level, highest priority first; repeat for several configurations")
	runCmd.Flags().StringVar(&outputFormat, "output", outputText, "Output format (text, json)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write per-configuration metrics in Prometheus text format to this path")

	rootCmd.AddCommand(runCmd)
}
