package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/mlfq-sim/sim"
	"github.com/inference-sim/mlfq-sim/sim/workload"
)

var (
	genOutput string   // Output YAML path
	genConfig workload.GeneratorConfig
	genQuanta []string // Configurations written into the file
)

// generateCmd writes a seeded synthetic workload file usable with `run --workload`
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic workload YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		jobs, err := workload.GenerateJobs(genConfig)
		if err != nil {
			logrus.Fatalf("Invalid generator settings: %v", err)
		}
		configs := make([]sim.QuantumConfig, 0, len(genQuanta))
		for _, f := range genQuanta {
			q, err := sim.ParseQuantumConfig(f)
			if err != nil {
				logrus.Fatalf("Invalid quantum configuration: %v", err)
			}
			configs = append(configs, q)
		}

		spec := workload.FromJobs(jobs, configs)
		spec.Seed = genConfig.Seed
		if err := workload.SaveWorkloadSpec(genOutput, spec); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Wrote %d jobs to %s", len(jobs), genOutput)
	},
}

func init() {
	generateCmd.Flags().StringVar(&genOutput, "out", "workload.yaml", "Output YAML path")
	generateCmd.Flags().Int64Var(&genConfig.Seed, "seed", 42, "Seed for job generation")
	generateCmd.Flags().IntVar(&genConfig.NumJobs, "num-jobs", 10, "Number of jobs")
	generateCmd.Flags().Int64Var(&genConfig.MaxInterArrival, "max-inter-arrival", 5, "Maximum gap between consecutive arrivals (ticks)")
	generateCmd.Flags().Int64Var(&genConfig.MinBurst, "min-burst", 1, "Minimum burst time (ticks)")
	generateCmd.Flags().Int64Var(&genConfig.MaxBurst, "max-burst", 20, "Maximum burst time (ticks)")
	generateCmd.Flags().StringArrayVar(&genQuanta, "quanta", []string{"5,10,20"}, "Quantum configurations to include; repeatable")
	rootCmd.AddCommand(generateCmd)
}
