// Package workload loads and generates MLFQ job sets.
package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/mlfq-sim/sim"
)

// CurrentVersion is written by SaveWorkloadSpec and assumed when version is omitted.
const CurrentVersion = "1"

// WorkloadSpec is the top-level workload file: a job list plus the quantum
// configurations to evaluate it under.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version        string    `yaml:"version"`
	Seed           int64     `yaml:"seed,omitempty"` // informational; set by the generator
	Jobs           []JobSpec `yaml:"jobs"`
	Configurations [][]int64 `yaml:"configurations,omitempty"`
}

// JobSpec is one job entry in a workload file.
type JobSpec struct {
	ID      string `yaml:"id"`
	Arrival int64  `yaml:"arrival"`
	Burst   int64  `yaml:"burst"`
}

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	return ParseWorkloadSpec(data)
}

// ParseWorkloadSpec parses YAML workload bytes with strict field checking.
func ParseWorkloadSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		logrus.Warnf("workload spec has no version; assuming %q", CurrentVersion)
		spec.Version = CurrentVersion
	}
	return &spec, nil
}

// SaveWorkloadSpec writes spec as YAML to path.
func SaveWorkloadSpec(path string, spec *WorkloadSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("encoding workload spec: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing workload spec: %w", err)
	}
	return nil
}

// Validate checks the version, the job list and every configuration.
func (s *WorkloadSpec) Validate() error {
	if s.Version != CurrentVersion {
		return fmt.Errorf("unsupported workload version %q; valid: %s", s.Version, CurrentVersion)
	}
	if _, err := s.Registry(); err != nil {
		return err
	}
	for i, q := range s.Configurations {
		if err := sim.QuantumConfig(q).Validate(); err != nil {
			return fmt.Errorf("configurations[%d]: %w", i, err)
		}
	}
	return nil
}

// Registry builds a validated JobRegistry preserving file order.
func (s *WorkloadSpec) Registry() (*sim.JobRegistry, error) {
	jobs := make([]sim.Job, len(s.Jobs))
	for i, j := range s.Jobs {
		jobs[i] = sim.Job{ID: j.ID, ArrivalTime: j.Arrival, BurstTime: j.Burst}
	}
	return sim.NewJobRegistry(jobs)
}

// QuantumConfigs returns the configurations declared in the file.
func (s *WorkloadSpec) QuantumConfigs() []sim.QuantumConfig {
	out := make([]sim.QuantumConfig, len(s.Configurations))
	for i, q := range s.Configurations {
		out[i] = append(sim.QuantumConfig(nil), q...)
	}
	return out
}

// FromJobs builds a WorkloadSpec from an in-memory job list.
func FromJobs(jobs []sim.Job, configs []sim.QuantumConfig) *WorkloadSpec {
	spec := &WorkloadSpec{Version: CurrentVersion}
	for _, j := range jobs {
		spec.Jobs = append(spec.Jobs, JobSpec{ID: j.ID, Arrival: j.ArrivalTime, Burst: j.BurstTime})
	}
	for _, q := range configs {
		spec.Configurations = append(spec.Configurations, append([]int64(nil), q...))
	}
	return spec
}
