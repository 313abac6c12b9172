package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/inference-sim/mlfq-sim/sim"
)

// GeneratorConfig parameterizes synthetic job generation.
type GeneratorConfig struct {
	Seed            int64
	NumJobs         int
	MaxInterArrival int64 // inter-arrival gaps are uniform in [0, MaxInterArrival]
	MinBurst        int64
	MaxBurst        int64 // bursts are uniform in [MinBurst, MaxBurst]
}

// Validate checks generator bounds.
func (c GeneratorConfig) Validate() error {
	if c.NumJobs <= 0 {
		return fmt.Errorf("num jobs must be positive, got %d", c.NumJobs)
	}
	if c.MaxInterArrival < 0 {
		return fmt.Errorf("max inter-arrival must be non-negative, got %d", c.MaxInterArrival)
	}
	if c.MinBurst <= 0 || c.MaxBurst < c.MinBurst {
		return fmt.Errorf("burst range [%d, %d] invalid; need 0 < min <= max", c.MinBurst, c.MaxBurst)
	}
	// Worst case: every gap and every burst at its maximum.
	n := int64(c.NumJobs)
	if c.MaxInterArrival > (math.MaxInt64-1)/max(n-1, 1) || c.MaxBurst > math.MaxInt64/n ||
		c.MaxInterArrival*(n-1) > math.MaxInt64-c.MaxBurst*n {
		return fmt.Errorf("%d jobs with max inter-arrival %d and max burst %d overflow the simulated clock",
			c.NumJobs, c.MaxInterArrival, c.MaxBurst)
	}
	return nil
}

// GenerateJobs produces a deterministic job list: the same config always
// yields the same jobs. Job IDs are J0, J1, ... and arrivals are non-decreasing.
func GenerateJobs(cfg GeneratorConfig) ([]sim.Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	jobs := make([]sim.Job, 0, cfg.NumJobs)
	arrival := int64(0)
	for i := 0; i < cfg.NumJobs; i++ {
		if i > 0 {
			arrival += rng.Int63n(cfg.MaxInterArrival + 1)
		}
		burst := cfg.MinBurst + rng.Int63n(cfg.MaxBurst-cfg.MinBurst+1)
		jobs = append(jobs, sim.Job{ID: fmt.Sprintf("J%d", i), ArrivalTime: arrival, BurstTime: burst})
	}
	return jobs, nil
}
