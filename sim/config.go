package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidConfig is returned for unusable input: an empty or non-positive
// quantum list, or an invalid job registry. Nothing is simulated.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrInvariantViolation signals that the scheduling loop broke one of its own
// invariants, e.g. a job reached statistics derivation without a completion time.
var ErrInvariantViolation = errors.New("scheduler invariant violated")

// QuantumConfig holds one time quantum per priority level; index 0 is the
// highest priority. Values need not be monotonic.
type QuantumConfig []int64

// Validate rejects empty configurations and non-positive quanta.
func (q QuantumConfig) Validate() error {
	if len(q) == 0 {
		return fmt.Errorf("%w: at least one quantum level is required", ErrInvalidConfig)
	}
	for level, quantum := range q {
		if quantum <= 0 {
			return fmt.Errorf("%w: quantum for level %d must be positive, got %d", ErrInvalidConfig, level, quantum)
		}
	}
	return nil
}

// MaxLevel is the lowest-priority level index.
func (q QuantumConfig) MaxLevel() int {
	return len(q) - 1
}

// String renders the configuration as a comma-separated list, e.g. "5,10,20".
func (q QuantumConfig) String() string {
	parts := make([]string, len(q))
	for i, v := range q {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}

// ParseQuantumConfig parses a comma-separated list such as "5,10,20" and validates it.
func ParseQuantumConfig(s string) (QuantumConfig, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: at least one quantum level is required", ErrInvalidConfig)
	}
	var q QuantumConfig
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: quantum %q is not an integer", ErrInvalidConfig, part)
		}
		q = append(q, v)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}
