// Implements the per-level ready queues. Jobs enter level 0 on arrival and
// move to the tail of a lower level each time they exhaust a quantum.

package sim

import (
	"fmt"
	"strings"
)

// LevelQueue is a FIFO queue of jobs waiting at one priority level.
type LevelQueue struct {
	queue []*TrackedJob
}

// Enqueue adds a job to the back of the queue.
func (lq *LevelQueue) Enqueue(j *TrackedJob) {
	if j == nil {
		panic("Enqueue: job must not be nil")
	}
	lq.queue = append(lq.queue, j)
}

func (lq *LevelQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, j := range lq.queue {
		sb.WriteString(j.ID)
		if i < len(lq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of jobs in the queue.
func (lq *LevelQueue) Len() int {
	return len(lq.queue)
}

// DequeueFront removes and returns the oldest job, or nil if empty.
func (lq *LevelQueue) DequeueFront() *TrackedJob {
	if len(lq.queue) == 0 {
		return nil
	}
	j := lq.queue[0]
	lq.queue[0] = nil
	lq.queue = lq.queue[1:]
	return j
}

// QueueSet holds one LevelQueue per priority level.
type QueueSet struct {
	levels []*LevelQueue
}

// NewQueueSet creates numLevels empty queues.
func NewQueueSet(numLevels int) *QueueSet {
	levels := make([]*LevelQueue, numLevels)
	for i := range levels {
		levels[i] = &LevelQueue{}
	}
	return &QueueSet{levels: levels}
}

// Level returns the queue for the given level. Panics if out of range.
func (qs *QueueSet) Level(level int) *LevelQueue {
	if level < 0 || level >= len(qs.levels) {
		panic(fmt.Sprintf("Level: level %d out of range [0, %d]", level, len(qs.levels)-1))
	}
	return qs.levels[level]
}

// NumLevels returns the number of levels.
func (qs *QueueSet) NumLevels() int {
	return len(qs.levels)
}

// FirstNonEmpty returns the highest-priority level holding at least one job,
// or -1 if every queue is empty. A linear scan is fine for the handful of
// levels a configuration has.
func (qs *QueueSet) FirstNonEmpty() int {
	for level, q := range qs.levels {
		if q.Len() > 0 {
			return level
		}
	}
	return -1
}

// TotalLen returns the number of queued jobs across all levels.
func (qs *QueueSet) TotalLen() int {
	n := 0
	for _, q := range qs.levels {
		n += q.Len()
	}
	return n
}

func (qs *QueueSet) String() string {
	parts := make([]string, len(qs.levels))
	for i, q := range qs.levels {
		parts[i] = fmt.Sprintf("L%d=%s", i, q)
	}
	return strings.Join(parts, " ")
}
