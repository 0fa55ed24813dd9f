package simcore

import "github.com/schedsim/marisa/rational"

// EndState classifies why an ExecBlock ended: the job was preempted before
// finishing, it completed within the block, or it was still running when
// its deadline arrived (a miss).
type EndState int

const (
	Preempted EndState = iota
	Completed
	Missed
)

func (s EndState) String() string {
	switch s {
	case Preempted:
		return "preempted"
	case Completed:
		return "completed"
	case Missed:
		return "missed"
	default:
		return "unknown"
	}
}

// ExecBlock records one contiguous interval during which a job ran on a
// core, grounded on the original's ExecBlock: task/job identity, the core,
// the interval, and how the interval ended.
type ExecBlock struct {
	TaskID   int
	JobID    int64
	Core     int
	Start    rational.Rational
	End      rational.Rational
	EndState EndState
}

// Trace is an append-only record of exec blocks. Producers (SimModel) only
// ever append; merging adjacent same-(task,job,core) blocks is left to
// consumers (the text exporter does not merge either, matching the
// original's behavior).
type Trace struct {
	blocks []ExecBlock
}

// Add records a block for job running from start to end, classifying its
// EndState from the job's post-block Runtime and Deadline.
func (t *Trace) Add(job Job, start, end rational.Rational) {
	var state EndState
	switch {
	case job.Runtime.GreaterEq(job.ExecTime):
		state = Completed
	case job.Deadline.LessEq(end):
		state = Missed
	default:
		state = Preempted
	}
	t.blocks = append(t.blocks, ExecBlock{
		TaskID:   job.TaskID,
		JobID:    job.JobID,
		Core:     job.Core,
		Start:    start,
		End:      end,
		EndState: state,
	})
}

// Drain returns all recorded blocks in FIFO order and clears the trace.
func (t *Trace) Drain() []ExecBlock {
	blocks := t.blocks
	t.blocks = nil
	return blocks
}

// Len reports how many blocks are currently buffered.
func (t *Trace) Len() int {
	return len(t.blocks)
}
