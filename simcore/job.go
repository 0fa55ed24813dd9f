package simcore

import "github.com/schedsim/marisa/rational"

// Job is one release of a Task: its own copy of the timing parameters at
// release time, plus the mutable execution bookkeeping the engine updates
// every step (Runtime, Core, Running, PreemptCount, MigrationCount).
//
// Jobs reference their source Task by index (TaskID) rather than by
// pointer: the C++ original tags a Job with a back-pointer to its Task
// purely so priority functions like GDM's can read Task.Period. The index
// plus SimModel.TaskSet gives the same lookup without aliasing a Task the
// job's owning TaskSim might later mutate.
type Job struct {
	TaskID int
	JobID  int64

	Period      rational.Rational
	ReleaseTime rational.Rational
	ExecTime    rational.Rational
	Deadline    rational.Rational

	Runtime        rational.Rational
	Core           int
	Running        bool
	PreemptCount   int
	MigrationCount int
}

// UID packs TaskID and JobID into a single comparable value, used by
// schedulers and traces that want a single map key per job instance.
func (j Job) UID() int64 {
	return int64(j.TaskID)<<32 | j.JobID
}

// Remaining returns the execution time still owed before the job completes.
func (j Job) Remaining() rational.Rational {
	return j.ExecTime.Sub(j.Runtime)
}

// Laxity returns Deadline - now - Remaining, the slack before the job must
// run continuously to meet its deadline.
func (j Job) Laxity(now rational.Rational) rational.Rational {
	return j.Deadline.Sub(now).Sub(j.Remaining())
}
