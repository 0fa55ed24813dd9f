// Package simcore implements the task/job model and the event-driven
// simulation engine that drives a pluggable scheduler across simulated time.
package simcore

import "github.com/schedsim/marisa/rational"

// Task is the immutable description of a periodic task: a Phase (first
// release offset), Period, per-job ExecTime, and RelativeDeadline. NextJob
// advances the task's own release cursor, so Task carries the one piece of
// mutable state (NextRelease, nextJobID) needed to generate its job stream.
type Task struct {
	Phase            rational.Rational
	Period           rational.Rational
	ExecTime         rational.Rational
	RelativeDeadline rational.Rational
	NextRelease      rational.Rational
	nextJobID        int64
}

// NewTask builds a Task with NextRelease initialized to Phase.
func NewTask(phase, period, execTime, relativeDeadline rational.Rational) Task {
	return Task{
		Phase:            phase,
		Period:           period,
		ExecTime:         execTime,
		RelativeDeadline: relativeDeadline,
		NextRelease:      phase,
	}
}

// NextJob releases the next job of this task, advancing NextRelease by
// Period. taskID is supplied by the caller (SimModel indexes tasks by
// position in its TaskSet, so the task itself does not know its own index).
func (t *Task) NextJob(taskID int) Job {
	job := Job{
		TaskID:      taskID,
		JobID:       t.nextJobID,
		Period:      t.Period,
		ReleaseTime: t.NextRelease,
		ExecTime:    t.ExecTime,
		Runtime:     rational.FromInt(0),
		Deadline:    t.NextRelease.Add(t.RelativeDeadline),
		Core:        -1,
	}
	t.nextJobID++
	t.NextRelease = t.NextRelease.Add(t.Period)
	return job
}

// Utilization returns ExecTime / Period, the task's contribution to total
// system utilization.
func (t *Task) Utilization() rational.Rational {
	return t.ExecTime.Quo(t.Period)
}

// NextJobID returns the id NextJob will assign to this task's next
// released job. Schedulers that must notice a new job arriving (UEDF) poll
// this to detect the transition without the engine having to push events.
func (t *Task) NextJobID() int64 {
	return t.nextJobID
}
