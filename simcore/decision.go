package simcore

import "github.com/schedsim/marisa/rational"

// ScheduleDecision is what a Scheduler implementation returns each time it
// is invoked: which job (by index into the active-jobs slice the scheduler
// was given, or -1 for idle) occupies each core, and the simulated time of
// the next point at which the decision must be reconsidered.
type ScheduleDecision struct {
	CoreState []int             // CoreState[c] = index of the job on core c, or -1
	NextEvent rational.Rational // time of the next scheduling event
}

// NewIdleDecision returns a decision that idles every core until nextEvent.
func NewIdleDecision(cores int, nextEvent rational.Rational) ScheduleDecision {
	cs := make([]int, cores)
	for i := range cs {
		cs[i] = -1
	}
	return ScheduleDecision{CoreState: cs, NextEvent: nextEvent}
}
