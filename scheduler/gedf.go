package scheduler

import (
	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// GEDF is Global Earliest Deadline First: every core runs the earliest
// deadline among all active jobs, migrating freely between cores. Ported
// from gedf.cpp.
type GEDF struct{}

func (GEDF) Kind() (simcore.PriorityScheme, simcore.MigrationDegree) {
	return simcore.JobLevelDynamic, simcore.Full
}

func (GEDF) Init(taskSet []simcore.Task, cores int) {}

func (GEDF) Schedule(model *simcore.SimModel) simcore.ScheduleDecision {
	decision := simcore.NewIdleDecision(model.Cores, rational.PosInf)

	priority := func(j simcore.Job) rational.Rational { return j.Deadline.Neg() }
	chosen := ChooseByPriority(model.ActiveJobs, model.Cores, rational.NegInf, RationalLess, priority)
	AssignToCores(model.ActiveJobs, decision.CoreState, chosen)

	decision.NextEvent = rational.Min(
		NextSchedEvent(model.TaskSet, model.ActiveJobs, model.Time),
		NextJobCompletion(model.ActiveJobs, decision.CoreState, model.Time),
	)
	return decision
}
