package scheduler

import (
	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// GDM is Global Deadline Monotonic: priority is fixed per task at
// min(period, relative deadline), so (unlike GEDF) it never changes job to
// job. Ported from gdm.cpp.
type GDM struct{}

func (GDM) Kind() (simcore.PriorityScheme, simcore.MigrationDegree) {
	return simcore.Static, simcore.Full
}

func (GDM) Init(taskSet []simcore.Task, cores int) {}

func (GDM) Schedule(model *simcore.SimModel) simcore.ScheduleDecision {
	decision := simcore.NewIdleDecision(model.Cores, rational.PosInf)

	priority := func(j simcore.Job) rational.Rational {
		task := &model.TaskSet[j.TaskID]
		return rational.Min(task.Period, task.RelativeDeadline).Neg()
	}
	chosen := ChooseByPriority(model.ActiveJobs, model.Cores, rational.NegInf, RationalLess, priority)
	AssignToCores(model.ActiveJobs, decision.CoreState, chosen)

	decision.NextEvent = rational.Min(
		NextSchedEvent(model.TaskSet, model.ActiveJobs, model.Time),
		NextJobCompletion(model.ActiveJobs, decision.CoreState, model.Time),
	)
	return decision
}
