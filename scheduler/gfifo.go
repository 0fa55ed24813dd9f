package scheduler

import (
	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// GFIFO is Global First-In-First-Out: every active job has equal priority,
// so ChooseByPriority's lower-index tiebreak (which matches ActiveJobs'
// running/preempted/fresh-then-release ordering) is the entire policy.
// Ported from gfifo.cpp.
type GFIFO struct{}

func (GFIFO) Kind() (simcore.PriorityScheme, simcore.MigrationDegree) {
	return simcore.Static, simcore.Full
}

func (GFIFO) Init(taskSet []simcore.Task, cores int) {}

func (GFIFO) Schedule(model *simcore.SimModel) simcore.ScheduleDecision {
	decision := simcore.NewIdleDecision(model.Cores, rational.PosInf)

	priority := func(j simcore.Job) int64 { return 0 }
	chosen := ChooseByPriority(model.ActiveJobs, model.Cores, int64(-1), IntLess, priority)
	AssignToCores(model.ActiveJobs, decision.CoreState, chosen)

	decision.NextEvent = rational.Min(
		NextSchedEvent(model.TaskSet, model.ActiveJobs, model.Time),
		NextJobCompletion(model.ActiveJobs, decision.CoreState, model.Time),
	)
	return decision
}
