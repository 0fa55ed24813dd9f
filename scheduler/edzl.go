package scheduler

import (
	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// EDZL is Earliest Deadline until Zero Laxity: like GEDF, but a job whose
// laxity (deadline - now - remaining exec) has hit zero is forced to run
// regardless of its deadline, since delaying it even an instant longer
// guarantees a miss. Ported from edzl.cpp.
type EDZL struct{}

func (EDZL) Kind() (simcore.PriorityScheme, simcore.MigrationDegree) {
	return simcore.JobLevelDynamic, simcore.Full
}

func (EDZL) Init(taskSet []simcore.Task, cores int) {}

func (EDZL) Schedule(model *simcore.SimModel) simcore.ScheduleDecision {
	decision := simcore.NewIdleDecision(model.Cores, rational.PosInf)

	priority := func(j simcore.Job) rational.Rational {
		if j.Deadline.Sub(model.Time).Equal(j.ExecTime.Sub(j.Runtime)) {
			return rational.PosInf
		}
		return j.Deadline.Neg()
	}
	chosen := ChooseByPriority(model.ActiveJobs, model.Cores, rational.NegInf, RationalLess, priority)
	AssignToCores(model.ActiveJobs, decision.CoreState, chosen)

	decision.NextEvent = rational.Min(
		NextSchedEvent(model.TaskSet, model.ActiveJobs, model.Time),
		NextJobCompletion(model.ActiveJobs, decision.CoreState, model.Time),
	)

	// A job not scheduled this round may still reach zero laxity before the
	// next event already chosen above; if so, that's an earlier forcing
	// point this decision must also wake up for.
	scheduled := make([]bool, len(model.ActiveJobs))
	for _, i := range decision.CoreState {
		if i != -1 {
			scheduled[i] = true
		}
	}
	for i, job := range model.ActiveJobs {
		if scheduled[i] {
			continue
		}
		event := job.Deadline.Sub(job.ExecTime.Sub(job.Runtime))
		if event.Greater(model.Time) {
			decision.NextEvent = rational.Min(decision.NextEvent, event)
		}
	}
	return decision
}
