package scheduler

import (
	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// LLREF is the Largest Local Remaining Execution First algorithm: time is
// divided into "TL planes" bounded by releases and deadlines, and within
// each plane every active job gets a local execution budget proportional to
// its share of that plane; cores always run the jobs with the most local
// budget left. Ported from llref.cpp. Unlike the stateless EDF family,
// LLREF carries state (the current plane boundary and each job's remaining
// local budget) across Schedule calls, so it is a struct with fields rather
// than an empty one.
type LLREF struct {
	nextEvent rational.Rational
	localExec map[int64]rational.Rational
}

func (*LLREF) Kind() (simcore.PriorityScheme, simcore.MigrationDegree) {
	return simcore.UnrestrictedDynamic, simcore.Full
}

func (l *LLREF) Init(taskSet []simcore.Task, cores int) {
	l.nextEvent = rational.FromInt(0)
	l.localExec = make(map[int64]rational.Rational)
}

func (l *LLREF) Schedule(model *simcore.SimModel) simcore.ScheduleDecision {
	decision := simcore.NewIdleDecision(model.Cores, rational.PosInf)
	decision.NextEvent = NextSchedEvent(model.TaskSet, model.ActiveJobs, model.Time)

	// Enter the next TL plane: recompute every active job's local budget
	// for the span from the last plane boundary to this one.
	if decision.NextEvent.Greater(l.nextEvent) {
		tlTime := decision.NextEvent.Sub(l.nextEvent)
		l.localExec = make(map[int64]rational.Rational, len(model.ActiveJobs))
		for _, job := range model.ActiveJobs {
			share := job.ExecTime.Quo(job.Deadline.Sub(job.ReleaseTime))
			l.localExec[job.UID()] = tlTime.Mul(share)
		}
		l.nextEvent = decision.NextEvent
	}

	priority := func(j simcore.Job) rational.Rational { return l.localExec[j.UID()] }
	chosen := ChooseByPriority(model.ActiveJobs, model.Cores, rational.FromInt(0), RationalLess, priority)
	AssignToCores(model.ActiveJobs, decision.CoreState, chosen)

	// A scheduled job's next secondary event is when its local budget runs
	// out; an unscheduled job's is whenever the plane ends minus whatever
	// budget it's carrying forward unused.
	nextSecondary := make([]rational.Rational, len(model.ActiveJobs))
	assigned := make([]bool, len(model.ActiveJobs))
	for _, i := range decision.CoreState {
		if i == -1 {
			continue
		}
		assigned[i] = true
		nextSecondary[i] = model.Time.Add(l.localExec[model.ActiveJobs[i].UID()])
	}
	for i, job := range model.ActiveJobs {
		if assigned[i] {
			continue
		}
		nextSecondary[i] = l.nextEvent.Sub(l.localExec[job.UID()])
	}
	for i := range model.ActiveJobs {
		if !nextSecondary[i].Greater(model.Time) || !decision.NextEvent.Greater(nextSecondary[i]) {
			continue
		}
		decision.NextEvent = nextSecondary[i]
	}

	for _, i := range decision.CoreState {
		if i == -1 {
			continue
		}
		job := model.ActiveJobs[i]
		l.localExec[job.UID()] = l.localExec[job.UID()].Sub(decision.NextEvent.Sub(model.Time))
	}
	return decision
}
