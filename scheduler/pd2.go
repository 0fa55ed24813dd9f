package scheduler

import (
	"math"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// PD2 is the Pfair/PD² algorithm: each job is divided into unit-size
// subtasks with their own windows ("intervals"), and the packed priority
// below orders subtasks by window deadline, then by whether the job's
// current window overlaps the next (a heavier job gets priority), then by
// the deadline of its next group. PD² only operates in unit time steps, so
// Schedule always advances by exactly one time unit. Ported from pd2.cpp.
//
// EarlyRelease controls whether a job may be scheduled before its current
// window officially opens (the variant the original calls "early
// releasing"). The zero value is false; the experiment harness constructs
// PD2 with EarlyRelease true, matching the original's default.
type PD2 struct {
	EarlyRelease bool

	validTaskSet bool
}

func (*PD2) Kind() (simcore.PriorityScheme, simcore.MigrationDegree) {
	return simcore.UnrestrictedDynamic, simcore.Full
}

func (p *PD2) Init(taskSet []simcore.Task, cores int) {
	p.validTaskSet = UsesIntegerTime(taskSet)
}

// pd2Interval returns the [first, second] unit-time window subtask workDone
// of a job (released at release, with execNum total units of work and an
// integer deadline) must run within to stay on pace with its Pfair rate.
func pd2Interval(release, execNum, deadline int64) func(workDone int64) (int64, int64) {
	relDeadline := deadline - release
	return func(workDone int64) (int64, int64) {
		first := release + maxInt64(0, ((workDone-1)*relDeadline+execNum)/execNum-1)
		second := release + minInt64(relDeadline-1, (workDone*relDeadline+execNum-1)/execNum-1)
		return first, second
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func (p *PD2) Schedule(model *simcore.SimModel) simcore.ScheduleDecision {
	decision := simcore.NewIdleDecision(model.Cores, model.Time.Add(rational.FromInt(1)))
	if !p.validTaskSet {
		return decision
	}

	priority := func(j simcore.Job) int64 {
		getItv := pd2Interval(j.ReleaseTime.Num, j.ExecTime.Num, j.Deadline.Num)

		firstFirst, firstSecond := getItv(j.Runtime.Num + 1)
		if p.EarlyRelease {
			firstFirst = 0
		} else if rational.FromInt(firstFirst).Greater(model.Time) {
			return -1
		}

		currWork := j.Runtime.Num
		currFirst, currSecond := firstFirst, firstSecond
		nextFirst, nextSecond := firstFirst, firstSecond
		var overlappingNext bool
		var currItvLen int64

		step := func() {
			currFirst, currSecond = nextFirst, nextSecond
			currWork++
			nextFirst, nextSecond = getItv(currWork + 1)
			overlappingNext = currSecond == nextFirst
			currItvLen = currSecond + 1 - currFirst
		}
		step()

		priority := (int64(math.MaxInt32) - firstSecond) << 32
		if overlappingNext {
			priority += int64(1) << 31
		}
		for currWork < j.ExecTime.Num && overlappingNext && currItvLen == 2 {
			step()
		}
		priority += currFirst + 1
		return priority
	}

	chosen := ChooseByPriority(model.ActiveJobs, model.Cores, int64(-1), IntLess, priority)
	AssignToCores(model.ActiveJobs, decision.CoreState, chosen)
	decision.NextEvent = model.Time.Add(rational.FromInt(1))
	return decision
}
