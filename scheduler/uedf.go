package scheduler

import (
	"sort"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// uedfBudget is one slice of a core's time allotted to a task for the
// current allocation window.
type uedfBudget struct {
	taskID int
	amount rational.Rational
}

// UEDF is the Uniprocessor-EDF-derived global scheduler: whenever the task
// set's composition changes (a new job is released), it re-splits each
// core's time between tasks proportional to utilization, ordered by
// deadline, then runs whichever job each core's current budget names.
// Ported from uedf.cpp.
type UEDF struct {
	coreBudgets [][]uedfBudget
	taskNextJob []int64
	nextEvent   rational.Rational
}

func (*UEDF) Kind() (simcore.PriorityScheme, simcore.MigrationDegree) {
	return simcore.UnrestrictedDynamic, simcore.Full
}

func (u *UEDF) Init(taskSet []simcore.Task, cores int) {
	u.nextEvent = rational.FromInt(0)
	u.resetBudgets(cores)
	u.taskNextJob = make([]int64, len(taskSet))
	for i := range u.taskNextJob {
		u.taskNextJob[i] = -1
	}
}

func (u *UEDF) resetBudgets(cores int) {
	u.coreBudgets = make([][]uedfBudget, cores)
}

func (u *UEDF) Schedule(model *simcore.SimModel) simcore.ScheduleDecision {
	decision := simcore.NewIdleDecision(model.Cores, rational.PosInf)

	newJob := false
	for i := range model.TaskSet {
		if model.TaskSet[i].NextJobID() != u.taskNextJob[i] {
			u.taskNextJob[i] = model.TaskSet[i].NextJobID()
			newJob = true
		}
	}

	if newJob {
		u.reallocate(model)
	}

	taskCore := make([]int, len(model.TaskSet))
	for i := range taskCore {
		taskCore[i] = -2 // not active
	}
	coreBudgetIndex := make([]int, model.Cores)
	for i := range coreBudgetIndex {
		coreBudgetIndex[i] = -1
	}
	for _, job := range model.ActiveJobs {
		taskCore[job.TaskID] = -1 // active, not yet scheduled
	}
	for core := 0; core < model.Cores; core++ {
		for budgetIndex, budget := range u.coreBudgets[core] {
			if taskCore[budget.taskID] != -1 || budget.amount.Equal(rational.FromInt(0)) {
				continue
			}
			taskCore[budget.taskID] = core
			coreBudgetIndex[core] = budgetIndex
			break
		}
	}

	var chosen []int
	for i, job := range model.ActiveJobs {
		if taskCore[job.TaskID] != -1 {
			chosen = append(chosen, i)
		}
	}
	AssignToCores(model.ActiveJobs, decision.CoreState, chosen)

	decision.NextEvent = NextSchedEvent(model.TaskSet, model.ActiveJobs, model.Time)
	for core := 0; core < model.Cores; core++ {
		budgetIndex := coreBudgetIndex[core]
		if budgetIndex == -1 {
			continue
		}
		decision.NextEvent = rational.Min(decision.NextEvent, model.Time.Add(u.coreBudgets[core][budgetIndex].amount))
	}

	deltaTime := decision.NextEvent.Sub(model.Time)
	for core := 0; core < model.Cores; core++ {
		budgetIndex := coreBudgetIndex[core]
		if budgetIndex == -1 {
			continue
		}
		u.coreBudgets[core][budgetIndex].amount = u.coreBudgets[core][budgetIndex].amount.Sub(deltaTime)
	}

	return decision
}

// reallocate re-splits every core's time until the next job release among
// tasks with an active job, ordered by deadline and sized proportional to
// each task's utilization.
func (u *UEDF) reallocate(model *simcore.SimModel) {
	u.resetBudgets(model.Cores)
	u.nextEvent = NextJobRelease(model.TaskSet, model.ActiveJobs, model.Time)

	taskDeadline := make([]rational.Rational, len(model.TaskSet))
	for i := range taskDeadline {
		taskDeadline[i] = rational.PosInf
	}
	for _, job := range model.ActiveJobs {
		taskDeadline[job.TaskID] = job.Deadline
	}

	orderedTasks := make([]int, len(model.TaskSet))
	for i := range orderedTasks {
		orderedTasks[i] = i
	}
	sort.Slice(orderedTasks, func(i, j int) bool {
		return taskDeadline[orderedTasks[i]].Less(taskDeadline[orderedTasks[j]])
	})

	deltaTime := u.nextEvent.Sub(model.Time)
	coreBudget := make([]rational.Rational, model.Cores)
	for i := range coreBudget {
		coreBudget[i] = deltaTime
	}

	core := 0
	for _, tid := range orderedTasks {
		task := &model.TaskSet[tid]
		taskBudget := deltaTime.Mul(task.ExecTime.Quo(task.Period))
		for taskBudget.Greater(rational.FromInt(0)) {
			if coreBudget[core].Equal(rational.FromInt(0)) {
				core++
				if core >= model.Cores {
					break
				}
			}
			allocAmount := rational.Min(taskBudget, coreBudget[core])
			u.coreBudgets[core] = append(u.coreBudgets[core], uedfBudget{taskID: tid, amount: allocAmount})
			taskBudget = taskBudget.Sub(allocAmount)
			coreBudget[core] = coreBudget[core].Sub(allocAmount)
		}
	}
}
