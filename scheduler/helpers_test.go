package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/scheduler"
	"github.com/schedsim/marisa/simcore"
)

func job(taskID int, deadline int64) simcore.Job {
	return simcore.Job{
		TaskID:   taskID,
		Deadline: rational.FromInt(deadline),
		Core:     -1,
	}
}

func TestChooseByPriorityKeepsTopN(t *testing.T) {
	jobs := []simcore.Job{
		job(0, 10),
		job(1, 5),
		job(2, 20),
		job(3, 1),
	}
	// earliest-deadline-first: priority is -deadline, higher is better.
	priority := func(j simcore.Job) int64 { return -j.Deadline.Floor() }

	chosen := scheduler.ChooseByPriority(jobs, 2, int64(-1000), scheduler.IntLess, priority)
	require.Len(t, chosen, 2)

	set := map[int]bool{}
	for _, i := range chosen {
		set[i] = true
	}
	require.True(t, set[3]) // deadline 1, best
	require.True(t, set[1]) // deadline 5, second best
}

func TestChooseByPriorityRespectsThreshold(t *testing.T) {
	jobs := []simcore.Job{job(0, 10), job(1, 5)}
	priority := func(j simcore.Job) int64 { return -j.Deadline.Floor() }

	// threshold excludes everything weaker than -8 (deadline > 8), so only
	// job 1 (deadline 5, priority -5) qualifies.
	chosen := scheduler.ChooseByPriority(jobs, 2, int64(-8), scheduler.IntLess, priority)
	require.Equal(t, []int{1}, chosen)
}

func TestChooseByPriorityBreaksTiesByLowerIndex(t *testing.T) {
	jobs := []simcore.Job{job(0, 5), job(1, 5), job(2, 5)}
	priority := func(j simcore.Job) int64 { return -j.Deadline.Floor() }

	chosen := scheduler.ChooseByPriority(jobs, 2, int64(-1000), scheduler.IntLess, priority)
	require.Len(t, chosen, 2)
	set := map[int]bool{}
	for _, i := range chosen {
		set[i] = true
	}
	require.True(t, set[0])
	require.True(t, set[1])
	require.False(t, set[2])
}

func TestChooseByPriorityWithRationalPriority(t *testing.T) {
	jobs := []simcore.Job{job(0, 10), job(1, 5), job(2, 20)}
	priority := func(j simcore.Job) rational.Rational { return j.Deadline.Neg() }

	chosen := scheduler.ChooseByPriority(jobs, 1, rational.NegInf, scheduler.RationalLess, priority)
	require.Equal(t, []int{1}, chosen)
}

func TestAssignToCoresKeepsRunningJobInPlace(t *testing.T) {
	jobs := []simcore.Job{
		{Running: true, Core: 1},
		{Running: false, Core: -1},
	}
	coreState := []int{-1, -1}
	scheduler.AssignToCores(jobs, coreState, []int{0, 1})

	require.Equal(t, 0, coreState[1])
	require.Equal(t, 1, coreState[0])
}

func TestAssignToCoresPrefersPreviousCoreForPreempted(t *testing.T) {
	jobs := []simcore.Job{
		{Running: false, Core: 1}, // was preempted from core 1
	}
	coreState := []int{-1, -1}
	scheduler.AssignToCores(jobs, coreState, []int{0})

	require.Equal(t, 0, coreState[1])
	require.Equal(t, -1, coreState[0])
}

func TestNextSchedEventTakesEarliestOfReleaseAndDeadline(t *testing.T) {
	tasks := []simcore.Task{
		simcore.NewTask(rational.FromInt(0), rational.FromInt(10), rational.FromInt(1), rational.FromInt(10)),
	}
	tasks[0].NextRelease = rational.FromInt(7)
	jobs := []simcore.Job{job(0, 3)}

	got := scheduler.NextSchedEvent(tasks, jobs, rational.FromInt(0))
	require.True(t, got.Equal(rational.FromInt(3)))
}

func TestNextJobCompletionIgnoresIdleCores(t *testing.T) {
	jobs := []simcore.Job{
		{ExecTime: rational.FromInt(5), Runtime: rational.FromInt(2)},
	}
	coreState := []int{-1, 0}

	got := scheduler.NextJobCompletion(jobs, coreState, rational.FromInt(10))
	require.True(t, got.Equal(rational.FromInt(13)))
}

func TestUsesIntegerTimeDetectsFractionalTask(t *testing.T) {
	integerTasks := []simcore.Task{
		simcore.NewTask(rational.FromInt(0), rational.FromInt(10), rational.FromInt(3), rational.FromInt(10)),
	}
	require.True(t, scheduler.UsesIntegerTime(integerTasks))

	fractionalTasks := []simcore.Task{
		simcore.NewTask(rational.FromInt(0), rational.New(10, 3), rational.FromInt(3), rational.FromInt(10)),
	}
	require.False(t, scheduler.UsesIntegerTime(fractionalTasks))
}
