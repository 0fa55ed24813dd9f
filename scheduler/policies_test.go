package scheduler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/scheduler"
	"github.com/schedsim/marisa/simcore"
)

func lightTaskSet() []simcore.Task {
	return []simcore.Task{
		simcore.NewTask(rational.FromInt(0), rational.FromInt(10), rational.FromInt(3), rational.FromInt(10)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(5), rational.FromInt(1), rational.FromInt(5)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(20), rational.FromInt(4), rational.FromInt(20)),
	}
}

func runToConservation(t *testing.T, sched simcore.Scheduler, cores int) {
	t.Helper()
	m := &simcore.SimModel{}
	m.Reset(lightTaskSet(), sched, cores)
	require.NoError(t, m.Simulate(context.Background(), rational.FromInt(100)))
	require.Equal(t, -1, m.Missed, "lightly-loaded task set should not miss under %T", sched)

	for _, job := range m.FinishedJobs {
		require.True(t, job.Runtime.Equal(job.ExecTime), "%T: job runtime should equal exec time", sched)
		require.True(t, job.Runtime.LessEq(job.ExecTime), "%T: job must never overrun", sched)
	}
}

func TestSchedulersConserveWorkOnLightTaskSet(t *testing.T) {
	policies := []simcore.Scheduler{
		scheduler.GEDF{},
		scheduler.GDM{},
		scheduler.GFIFO{},
		scheduler.EDZL{},
		&scheduler.LLREF{},
		&scheduler.PD2{},
		&scheduler.UEDF{},
	}
	for _, sched := range policies {
		runToConservation(t, sched, 2)
	}
}

func TestGEDFReportsJobLevelDynamicFullMigration(t *testing.T) {
	scheme, degree := scheduler.GEDF{}.Kind()
	require.Equal(t, simcore.JobLevelDynamic, scheme)
	require.Equal(t, simcore.Full, degree)
}

func TestGDMIsStaticPriority(t *testing.T) {
	scheme, _ := scheduler.GDM{}.Kind()
	require.Equal(t, simcore.Static, scheme)
}

func TestPD2SkipsSchedulingNonIntegerTaskSets(t *testing.T) {
	tasks := []simcore.Task{
		simcore.NewTask(rational.FromInt(0), rational.New(10, 3), rational.FromInt(1), rational.New(10, 3)),
	}
	m := &simcore.SimModel{}
	pd2 := &scheduler.PD2{}
	m.Reset(tasks, pd2, 1)

	require.NoError(t, m.Simulate(context.Background(), rational.FromInt(20)))
	for _, core := range m.ActiveJobs {
		require.False(t, core.Running, "PD2 must not schedule a non-integer task set")
	}
}

func TestUEDFSplitsCoreTimeAcrossTasks(t *testing.T) {
	runToConservation(t, &scheduler.UEDF{}, 3)
}

// TestGEDFTrivialFeasibleSet is scenario 1 of spec.md §8: m=2,
// {(p=10,e=5), (p=3,e=2), (p=14,e=2)}, 100 time units, no miss expected.
func TestGEDFTrivialFeasibleSet(t *testing.T) {
	tasks := []simcore.Task{
		simcore.NewTask(rational.FromInt(0), rational.FromInt(10), rational.FromInt(5), rational.FromInt(10)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(3), rational.FromInt(2), rational.FromInt(3)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(14), rational.FromInt(2), rational.FromInt(14)),
	}
	m := &simcore.SimModel{}
	m.Reset(tasks, scheduler.GEDF{}, 2)
	require.NoError(t, m.Simulate(context.Background(), rational.FromInt(100)))
	require.Equal(t, -1, m.Missed)
}

// TestGEDFOverloadDetection is scenario 2 of spec.md §8: m=1,
// {(3,2),(5,3)} (U=1.27) must miss within 2H=30.
func TestGEDFOverloadDetection(t *testing.T) {
	tasks := []simcore.Task{
		simcore.NewTask(rational.FromInt(0), rational.FromInt(3), rational.FromInt(2), rational.FromInt(3)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(5), rational.FromInt(3), rational.FromInt(5)),
	}
	m := &simcore.SimModel{}
	m.Reset(tasks, scheduler.GEDF{}, 1)
	require.NoError(t, m.Simulate(context.Background(), rational.FromInt(30)))
	require.NotEqual(t, -1, m.Missed, "an overloaded single core must miss within 2H")
}

// TestPD2TightSet is scenario 3 of spec.md §8: m=4, {8x(3,1), 3x(9,4)}
// (U=4), no miss expected over 2H=36.
func TestPD2TightSet(t *testing.T) {
	tasks := make([]simcore.Task, 0, 11)
	for i := 0; i < 8; i++ {
		tasks = append(tasks, simcore.NewTask(rational.FromInt(0), rational.FromInt(3), rational.FromInt(1), rational.FromInt(3)))
	}
	for i := 0; i < 3; i++ {
		tasks = append(tasks, simcore.NewTask(rational.FromInt(0), rational.FromInt(9), rational.FromInt(4), rational.FromInt(9)))
	}
	m := &simcore.SimModel{}
	m.Reset(tasks, &scheduler.PD2{}, 4)
	require.NoError(t, m.Simulate(context.Background(), rational.FromInt(36)))
	require.Equal(t, -1, m.Missed, "PD2 must be optimal on an integer-time set with U == cores")
}

// TestLLREFZeroLaxitySet is scenario 4 of spec.md §8: m=3,
// {(20,15),(10,5),(20,8),(10,8),(20,11)} (U=2.95), no miss over 2H=40.
func TestLLREFZeroLaxitySet(t *testing.T) {
	tasks := []simcore.Task{
		simcore.NewTask(rational.FromInt(0), rational.FromInt(20), rational.FromInt(15), rational.FromInt(20)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(10), rational.FromInt(5), rational.FromInt(10)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(20), rational.FromInt(8), rational.FromInt(20)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(10), rational.FromInt(8), rational.FromInt(10)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(20), rational.FromInt(11), rational.FromInt(20)),
	}
	m := &simcore.SimModel{}
	m.Reset(tasks, &scheduler.LLREF{}, 3)
	require.NoError(t, m.Simulate(context.Background(), rational.FromInt(40)))
	require.Equal(t, -1, m.Missed, "LLREF must be optimal on an integer-time set with U <= cores")
}

// TestEDZLSchedulesZeroLaxityJob is scenario 5 of spec.md §8: with
// {(10,5),(10,5),(10,9)} on 2 cores, EDZL must dispatch the laxity-zero
// job (the (10,9) one, task index 2) within the last 9 units of its
// first period.
func TestEDZLSchedulesZeroLaxityJob(t *testing.T) {
	tasks := []simcore.Task{
		simcore.NewTask(rational.FromInt(0), rational.FromInt(10), rational.FromInt(5), rational.FromInt(10)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(10), rational.FromInt(5), rational.FromInt(10)),
		simcore.NewTask(rational.FromInt(0), rational.FromInt(10), rational.FromInt(9), rational.FromInt(10)),
	}
	m := &simcore.SimModel{}
	m.Reset(tasks, scheduler.EDZL{}, 2)
	require.NoError(t, m.Simulate(context.Background(), rational.FromInt(10)))
	require.Equal(t, -1, m.Missed)

	ranInWindow := false
	for _, block := range m.Trace.Drain() {
		if block.TaskID == 2 && block.Start.GreaterEq(rational.FromInt(1)) {
			ranInWindow = true
		}
	}
	require.True(t, ranInWindow, "the zero-laxity (10,9) job must run within the last 9 units of its period")
}
