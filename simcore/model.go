package simcore

import (
	"container/heap"
	"context"

	"github.com/schedsim/marisa/errors"
	"github.com/schedsim/marisa/rational"
)

// releaseEntry is one entry in the next-release min-heap: the time the
// indexed task's next job releases.
type releaseEntry struct {
	time   rational.Rational
	taskID int
}

type releaseHeap []releaseEntry

func (h releaseHeap) Len() int            { return len(h) }
func (h releaseHeap) Less(i, j int) bool  { return h[i].time.Less(h[j].time) }
func (h releaseHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *releaseHeap) Push(x interface{}) { *h = append(*h, x.(releaseEntry)) }
func (h *releaseHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// SimModel is the simulation engine: a task set, a bound scheduler, the
// accumulated trace, and the live job state the event loop mutates in
// place every step.
type SimModel struct {
	TaskSet   []Task
	Scheduler Scheduler
	Trace     Trace

	Time   rational.Rational
	Missed int // TaskID of the job that missed its deadline, -1 if none
	Cores  int

	ActiveJobs   []Job
	FinishedJobs []Job

	CswitchCount   int64
	MigrationCount int64

	releases releaseHeap
}

// Reset rebinds the model to a new task set, scheduler, and core count,
// clearing all simulation state. Mirrors SimModel::reset in the original.
func (m *SimModel) Reset(taskSet []Task, sched Scheduler, cores int) {
	m.TaskSet = taskSet
	m.Scheduler = sched
	sched.Init(taskSet, cores)
	m.Cores = cores
	m.Time = rational.FromInt(0)
	m.Missed = -1
	m.CswitchCount = 0
	m.MigrationCount = 0
	m.ActiveJobs = nil
	m.FinishedJobs = nil
	m.Trace = Trace{}

	m.releases = make(releaseHeap, len(taskSet))
	for i := range taskSet {
		m.releases[i] = releaseEntry{time: taskSet[i].Phase, taskID: i}
	}
	heap.Init(&m.releases)
}

// Simulate advances the model to at least endTime, running the scheduler's
// event loop. It is a no-op if the model has already missed a deadline
// (the hard short-circuit the spec requires) or if Time is already at or
// past endTime. A cancelled ctx stops the loop cooperatively before the
// next event and returns ctx.Err(), leaving the model in a consistent
// state a caller may resume from with a later endTime.
func (m *SimModel) Simulate(ctx context.Context, endTime rational.Rational) error {
	for m.Missed == -1 && m.Time.Less(endTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		m.releaseDueJobs()
		m.partitionActiveJobs()

		decision := m.Scheduler.Schedule(m)
		if len(decision.CoreState) != m.Cores {
			panic(errors.AssertionFailedf("scheduler returned %d core states, want %d", len(decision.CoreState), m.Cores))
		}
		if !decision.NextEvent.Greater(m.Time) {
			panic(errors.AssertionFailedf("scheduler returned non-positive time delta at t=%v", m.Time))
		}

		wasRunning := make([]bool, len(m.ActiveJobs))
		for i := range m.ActiveJobs {
			wasRunning[i] = m.ActiveJobs[i].Running
			m.ActiveJobs[i].Running = false
		}

		prevCoreOf := make([]int, m.Cores)
		for c := range prevCoreOf {
			prevCoreOf[c] = -1
		}
		for i := range m.ActiveJobs {
			if wasRunning[i] && m.ActiveJobs[i].Core >= 0 && m.ActiveJobs[i].Core < m.Cores {
				prevCoreOf[m.ActiveJobs[i].Core] = i
			}
		}

		for core, jobIdx := range decision.CoreState {
			if prevCoreOf[core] != jobIdx {
				m.CswitchCount++
			}
			if jobIdx == -1 {
				continue
			}
			job := &m.ActiveJobs[jobIdx]
			if job.Core != -1 && job.Core != core {
				job.MigrationCount++
				m.MigrationCount++
			}
			job.Core = core
			job.Running = true
		}

		delta := decision.NextEvent.Sub(m.Time)

		survivors := m.ActiveJobs[:0]
		for i := range m.ActiveJobs {
			job := m.ActiveJobs[i]
			if job.Running {
				blockRuntime := rational.Min(job.ExecTime.Sub(job.Runtime), delta)
				start := m.Time
				end := m.Time.Add(blockRuntime)
				job.Runtime = job.Runtime.Add(blockRuntime)
				m.Trace.Add(job, start, end)

				if job.Runtime.GreaterEq(job.ExecTime) {
					m.FinishedJobs = append(m.FinishedJobs, job)
					continue
				}
			} else if wasRunning[i] {
				job.PreemptCount++
			}
			if job.Deadline.LessEq(decision.NextEvent) {
				m.Missed = job.TaskID
			}
			survivors = append(survivors, job)
		}
		m.ActiveJobs = survivors
		m.Time = decision.NextEvent
	}
	return nil
}

// releaseDueJobs pops every task whose next release is at or before m.Time
// and appends its newly released job to ActiveJobs.
func (m *SimModel) releaseDueJobs() {
	for len(m.releases) > 0 && m.releases[0].time.LessEq(m.Time) {
		entry := heap.Pop(&m.releases).(releaseEntry)
		task := &m.TaskSet[entry.taskID]
		m.ActiveJobs = append(m.ActiveJobs, task.NextJob(entry.taskID))
		heap.Push(&m.releases, releaseEntry{time: task.NextRelease, taskID: entry.taskID})
	}
}

// partitionActiveJobs performs the stable three-way partition into
// running, preempted (assigned to a core but not running), and fresh
// (never assigned) jobs, matching the original's running/preempted/fresh
// ordering so priority ties resolve identically to the C++ simulator.
func (m *SimModel) partitionActiveJobs() {
	running := make([]Job, 0, len(m.ActiveJobs))
	preempted := make([]Job, 0, len(m.ActiveJobs))
	fresh := make([]Job, 0, len(m.ActiveJobs))
	for _, job := range m.ActiveJobs {
		switch {
		case job.Running:
			running = append(running, job)
		case job.Core != -1:
			preempted = append(preempted, job)
		default:
			fresh = append(fresh, job)
		}
	}
	sorted := make([]Job, 0, len(m.ActiveJobs))
	sorted = append(sorted, running...)
	sorted = append(sorted, preempted...)
	sorted = append(sorted, fresh...)
	m.ActiveJobs = sorted
}
