// Package scheduler holds the shared scheduling primitives and the concrete
// scheduling policies built on top of them. Every policy in this package
// implements simcore.Scheduler; the functions in this file are the pieces
// every policy composes from, ported from helper_funcs.h/.cpp.
package scheduler

import (
	"container/heap"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// prioritized pairs an index into an active-job slice with its priority
// value, so the bounded heap below can compare and reorder without
// recomputing the priority function.
type prioritized[T any] struct {
	index    int
	priority T
}

// priorityHeap is a min-heap (by the caller-supplied less) of the best
// candidates seen so far, bounded to cores entries: pushing past capacity
// evicts the weakest one.
type priorityHeap[T any] struct {
	items []prioritized[T]
	less  func(a, b T) bool // a strictly lower priority than b
}

// worse reports whether a is a weaker candidate than b for a core: lower
// priority, or — on a tie — the higher index (ChooseByPriority breaks ties
// toward the lower index, so the higher index is the one to evict first).
func (h priorityHeap[T]) worse(a, b prioritized[T]) bool {
	if h.less(a.priority, b.priority) {
		return true
	}
	if h.less(b.priority, a.priority) {
		return false
	}
	return a.index > b.index
}

func (h priorityHeap[T]) Len() int            { return len(h.items) }
func (h priorityHeap[T]) Less(i, j int) bool  { return h.worse(h.items[i], h.items[j]) }
func (h priorityHeap[T]) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *priorityHeap[T]) Push(x interface{}) { h.items = append(h.items, x.(prioritized[T])) }
func (h *priorityHeap[T]) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// ChooseByPriority selects up to cores active jobs whose priority strictly
// exceeds threshold under less, keeping the highest-priority ones and
// breaking ties toward the lower index. It returns their indices into jobs,
// in no particular order — ported from chooseByPriority's bounded heap of
// size cores+1 in helper_funcs.cpp.
//
// The C++ original is a function template over any type with operator<
// (int, or Fraction). Go's cmp.Ordered constraint covers the former but not
// the latter — rational.Rational is a struct, not one of the predeclared
// ordered types — so this takes an explicit less func instead of a type
// constraint, the idiomatic Go substitute when "ordered" means "has a Less
// method" rather than "is a number or string".
func ChooseByPriority[T any](jobs []simcore.Job, cores int, threshold T, less func(a, b T) bool, priority func(simcore.Job) T) []int {
	h := &priorityHeap[T]{less: less}
	for i, job := range jobs {
		p := priority(job)
		if !less(threshold, p) {
			continue
		}
		heap.Push(h, prioritized[T]{index: i, priority: p})
		if h.Len() > cores {
			heap.Pop(h)
		}
	}
	chosen := make([]int, h.Len())
	for i, entry := range h.items {
		chosen[i] = entry.index
	}
	return chosen
}

// IntLess and RationalLess are the two less funcs every scheduler in this
// package needs for ChooseByPriority: plain integer priorities (GFIFO,
// PD²'s packed bitstring) and exact-rational priorities (GEDF, GDM, EDZL,
// LLREF).
func IntLess(a, b int64) bool { return a < b }

func RationalLess(a, b rational.Rational) bool { return a.Less(b) }

// AssignToCores places the chosen job indices onto coreState, favoring
// continuity: a job already running keeps its core, and a job that was
// previously assigned (preempted, not fresh) prefers to return to that same
// core before falling back to any free one. This mitigates both context
// switches and job-level migrations, matching assignToCores in
// helper_funcs.cpp.
func AssignToCores(activeJobs []simcore.Job, coreState []int, chosenJobs []int) {
	chosen := append([]int(nil), chosenJobs...)
	slicesSortInts(chosen)

	for _, i := range chosen {
		if activeJobs[i].Running {
			coreState[activeJobs[i].Core] = i
		}
	}

	nextEmpty := -1
	for _, i := range chosen {
		if activeJobs[i].Running {
			continue
		}

		if activeJobs[i].Core != -1 {
			prevCore := activeJobs[i].Core
			if coreState[prevCore] == -1 {
				coreState[prevCore] = i
				continue
			} else if activeJobs[coreState[prevCore]].Core != prevCore {
				coreState[prevCore], i = i, coreState[prevCore]
			}
		}

		nextEmpty++
		for coreState[nextEmpty] != -1 {
			nextEmpty++
		}
		coreState[nextEmpty] = i
	}
}

// slicesSortInts is a small insertion sort so AssignToCores doesn't need to
// pull in the slices package for a handful of core-count-sized ints.
func slicesSortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// NextJobRelease returns the earliest NextRelease across taskSet.
func NextJobRelease(taskSet []simcore.Task, activeJobs []simcore.Job, time rational.Rational) rational.Rational {
	next := rational.PosInf
	for i := range taskSet {
		next = rational.Min(next, taskSet[i].NextRelease)
	}
	return next
}

// NextJobDeadline returns the earliest Deadline across activeJobs.
func NextJobDeadline(taskSet []simcore.Task, activeJobs []simcore.Job, time rational.Rational) rational.Rational {
	next := rational.PosInf
	for _, job := range activeJobs {
		next = rational.Min(next, job.Deadline)
	}
	return next
}

// NextSchedEvent returns the earliest time a schedule decision must next be
// reconsidered on account of a release or a deadline: the min of every
// task's next release and every active job's deadline. Ported from
// nextSchedEvent in helper_funcs.cpp.
func NextSchedEvent(taskSet []simcore.Task, activeJobs []simcore.Job, time rational.Rational) rational.Rational {
	next := NextJobRelease(taskSet, activeJobs, time)
	return rational.Min(next, NextJobDeadline(taskSet, activeJobs, time))
}

// NextJobCompletion returns the earliest time any job currently assigned to
// a core (per coreState) would finish if it ran uninterrupted from time
// onward. Ported from nextJobCompletion in helper_funcs.cpp.
func NextJobCompletion(activeJobs []simcore.Job, coreState []int, time rational.Rational) rational.Rational {
	next := rational.PosInf
	for _, i := range coreState {
		if i == -1 {
			continue
		}
		job := activeJobs[i]
		next = rational.Min(next, time.Add(job.ExecTime.Sub(job.Runtime)))
	}
	return next
}

// UsesIntegerTime reports whether every task's timing parameters are
// integral, letting a scheduler (PD², which packs deadlines into an integer
// priority key) assume it never needs to round. Ported from
// usesIntegerTime in helper_funcs.cpp.
func UsesIntegerTime(taskSet []simcore.Task) bool {
	for i := range taskSet {
		t := &taskSet[i]
		if !t.Phase.IsInt() || !t.Period.IsInt() || !t.ExecTime.IsInt() || !t.RelativeDeadline.IsInt() {
			return false
		}
	}
	return true
}
