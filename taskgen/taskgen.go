// Package taskgen generates random synchronous implicit-deadline periodic
// task sets at a target utilization, for the experiment harness's sweeps.
// Ported from taskgen.h/taskgen.cpp.
package taskgen

import (
	"math/rand"

	"github.com/schedsim/marisa/errors"
	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// validate checks the parameters every generator shares and returns the
// target utilization scaled to an integer number of 1/precision units.
func validate(precision int, util rational.Rational, taskCount int) (int64, error) {
	if precision < 1 {
		return 0, errors.Newf("taskgen: precision must be positive, got %d", precision)
	}
	if taskCount < 1 {
		return 0, errors.Newf("taskgen: task count must be positive, got %d", taskCount)
	}
	if !util.Greater(rational.FromInt(0)) {
		return 0, errors.Newf("taskgen: utilization must be positive, got %v", util)
	}
	scaled := util.Mul(rational.FromInt(int64(precision)))
	if !scaled.IsInt() {
		return 0, errors.Newf("taskgen: utilization %v is not representable at precision %d", util, precision)
	}
	if scaled.Num < int64(taskCount) {
		return 0, errors.Newf("taskgen: utilization %v too low to split across %d tasks at precision %d", util, taskCount, precision)
	}
	return scaled.Num, nil
}

// buildTaskSet turns a slice of scaled (1/precision-unit) per-task
// utilizations into implicit-deadline synchronous tasks with periods drawn
// uniformly from [minPeriod, maxPeriod].
func buildTaskSet(rng *rand.Rand, precision int, scaledUtils []int64, minPeriod, maxPeriod int64) []simcore.Task {
	tasks := make([]simcore.Task, len(scaledUtils))
	span := maxPeriod - minPeriod + 1
	for i, scaledUtil := range scaledUtils {
		taskUtil := rational.New(scaledUtil, int64(precision))
		period := rational.FromInt(minPeriod + rng.Int63n(span))
		execTime := taskUtil.Mul(period)
		tasks[i] = simcore.NewTask(rational.FromInt(0), period, execTime, period)
	}
	return tasks
}
