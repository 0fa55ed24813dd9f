package experiment

import (
	"context"
	"math/rand"

	"github.com/schedsim/marisa/errors"
	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
	"github.com/schedsim/marisa/taskgen"
)

// outcome is one scheduler's result for a single trial.
type outcome struct {
	schedulable bool
	cswitches   int64
	migrations  int64
}

func gcdInt64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func lcmInt64(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcdInt64(a, b) * b
}

// hyperperiod returns the LCM of every task's (integer) period.
func hyperperiod(taskSet []simcore.Task) (int64, error) {
	h := int64(1)
	for i := range taskSet {
		if !taskSet[i].Period.IsInt() {
			return 0, errors.Newf("experiment: task %d has non-integer period %v, cannot compute hyperperiod", i, taskSet[i].Period)
		}
		h = lcmInt64(h, taskSet[i].Period.Floor())
	}
	return h, nil
}

// pd2Scale stretches every task's timing by scale: exec_time is ceil'd
// after scaling (integer subtasks require an integer exec_time), period and
// relative_deadline scale exactly (periods were already integers). Mirrors
// experiments.cpp's PD2 task-set discretizing step.
func pd2Scale(taskSet []simcore.Task, scale int64) []simcore.Task {
	scaled := make([]simcore.Task, len(taskSet))
	factor := rational.FromInt(scale)
	for i, task := range taskSet {
		period := task.Period.Mul(factor)
		execTime := rational.FromInt(task.ExecTime.Mul(factor).Ceil())
		scaled[i] = simcore.NewTask(task.Phase.Mul(factor), period, execTime, period)
	}
	return scaled
}

// runTrial draws one task set at util and runs every configured policy
// against it, returning each policy's outcome (indexed the same as
// policies) and the per-task utilization sample for export.
func runTrial(ctx context.Context, rng *rand.Rand, cfg Config, cores int, util rational.Rational, policies []policy) ([]outcome, []float64, error) {
	taskSet, err := taskgen.GenModifiedKraemer(rng, cfg.Precision, util, cfg.TaskCount, cfg.MinPeriod, cfg.MaxPeriod)
	if err != nil {
		return nil, nil, err
	}

	sample := make([]float64, len(taskSet))
	for i := range taskSet {
		sample[i] = taskSet[i].Utilization().Float64()
	}

	baseH, err := hyperperiod(taskSet)
	if err != nil {
		return nil, nil, err
	}

	outcomes := make([]outcome, len(policies))
	for i, p := range policies {
		effectiveTaskSet := taskSet
		cmpTime := rational.FromInt(cfg.SimTime)
		h := baseH

		if p.name == "PD2" {
			effectiveTaskSet = pd2Scale(taskSet, cfg.PD2Scale)
			cmpTime = rational.FromInt(cfg.SimTime * cfg.PD2Scale)
			h *= cfg.PD2Scale
		}

		model := &simcore.SimModel{}
		sched := p.newSched()
		model.Reset(effectiveTaskSet, sched, cores)

		if err := model.Simulate(ctx, cmpTime); err != nil {
			return nil, nil, err
		}
		if model.Missed != -1 {
			continue
		}

		out := outcome{schedulable: true, cswitches: model.CswitchCount, migrations: model.MigrationCount}

		if util.Greater(p.threshold(cores)) {
			twoH := rational.FromInt(2 * h)
			if err := model.Simulate(ctx, twoH); err != nil {
				return nil, nil, err
			}
			out.schedulable = model.Missed == -1
		}

		outcomes[i] = out
	}

	return outcomes, sample, nil
}
