package experiment

import (
	"github.com/schedsim/marisa/errors"
	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/scheduler"
	"github.com/schedsim/marisa/simcore"
)

// policy bundles a scheduler's factory (a new, independent instance per
// trial — PD², LLREF, and UEDF all carry state that must not be shared
// across concurrent trials) with the analytic utilization threshold above
// which the harness bothers running the expensive 2H schedulability check
// (spec.md §4.6 step 3; below the threshold the policy is known-schedulable
// by theory, so the check is skipped).
type policy struct {
	name      string
	newSched  func() simcore.Scheduler
	threshold func(cores int) rational.Rational
}

var policies = map[string]policy{
	"GEDF": {
		name:      "GEDF",
		newSched:  func() simcore.Scheduler { return scheduler.GEDF{} },
		threshold: func(cores int) rational.Rational { return rational.FromInt(0) },
	},
	"GDM": {
		name:      "GDM",
		newSched:  func() simcore.Scheduler { return scheduler.GDM{} },
		threshold: func(cores int) rational.Rational { return rational.FromInt(0) },
	},
	"GFIFO": {
		name:      "GFIFO",
		newSched:  func() simcore.Scheduler { return scheduler.GFIFO{} },
		threshold: func(cores int) rational.Rational { return rational.FromInt(0) },
	},
	"EDZL": {
		name:      "EDZL",
		newSched:  func() simcore.Scheduler { return scheduler.EDZL{} },
		threshold: func(cores int) rational.Rational { return rational.New(3, 4).Mul(rational.FromInt(int64(cores))) },
	},
	"PD2": {
		name:      "PD2",
		newSched:  func() simcore.Scheduler { return &scheduler.PD2{EarlyRelease: true} },
		threshold: func(cores int) rational.Rational { return rational.New(1, 2).Mul(rational.FromInt(int64(cores))) },
	},
	"LLREF": {
		name:      "LLREF",
		newSched:  func() simcore.Scheduler { return &scheduler.LLREF{} },
		threshold: func(cores int) rational.Rational { return rational.FromInt(int64(cores)) },
	},
	"UEDF": {
		name:      "UEDF",
		newSched:  func() simcore.Scheduler { return &scheduler.UEDF{} },
		threshold: func(cores int) rational.Rational { return rational.FromInt(0) },
	},
}

// resolvePolicies looks up each configured scheduler name, preserving the
// caller's order (the export format and aggregation both iterate in
// declaration order).
func resolvePolicies(names []string) ([]policy, error) {
	resolved := make([]policy, 0, len(names))
	for _, name := range names {
		p, ok := policies[name]
		if !ok {
			return nil, errors.Newf("experiment: unknown scheduler %q", name)
		}
		resolved = append(resolved, p)
	}
	return resolved, nil
}
