package simtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// AssertNoMiss runs model to endTime and fails the test if a deadline was
// missed, reporting the offending task index.
func AssertNoMiss(t *testing.T, model *simcore.SimModel, endTime rational.Rational) {
	t.Helper()
	err := model.Simulate(context.Background(), endTime)
	require.NoError(t, err)
	require.Equal(t, -1, model.Missed, "expected no deadline miss by t=%v, task %d missed", endTime, model.Missed)
}

// RunToMiss runs model in increasing steps of step until a deadline is
// missed or limit is reached, returning the time at which the miss
// occurred (or limit, unmissed, if none happened).
func RunToMiss(t *testing.T, model *simcore.SimModel, step, limit rational.Rational) rational.Rational {
	t.Helper()
	now := rational.FromInt(0)
	for model.Missed == -1 && now.Less(limit) {
		now = rational.Min(now.Add(step), limit)
		err := model.Simulate(context.Background(), now)
		require.NoError(t, err)
	}
	return model.Time
}
