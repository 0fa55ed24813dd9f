package taskgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

func sumUtil(tasks []simcore.Task) rational.Rational {
	sum := rational.FromInt(0)
	for _, task := range tasks {
		sum = sum.Add(task.Utilization())
	}
	return sum
}

// TestModifiedKraemerUtilizationSum is scenario 6 (spec.md §8): 1000 runs of
// genModifiedKraemer(precision=1000, util=3/2, n=3, ...) must each produce
// exactly 3 tasks whose utilizations sum to exactly 3/2, each in (0, 1].
func TestModifiedKraemerUtilizationSum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	util := rational.New(3, 2)
	for i := 0; i < 1000; i++ {
		tasks, err := GenModifiedKraemer(rng, 1000, util, 3, 1, 1)
		require.NoError(t, err)
		require.Len(t, tasks, 3)

		sum := sumUtil(tasks)
		assert.True(t, sum.Equal(util), "run %d: util sum = %v, want %v", i, sum, util)

		for _, task := range tasks {
			u := task.Utilization()
			assert.True(t, u.Greater(rational.FromInt(0)), "run %d: task util %v not > 0", i, u)
			assert.True(t, u.LessEq(rational.FromInt(1)), "run %d: task util %v not <= 1", i, u)
		}
	}
}

// TestModifiedKraemerPeriodRange checks periods land within [minPeriod,
// maxPeriod] and exec_time is derived consistently (exec = util * period).
func TestModifiedKraemerPeriodRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	tasks, err := GenModifiedKraemer(rng, 100, rational.New(2, 1), 4, 5, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 4)
	for _, task := range tasks {
		period := task.Period.Floor()
		assert.GreaterOrEqual(t, period, int64(5))
		assert.LessOrEqual(t, period, int64(10))
		assert.True(t, task.ExecTime.Equal(task.Utilization().Mul(task.Period)))
	}
}

// TestModifiedKraemerInvalidInputsReturnError covers spec.md §4.5/§7:
// invalid generator inputs never panic, they report an error.
func TestModifiedKraemerInvalidInputsReturnError(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cases := []struct {
		name      string
		precision int
		util      rational.Rational
		taskCount int
	}{
		{"zero precision", 0, rational.New(1, 1), 3},
		{"zero task count", 100, rational.New(1, 1), 0},
		{"non-positive util", 100, rational.FromInt(0), 3},
		{"util not representable at precision", 3, rational.New(1, 2), 1},
		{"util too low for task count", 10, rational.New(1, 10), 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := GenModifiedKraemer(rng, c.precision, c.util, c.taskCount, 1, 10)
			assert.Error(t, err)
		})
	}
}

// TestUUniFastDiscardUtilizationSum mirrors P9 for the second generator:
// exact utilization sum, each task within (0, 1].
func TestUUniFastDiscardUtilizationSum(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	util := rational.New(5, 2)
	for i := 0; i < 200; i++ {
		tasks, err := GenUUniFastDiscard(rng, 1000, util, 6, 4, 12)
		require.NoError(t, err)
		require.Len(t, tasks, 6)

		sum := sumUtil(tasks)
		assert.True(t, sum.Equal(util), "run %d: util sum = %v, want %v", i, sum, util)

		for _, task := range tasks {
			u := task.Utilization()
			assert.True(t, u.Greater(rational.FromInt(0)))
			assert.True(t, u.LessEq(rational.FromInt(1)))
		}
	}
}

func TestUUniFastDiscardInvalidInputsReturnError(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	_, err := GenUUniFastDiscard(rng, 100, rational.FromInt(0), 3, 1, 10)
	assert.Error(t, err)

	_, err = GenUUniFastDiscard(rng, 100, rational.New(1, 100), 5, 1, 10)
	assert.Error(t, err)
}
