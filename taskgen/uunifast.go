package taskgen

import (
	"math"
	"math/rand"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// uunifast samples taskCount values on the simplex summing to target,
// via the standard recurrence s[i-1] = s[i] * U^(1/i), s[i-1] -= s[i].
// Ported from the uunifast() free function in taskgen.cpp.
func uunifast(rng *rand.Rand, target float64, taskCount int) []float64 {
	s := make([]float64, taskCount)
	s[taskCount-1] = target
	for i := taskCount - 1; i > 0; i-- {
		s[i-1] = s[i] * math.Pow(rng.Float64(), 1.0/float64(i))
		s[i] -= s[i-1]
	}
	return s
}

// GenUUniFastDiscard generates a synchronous implicit-deadline task set of
// taskCount tasks at total utilization util, using discrete time of unit
// 1/precision, with periods drawn uniformly from [minPeriod, maxPeriod].
//
// It samples the taskCount-dimensional simplex with UUniFast, floors each
// share to the precision grid, bumps every task up by one grid unit (so no
// task has zero utilization), then bumps leading tasks by one more grid
// unit until the scaled total matches exactly; the whole draw is retried
// if any task ends up above 1.0 utilization. The result is shuffled since
// the leading-element bumping would otherwise bias which tasks receive the
// extra grid unit.
func GenUUniFastDiscard(rng *rand.Rand, precision int, util rational.Rational, taskCount int, minPeriod, maxPeriod int64) ([]simcore.Task, error) {
	scaledUtil, err := validate(precision, util, taskCount)
	if err != nil {
		return nil, err
	}

	target := util.Sub(rational.New(int64(taskCount), int64(precision)))
	targetF := target.Float64()

	scaledUtils := make([]int64, taskCount)
	for {
		shares := uunifast(rng, targetF, taskCount)

		sum := int64(0)
		for i, share := range shares {
			scaledUtils[i] = int64(math.Floor(share*float64(precision))) + 1
			sum += scaledUtils[i]
		}

		valid := true
		for i := 0; valid && i < taskCount; i++ {
			if sum < scaledUtil {
				scaledUtils[i]++
				sum++
			}
			valid = scaledUtils[i] <= int64(precision)
		}
		if valid && sum == scaledUtil {
			break
		}
	}

	rng.Shuffle(taskCount, func(i, j int) {
		scaledUtils[i], scaledUtils[j] = scaledUtils[j], scaledUtils[i]
	})

	return buildTaskSet(rng, precision, scaledUtils, minPeriod, maxPeriod), nil
}
