package taskgen

import (
	"math/rand"
	"sort"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
)

// GenModifiedKraemer generates a synchronous implicit-deadline task set of
// taskCount tasks at total utilization util, using discrete time of unit
// 1/precision, with periods drawn uniformly from [minPeriod, maxPeriod].
//
// It works by choosing taskCount+1 distinct cut points on the scaled
// utilization line [0, util*precision] (always including the two
// endpoints) and retrying until every resulting gap fits within one task's
// utilization budget (<= precision), per the modified Kraemer algorithm.
// rng is supplied explicitly by the caller rather than a package-global
// generator, so sweeps can run reproducibly and concurrently.
func GenModifiedKraemer(rng *rand.Rand, precision int, util rational.Rational, taskCount int, minPeriod, maxPeriod int64) ([]simcore.Task, error) {
	scaledUtil, err := validate(precision, util, taskCount)
	if err != nil {
		return nil, err
	}

	scaledUtils := make([]int64, taskCount)
	for {
		partitions := map[int64]bool{0: true, scaledUtil: true}
		for int64(len(partitions)) < int64(taskCount+1) {
			partitions[1+rng.Int63n(scaledUtil-1)] = true
		}

		sorted := make([]int64, 0, len(partitions))
		for p := range partitions {
			sorted = append(sorted, p)
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		valid := true
		for i := 1; i < len(sorted); i++ {
			gap := sorted[i] - sorted[i-1]
			scaledUtils[i-1] = gap
			if gap > int64(precision) {
				valid = false
				break
			}
		}
		if valid {
			break
		}
	}

	return buildTaskSet(rng, precision, scaledUtils, minPeriod, maxPeriod), nil
}
