package experiment

import (
	"context"
	"math/rand"

	"github.com/schedsim/marisa/errors"
	"github.com/schedsim/marisa/logger"
	"github.com/schedsim/marisa/rational"
)

// Sweep implements spec.md §4.6: for cfg.Cores cores, step utilization from
// cores/UtilSteps up to cores in UtilSteps increments; at each step, draw
// cfg.TrialsPerUtil randomized task sets and run every configured
// scheduler, aggregating schedulable fraction, mean context switches, and
// mean migrations across the trials that stayed schedulable. Trials within
// one utilization level are sharded across a worker pool (spec.md §5), each
// trial carrying a private *rand.Rand seeded from a master RNG seeded by cfg.Seed
// so repeated Sweep calls with the same Config are byte-reproducible
// regardless of goroutine scheduling order (P8).
func Sweep(ctx context.Context, cfg Config) (Results, error) {
	if cfg.Cores < 1 {
		return Results{}, errors.Newf("experiment: cores must be positive, got %d", cfg.Cores)
	}
	if cfg.UtilSteps < 1 {
		return Results{}, errors.Newf("experiment: util steps must be positive, got %d", cfg.UtilSteps)
	}
	if cfg.TrialsPerUtil < 1 {
		return Results{}, errors.Newf("experiment: trials per util must be positive, got %d", cfg.TrialsPerUtil)
	}

	policies, err := resolvePolicies(cfg.Schedulers)
	if err != nil {
		return Results{}, err
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = defaultWorkers(cfg.TrialsPerUtil)
	}

	masterRng := rand.New(rand.NewSource(cfg.Seed))

	series := make([]SchedulerSeries, len(policies))
	for i, p := range policies {
		series[i] = SchedulerSeries{Name: p.name}
	}
	var samples [][]float64

	step := rational.New(int64(cfg.Cores), int64(cfg.UtilSteps))
	cores := rational.FromInt(int64(cfg.Cores))

	for util := step; util.LessEq(cores); util = util.Add(step) {
		logger.Debugw("sweep: starting utilization level", "util", util.Float64())

		pool := newTrialPool(ctx, workers, cfg, cfg.Cores, policies)
		// Submit and close concurrently with draining results below: the
		// results channel holds only `workers` entries, so collecting after
		// close would block once TrialsPerUtil exceeds it.
		go func(util rational.Rational) {
			for t := 0; t < cfg.TrialsPerUtil; t++ {
				pool.submit(trialJob{index: t, util: util, rng: rand.New(rand.NewSource(masterRng.Int63()))})
			}
			pool.close()
		}(util)

		levelResults := make([]trialResult, cfg.TrialsPerUtil)
		for result := range pool.results {
			if result.err != nil {
				return Results{}, result.err
			}
			levelResults[result.index] = result
		}

		schedulableCount := make([]int64, len(policies))
		cswitchSum := make([]int64, len(policies))
		migSum := make([]int64, len(policies))

		for _, result := range levelResults {
			samples = append(samples, result.sample)
			for i, out := range result.outcomes {
				if !out.schedulable {
					continue
				}
				schedulableCount[i]++
				cswitchSum[i] += out.cswitches
				migSum[i] += out.migrations
			}
		}

		for i := range policies {
			series[i].Util = append(series[i].Util, util)
			series[i].SchedulableFraction = append(series[i].SchedulableFraction, float64(schedulableCount[i])/float64(cfg.TrialsPerUtil))
			if schedulableCount[i] == 0 {
				series[i].AvgCswitches = append(series[i].AvgCswitches, 0)
				series[i].AvgMigrations = append(series[i].AvgMigrations, 0)
			} else {
				series[i].AvgCswitches = append(series[i].AvgCswitches, float64(cswitchSum[i])/float64(schedulableCount[i]))
				series[i].AvgMigrations = append(series[i].AvgMigrations, float64(migSum[i])/float64(schedulableCount[i]))
			}
		}

		select {
		case <-ctx.Done():
			return Results{Cores: cfg.Cores, Schedulers: series, Samples: samples}, ctx.Err()
		default:
		}
	}

	return Results{Cores: cfg.Cores, Schedulers: series, Samples: samples}, nil
}
