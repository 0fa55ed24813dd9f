// Package experiment implements the utilization-sweep schedulability and
// overhead harness (spec.md §4.6): for each utilization on a discrete grid,
// draw randomized task sets, run every configured scheduler, and aggregate
// schedulable fraction, mean context switches, and mean migrations.
package experiment

import (
	"github.com/schedsim/marisa/rational"
)

// Config parameterizes a single-core-count sweep. Field names and defaults
// mirror the original experiment harness's hardcoded constants (see
// config.SetDefaults), now made configurable.
type Config struct {
	Cores         int      // number of processor cores (m)
	UtilSteps     int      // number of utilization grid points
	Precision     int      // denominator scale for generated task utilizations
	TrialsPerUtil int      // random task sets drawn per utilization level
	TaskCount     int      // tasks per generated task set
	MinPeriod     int64    // minimum task period
	MaxPeriod     int64    // maximum task period
	SimTime       int64    // simulated time horizon checked on every trial
	PD2Scale      int64    // integer scale factor PD² task sets are stretched by
	Schedulers    []string // scheduler names to run, e.g. ["GEDF", "EDZL", "PD2", "LLREF"]
	Workers       int      // worker pool size for trial parallelism; 0 selects a default
	Seed          int64    // master RNG seed; reseed before each study for reproducibility
}

// SchedulerSeries is one scheduler's three aggregated curves over the
// utilization grid, plus its name, matching the text export's per-scheduler
// block (spec.md §6).
type SchedulerSeries struct {
	Name                string
	Util                []rational.Rational
	SchedulableFraction []float64
	AvgCswitches        []float64
	AvgMigrations       []float64
}

// Results is everything one sweep produces: one series per scheduler, plus
// the raw per-task utilization samples drawn along the way (used both for
// the "sample points" export block and for diagnosing the generator).
type Results struct {
	Cores      int
	Schedulers []SchedulerSeries
	Samples    [][]float64 // one row per trial, one column per task
}
