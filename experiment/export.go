package experiment

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/taskgen"
)

// WriteSweepResults renders Results in the plain-text format spec.md §6
// defines for experiment_data_<cores>cores.txt: one block per scheduler
// (name, then sched:/cswitch:/migrations: lines of (U,value) tuples), then
// a trailing "sample points:" block of one parenthesized per-task
// utilization tuple per trial, in the order the trials were drawn.
func WriteSweepResults(w io.Writer, results Results) error {
	for _, s := range results.Schedulers {
		if _, err := fmt.Fprintln(w, s.Name); err != nil {
			return err
		}
		if err := writeSeries(w, "sched", s.Util, s.SchedulableFraction); err != nil {
			return err
		}
		if err := writeSeries(w, "cswitch", s.Util, s.AvgCswitches); err != nil {
			return err
		}
		if err := writeSeries(w, "migrations", s.Util, s.AvgMigrations); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, "sample points: "); err != nil {
		return err
	}
	for _, row := range results.Samples {
		if err := writeTuple(w, row); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func writeSeries(w io.Writer, label string, utils []rational.Rational, values []float64) error {
	if _, err := fmt.Fprintf(w, "%s: ", label); err != nil {
		return err
	}
	for i, v := range values {
		if _, err := fmt.Fprintf(w, "(%s,%g)", utils[i], v); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeTuple(w io.Writer, values []float64) error {
	if _, err := fmt.Fprint(w, "("); err != nil {
		return err
	}
	for i, v := range values {
		if i > 0 {
			if _, err := fmt.Fprint(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%g", v); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ")")
	return err
}

// WriteKraemerSamples reproduces the standalone Modified-Kraemer
// distribution sample dump (experiments.cpp's Experiment::kraemer):
// trials draws of a dim-task set at the given precision/util, each written
// as a single parenthesized tuple of per-task exec_time with no separator
// between trials (matching the original's exact, slightly unusual format).
func WriteKraemerSamples(w io.Writer, rng *rand.Rand, precision int, util rational.Rational, dim, trials int) error {
	for i := 0; i < trials; i++ {
		taskSet, err := taskgen.GenModifiedKraemer(rng, precision, util, dim, 1, 1)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "("); err != nil {
			return err
		}
		for j := range taskSet {
			if j > 0 {
				if _, err := fmt.Fprint(w, ","); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%g", taskSet[j].ExecTime.Float64()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, ")"); err != nil {
			return err
		}
	}
	return nil
}
