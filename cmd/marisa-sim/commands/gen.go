package commands

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/schedsim/marisa/errors"
	"github.com/schedsim/marisa/rational"
	"github.com/schedsim/marisa/simcore"
	"github.com/schedsim/marisa/taskgen"
)

var (
	genUtilFlag      string
	genTasksFlag     int
	genPrecisionFlag int
	genMinPeriod     int64
	genMaxPeriod     int64
	genMethodFlag    string
	genSeedFlag      int64
)

// GenCmd generates and prints a single randomized task set, the same
// one-shot use case the original's taskgen.cpp main() served before it was
// folded into the sweep harness.
var GenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a single randomized task set and print it",
	Long: `gen draws one task set at the requested total utilization and prints
its per-task (phase, period, exec_time, deadline) tuples.

Examples:
  marisa-sim gen --util 3/2 --tasks 8
  marisa-sim gen --util 2 --tasks 4 --method uunifast`,
	RunE: runGen,
}

func init() {
	GenCmd.Flags().StringVar(&genUtilFlag, "util", "1", "target total utilization, as an integer or a/b fraction")
	GenCmd.Flags().IntVar(&genTasksFlag, "tasks", 4, "number of tasks in the set")
	GenCmd.Flags().IntVar(&genPrecisionFlag, "precision", 1000, "denominator scale for utilization fractions")
	GenCmd.Flags().Int64Var(&genMinPeriod, "min-period", 4, "minimum task period")
	GenCmd.Flags().Int64Var(&genMaxPeriod, "max-period", 12, "maximum task period")
	GenCmd.Flags().StringVar(&genMethodFlag, "method", "kraemer", "generator: kraemer or uunifast")
	GenCmd.Flags().Int64Var(&genSeedFlag, "seed", 0, "RNG seed, 0 draws a time-based seed")
}

func parseUtil(s string) (rational.Rational, error) {
	parts := strings.SplitN(s, "/", 2)
	num, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return rational.Rational{}, errors.Wrapf(err, "invalid utilization %q", s)
	}
	if len(parts) == 1 {
		return rational.FromInt(num), nil
	}
	den, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return rational.Rational{}, errors.Wrapf(err, "invalid utilization %q", s)
	}
	return rational.New(num, den), nil
}

func runGen(cmd *cobra.Command, args []string) error {
	util, err := parseUtil(genUtilFlag)
	if err != nil {
		return err
	}

	seed := genSeedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var taskSet []rationalTaskView
	switch genMethodFlag {
	case "kraemer":
		ts, err := taskgen.GenModifiedKraemer(rng, genPrecisionFlag, util, genTasksFlag, genMinPeriod, genMaxPeriod)
		if err != nil {
			return errors.Wrap(err, "generate task set")
		}
		taskSet = viewTasks(ts)
	case "uunifast":
		ts, err := taskgen.GenUUniFastDiscard(rng, genPrecisionFlag, util, genTasksFlag, genMinPeriod, genMaxPeriod)
		if err != nil {
			return errors.Wrap(err, "generate task set")
		}
		taskSet = viewTasks(ts)
	default:
		return errors.Newf("unknown generator method %q (want kraemer or uunifast)", genMethodFlag)
	}

	pterm.DefaultHeader.WithFullWidth().Printf("marisa-sim task set (util=%s, n=%d)", util, genTasksFlag)
	header := []string{"task", "phase", "period", "exec_time", "deadline", "utilization"}
	rows := [][]string{header}
	for i, t := range taskSet {
		rows = append(rows, []string{
			strconv.Itoa(i),
			t.phase.String(), t.period.String(), t.execTime.String(), t.deadline.String(), t.util.String(),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return errors.Wrap(err, "render task table")
	}
	fmt.Println(table)
	return nil
}

// rationalTaskView flattens simcore.Task's exported fields for table
// rendering without importing simcore's scheduling machinery here.
type rationalTaskView struct {
	phase, period, execTime, deadline, util rational.Rational
}

func viewTasks(tasks []simcore.Task) []rationalTaskView {
	views := make([]rationalTaskView, len(tasks))
	for i, t := range tasks {
		views[i] = rationalTaskView{
			phase:    t.Phase,
			period:   t.Period,
			execTime: t.ExecTime,
			deadline: t.RelativeDeadline,
			util:     t.Utilization(),
		}
	}
	return views
}
