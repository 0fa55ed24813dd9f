// Package config loads the simulator's configuration: the sweep parameters
// the experiment harness runs with, and where its output goes.
package config

import "fmt"

// Config is the top-level configuration, nesting by concern the same way
// the teacher's am.Config does.
type Config struct {
	Sim    SimConfig    `mapstructure:"sim"`
	Output OutputConfig `mapstructure:"output"`
}

// SimConfig configures a single utilization-sweep experiment: the grid of
// utilizations to test, how many random task sets to draw per utilization,
// and the shape of the generated task sets themselves.
type SimConfig struct {
	Cores         int      `mapstructure:"cores"`           // number of processor cores (m)
	UtilSteps     int      `mapstructure:"util_steps"`      // number of utilization grid points
	Precision     int      `mapstructure:"precision"`       // denominator scale for utilization fractions
	TrialsPerUtil int      `mapstructure:"trials_per_util"` // random task sets drawn per utilization
	TaskCount     int      `mapstructure:"task_count"`      // tasks per generated task set
	MinPeriod     int      `mapstructure:"min_period"`      // minimum task period
	MaxPeriod     int      `mapstructure:"max_period"`      // maximum task period
	SimTime       int      `mapstructure:"sim_time"`        // simulated time horizon per trial
	PD2Scale      int      `mapstructure:"pd2_scale"`       // PD² subslot scale factor
	Schedulers    []string `mapstructure:"schedulers"`      // scheduler names to run, e.g. ["GEDF", "EDZL"]
}

// OutputConfig configures where sweep results are written.
type OutputConfig struct {
	TextDir    string `mapstructure:"text_dir"`    // directory for plain-text export files
	SQLitePath string `mapstructure:"sqlite_path"` // path to the sqlite results database, empty disables it
}

// String renders a compact summary, mirroring am.Config.String.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Sim: {Cores: %d, UtilSteps: %d, TrialsPerUtil: %d}, Output: {TextDir: %s, SQLitePath: %s}}",
		c.Sim.Cores, c.Sim.UtilSteps, c.Sim.TrialsPerUtil, c.Output.TextDir, c.Output.SQLitePath)
}
