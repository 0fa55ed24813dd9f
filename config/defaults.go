package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options.
// These mirror the constants the original experiment harness hardcoded
// (UTIL_STEPS, PRECISION, TRIALS_PER_UTIL, TASK_COUNT, MIN_PERIOD,
// MAX_PERIOD, SIM_TIME, PD2_SCALE).
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sim.cores", 4)
	v.SetDefault("sim.util_steps", 200)
	v.SetDefault("sim.precision", 200000)
	v.SetDefault("sim.trials_per_util", 50)
	v.SetDefault("sim.task_count", 12)
	v.SetDefault("sim.min_period", 4)
	v.SetDefault("sim.max_period", 12)
	v.SetDefault("sim.sim_time", 1000)
	v.SetDefault("sim.pd2_scale", 10)
	v.SetDefault("sim.schedulers", []string{"GEDF", "EDZL", "PD2", "LLREF"})

	v.SetDefault("output.text_dir", "results")
	v.SetDefault("output.sqlite_path", "results.db")
}

// BindSensitiveEnvVars binds configuration values that are commonly
// overridden per-environment (output locations) to environment variables.
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("output.text_dir", "MARISA_OUTPUT_DIR")
	v.BindEnv("output.sqlite_path", "MARISA_SQLITE_PATH")
}
