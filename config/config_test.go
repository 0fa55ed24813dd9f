package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	require.Equal(t, 4, cfg.Sim.Cores)
	require.Equal(t, 200, cfg.Sim.UtilSteps)
	require.Equal(t, 200000, cfg.Sim.Precision)
	require.Equal(t, 50, cfg.Sim.TrialsPerUtil)
	require.Equal(t, 12, cfg.Sim.TaskCount)
	require.Equal(t, []string{"GEDF", "EDZL", "PD2", "LLREF"}, cfg.Sim.Schedulers)
	require.Equal(t, "results", cfg.Output.TextDir)
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marisa.toml")

	contents := `
[sim]
cores = 8
trials_per_util = 10
schedulers = ["GEDF", "PD2"]

[output]
text_dir = "out"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	require.Equal(t, 8, cfg.Sim.Cores)
	require.Equal(t, 10, cfg.Sim.TrialsPerUtil)
	require.Equal(t, []string{"GEDF", "PD2"}, cfg.Sim.Schedulers)
	require.Equal(t, "out", cfg.Output.TextDir)

	// Fields not present in the file keep their defaults.
	require.Equal(t, 200, cfg.Sim.UtilSteps)
	require.Equal(t, "results.db", cfg.Output.SQLitePath)
}

func TestWriteDefaultFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marisa.toml")

	require.NoError(t, WriteDefaultFile(path))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Sim.Cores)
	require.Equal(t, "results", cfg.Output.TextDir)
}
