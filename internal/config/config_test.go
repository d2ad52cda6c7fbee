package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Время", cfg.TimeColumn)
	assert.Equal(t, "⚠", cfg.Markers.Suffix)
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xlmerge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadLayers(t *testing.T) {
	path := writeYAML(t, `
rules_path: /srv/rules.xlsx
time_column: Timestamp
output:
  max_width: 40
logging:
  level: warn
`)
	t.Setenv("XLMERGE_TIME_COLUMN", "Time")
	t.Setenv("XLMERGE_OUTPUT_SAMPLE_ROWS", "20")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/rules.xlsx", cfg.RulesPath)
	assert.Equal(t, "Time", cfg.TimeColumn)
	assert.Equal(t, 40.0, cfg.Output.MaxWidth)
	assert.Equal(t, 10.0, cfg.Output.MinWidth)
	assert.Equal(t, 20, cfg.Output.SampleRows)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "↑", cfg.Markers.Above)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	cfg := Default()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("rules", "", "")
	fs.String("time-column", "", "")
	fs.Bool("verbose", false, "")
	require.NoError(t, fs.Parse([]string{"--rules", "custom.csv", "--verbose"}))

	require.NoError(t, cfg.ApplyFlags(fs))
	assert.Equal(t, "custom.csv", cfg.RulesPath)
	assert.Equal(t, "Время", cfg.TimeColumn, "unset flags keep the configured value")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no rules", func(c *Config) { c.RulesPath = "" }},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad output", func(c *Config) { c.Logging.Output = "syslog" }},
		{"file without path", func(c *Config) { c.Logging.Output = "file"; c.Logging.FilePath = "" }},
		{"widths inverted", func(c *Config) { c.Output.MinWidth = 60 }},
		{"no marker suffix", func(c *Config) { c.Markers.Suffix = "" }},
		{"sheet name too long", func(c *Config) { c.Output.SheetName = "a very long worksheet name over 31" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLogFilePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()
	assert.Equal(t, filepath.Join(home, ".xlmerge", "app.log"), cfg.LogFilePath())

	cfg.Logging.FilePath = "/var/log/xlmerge.log"
	assert.Equal(t, "/var/log/xlmerge.log", cfg.LogFilePath())
}
