// Package config loads xlmerge settings from defaults, a YAML file, .env, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/annotate"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. XLMERGE_RULES_PATH.
const EnvPrefix = "XLMERGE"

// Config is the complete application configuration.
type Config struct {
	RulesPath  string           `yaml:"rules_path" envconfig:"RULES_PATH" validate:"required"`
	TimeColumn string           `yaml:"time_column" envconfig:"TIME_COLUMN" validate:"required"`
	Markers    annotate.Markers `yaml:"markers" envconfig:"MARKERS"`
	Output     OutputConfig     `yaml:"output" envconfig:"OUTPUT"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
}

// OutputConfig controls the rendered workbook.
type OutputConfig struct {
	SheetName  string  `yaml:"sheet_name" envconfig:"SHEET_NAME" validate:"required,max=31"`
	TimeFormat string  `yaml:"time_format" envconfig:"TIME_FORMAT" validate:"required"`
	MinWidth   float64 `yaml:"min_width" envconfig:"MIN_WIDTH" validate:"gt=0"`
	MaxWidth   float64 `yaml:"max_width" envconfig:"MAX_WIDTH" validate:"gtefield=MinWidth,lte=255"`
	SampleRows int     `yaml:"sample_rows" envconfig:"SAMPLE_ROWS" validate:"gt=0"`
}

// LoggingConfig controls log level and destinations.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RulesPath:  "Правила названия столбцов.xlsx",
		TimeColumn: "Время",
		Markers:    annotate.DefaultMarkers(),
		Output: OutputConfig{
			SheetName:  "Sheet1",
			TimeFormat: "yyyy-mm-dd hh:mm:ss",
			MinWidth:   10,
			MaxWidth:   50,
			SampleRows: 100,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: filepath.Join("~", ".xlmerge", "app.log"),
		},
	}
}

// Load builds the configuration. An explicit path must exist; otherwise the
// first file found among the default locations is used, if any.
func Load(path string) (*Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		if err := loadFromFile(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile returns the first existing default config location.
func findConfigFile() string {
	locations := []string{"xlmerge.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".xlmerge", "config.yaml"))
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// ApplyFlags overrides settings with the flags the user set explicitly.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	for name, dst := range map[string]*string{
		"rules":       &c.RulesPath,
		"time-column": &c.TimeColumn,
		"sheet":       &c.Output.SheetName,
		"log-level":   &c.Logging.Level,
		"log-output":  &c.Logging.Output,
	} {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if flags.Lookup("verbose") != nil && flags.Changed("verbose") {
		verbose, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		if verbose {
			c.Logging.Level = "debug"
		}
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// LogFilePath returns the log file path with a leading ~ expanded.
func (c *Config) LogFilePath() string {
	return expandHome(c.Logging.FilePath)
}

func expandHome(path string) string {
	if path != "~" && !hasHomePrefix(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func hasHomePrefix(path string) bool {
	return len(path) > 1 && path[0] == '~' && os.IsPathSeparator(path[1])
}
