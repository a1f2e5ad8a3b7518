package mathsinterp

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultConfigFile is the configuration file looked up by the commands.
const DefaultConfigFile = "mathsi.yaml"

// Config represents the interpreter configuration
type Config struct {
	// Variable is the independent variable for differentiation, plotting and tangents.
	Variable string `yaml:"variable"`
	// Precision is the number of decimal places shown by FormatValue.
	Precision int `yaml:"precision"`
	// HistoryFile is where the REPL keeps its line history. Empty disables history.
	HistoryFile string        `yaml:"history_file"`
	Plot        SampleOptions `yaml:"plot"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Variable:    "x",
		Precision:   10,
		HistoryFile: "${HOME}/.mathsi_history",
		Plot:        DefaultSampleOptions(),
	}
}

// LoadConfig loads configuration from configPath. A missing file yields the defaults.
// A .env file in the working directory is loaded first so ${VAR} references resolve.
func LoadConfig(configPath string) (*Config, error) {
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := DefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data, rejecting unknown fields.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()

	err := yaml.UnmarshalWithOptions(data, config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	expandConfigEnvVars(config)

	return config, nil
}

func validateConfig(config *Config) error {
	tokens, err := Tokenize(config.Variable)
	if err != nil || len(tokens) != 2 || tokens[0].Kind != TokenIdent {
		return fmt.Errorf("%w: variable %q must be a single identifier", ErrConfigValidation, config.Variable)
	}

	if config.Precision < 0 || config.Precision > 17 {
		return fmt.Errorf("%w: precision must be between 0 and 17, got %d", ErrConfigValidation, config.Precision)
	}

	plot := config.Plot
	if plot.Samples <= 0 || plot.MaxSamples <= 0 || plot.ProbeSamples <= 0 {
		return fmt.Errorf("%w: plot sample counts must be positive", ErrConfigValidation)
	}

	if plot.Samples > plot.MaxSamples {
		return fmt.Errorf("%w: plot.samples (%d) exceeds plot.max_samples (%d)", ErrConfigValidation, plot.Samples, plot.MaxSamples)
	}

	if !(plot.ProbeMin < plot.ProbeMax) || !isFinite(plot.ProbeMax-plot.ProbeMin) {
		return fmt.Errorf("%w: plot.probe_min must be less than plot.probe_max with a finite width", ErrConfigValidation)
	}

	if plot.Margin <= 0 {
		return fmt.Errorf("%w: plot.margin must be positive", ErrConfigValidation)
	}

	return nil
}

func expandConfigEnvVars(config *Config) {
	config.HistoryFile = expandEnvVars(config.HistoryFile)
}

func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
