package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// ProcessingConfig controls how CSV files are rewritten
type ProcessingConfig struct {
	// Engine selects the header-rewrite strategy: "table" parses the whole
	// file as CSV, "raw" rewrites only the first line, "auto" tries the
	// table engine first and falls back to raw per file.
	Engine        string `yaml:"engine" envconfig:"ENGINE" validate:"oneof=auto table raw"`
	OutputDirName string `yaml:"output_dir_name" envconfig:"OUTPUT_DIR_NAME" validate:"required"`
	TempSuffix    string `yaml:"temp_suffix" envconfig:"TEMP_SUFFIX" validate:"required,startswith=."`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// Load loads configuration from an optional config file and environment
// variables. Precedence: environment > file > defaults.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("CSVPREP", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg. Keys absent
// from the file leave the existing values untouched.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// normalize lowercases enum-like fields so validation and switches see a
// canonical form.
func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	c.Processing.Engine = strings.ToLower(strings.TrimSpace(c.Processing.Engine))
}

// Validate checks the configuration against the struct-level validation tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid value for %s (rule %q)", first.Namespace(), first.Tag())
		}
		return err
	}
	return nil
}

var validate = validator.New()

// UseTableEngine reports whether the structured table strategy should be
// attempted before the raw fallback.
func (c *Config) UseTableEngine() bool {
	return c.Processing.Engine == "auto" || c.Processing.Engine == "table"
}

// GetProcessedDir returns the resolved backup output directory
func (c *Config) GetProcessedDir() string {
	if filepath.IsAbs(c.Processing.OutputDirName) {
		return c.Processing.OutputDirName
	}
	return filepath.Join(c.baseDir(), c.Processing.OutputDirName)
}

// GetLogsDir returns the resolved logs directory path
func (c *Config) GetLogsDir() string {
	if filepath.IsAbs(c.Paths.LogsDir) {
		return c.Paths.LogsDir
	}
	return filepath.Join(c.baseDir(), c.Paths.LogsDir)
}

// GetLogFilePath returns the resolved log file path
func (c *Config) GetLogFilePath() string {
	if filepath.IsAbs(c.Logging.FilePath) {
		return c.Logging.FilePath
	}
	return filepath.Join(c.baseDir(), c.Logging.FilePath)
}

// baseDir resolves the configured base directory, falling back to the
// executable directory and finally the working directory.
func (c *Config) baseDir() string {
	if c.Paths.BaseDir != "" {
		return c.Paths.BaseDir
	}
	paths, err := GetPaths()
	if err != nil {
		return "."
	}
	return paths.ExecutableDir
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/csvprep.log",
		},
		Processing: ProcessingConfig{
			Engine:        "auto",
			OutputDirName: "processed_data",
			TempSuffix:    ".tmp",
		},
		Paths: PathsConfig{
			LogsDir: "logs",
		},
	}
}
