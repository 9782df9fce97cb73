// Package config provides configuration types and defaults for registrar.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/registrar/internal/flags"
	"github.com/zjrosen/registrar/internal/log"
)

// Config holds all configuration options for registrar.
type Config struct {
	Roster  string          `mapstructure:"roster"`
	Watch   bool            `mapstructure:"watch"`
	Grades  GradesConfig    `mapstructure:"grades"`
	Shell   ShellConfig     `mapstructure:"shell"`
	Cache   CacheConfig     `mapstructure:"cache"`
	Log     LogConfig       `mapstructure:"log"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// GradesConfig optionally bounds the scores accepted by AssignGrade.
// A nil bound leaves that side open; by default any integer is accepted.
type GradesConfig struct {
	Min *int `mapstructure:"min"`
	Max *int `mapstructure:"max"`
}

// ShellConfig holds interactive shell options.
type ShellConfig struct {
	// MaxAttempts is how many malformed inputs a prompt tolerates before
	// returning to the menu.
	MaxAttempts int `mapstructure:"max_attempts"`

	// ShowActivity renders the recent registry events pane.
	ShowActivity bool `mapstructure:"show_activity"`

	// ActivityLines caps the number of events kept in the pane.
	ActivityLines int `mapstructure:"activity_lines"`
}

// CacheConfig controls the average grade cache.
type CacheConfig struct {
	// TTL is how long a computed average stays cached. Writes invalidate
	// the affected student regardless of TTL. Zero disables the cache.
	TTL time.Duration `mapstructure:"ttl"`
}

// LogConfig controls the debug log sink.
type LogConfig struct {
	Path  string `mapstructure:"path"`  // Default: debug.log
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/registrar/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Shell: ShellConfig{
			MaxAttempts:   3,
			ShowActivity:  true,
			ActivityLines: 8,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Log: LogConfig{
			Path:  "debug.log",
			Level: "debug",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{
			flags.FlagLegacyGradeHistory: false,
			flags.FlagAllowReenroll:      false,
		},
	}
}

// Validate runs every section validator and returns the first failure.
func Validate(cfg Config) error {
	validators := []func(Config) error{
		func(c Config) error { return ValidateGrades(c.Grades) },
		func(c Config) error { return ValidateShell(c.Shell) },
		func(c Config) error { return ValidateCache(c.Cache) },
		func(c Config) error { return ValidateLog(c.Log) },
		func(c Config) error { return ValidateTracing(c.Tracing) },
	}
	for _, v := range validators {
		if err := v(cfg); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGrades checks that configured grade bounds form a non-empty range.
func ValidateGrades(g GradesConfig) error {
	if g.Min != nil && g.Max != nil && *g.Min > *g.Max {
		return fmt.Errorf("grades.min (%d) must not exceed grades.max (%d)", *g.Min, *g.Max)
	}
	return nil
}

// ValidateShell checks shell configuration for errors.
func ValidateShell(s ShellConfig) error {
	if s.MaxAttempts < 1 {
		return fmt.Errorf("shell.max_attempts must be at least 1, got %d", s.MaxAttempts)
	}
	if s.ActivityLines < 0 {
		return fmt.Errorf("shell.activity_lines must not be negative, got %d", s.ActivityLines)
	}
	return nil
}

// ValidateCache checks cache configuration for errors.
func ValidateCache(c CacheConfig) error {
	if c.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.TTL)
	}
	return nil
}

// ValidateLog checks log configuration for errors.
// An empty level means the default.
func ValidateLog(l LogConfig) error {
	if l.Level == "" {
		return nil
	}
	if _, err := log.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate destinations when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Registrar Configuration

# Roster file loaded at startup (.yaml, .yml or .xlsx)
# roster: ./roster.yaml

# Re-apply the roster file when it changes on disk
watch: false

# Accepted grade range (inclusive). Any integer is accepted unless set.
# grades:
#   min: 0
#   max: 100

# Interactive shell
shell:
  max_attempts: 3     # Malformed inputs tolerated before returning to the menu
  show_activity: true # Show recent registry events under the menu
  activity_lines: 8

# Average grade cache (writes always invalidate the affected student)
cache:
  ttl: 5m

# Debug log (enabled with --debug or REGISTRAR_DEBUG=1)
log:
  path: debug.log
  level: debug

# Feature flags
flags:
  legacy-grade-history: false # Average every grade ever assigned instead of current grades
  allow-reenroll: false       # Allow enrolling a student in the same course twice

# Tracing
# tracing:
#   enabled: false
#   exporter: file          # none, file, stdout, otlp
#   file_path: ~/.config/registrar/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
