package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/zjrosen/registrar/internal/config"
	"github.com/zjrosen/registrar/internal/flags"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/paths"
)

func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("shell.max_attempts", defaults.Shell.MaxAttempts)
	v.SetDefault("shell.show_activity", defaults.Shell.ShowActivity)
	v.SetDefault("shell.activity_lines", defaults.Shell.ActivityLines)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("log.path", defaults.Log.Path)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	for _, name := range flags.Known() {
		v.SetDefault("flags."+name, defaults.Flags[name])
	}
}

// loadConfig resolves, reads and validates the configuration.
//
// Lookup order:
//  1. explicit (--config)
//  2. .registrar/config.yaml
//  3. ~/.config/registrar/config.yaml
//
// When no file exists and none was requested, a commented default is written
// to .registrar/config.yaml. Failing to write it is not an error.
func loadConfig(v *viper.Viper, explicit string) (string, config.Config, error) {
	setDefaults(v)

	path, found := paths.ResolveConfigFile(explicit)
	if !found && explicit == "" {
		if err := config.WriteDefaultConfig(path); err == nil {
			found = true
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if found {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return path, config.Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return path, config.Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if cfg.Tracing.FilePath == "" && cfg.Tracing.Exporter == "file" {
		cfg.Tracing.FilePath = paths.DefaultTracesFilePath()
	}
	if err := config.Validate(cfg); err != nil {
		return path, config.Config{}, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	log.Debug(log.CatConfig, "Configuration loaded", "path", path, "found", found)
	return path, cfg, nil
}
