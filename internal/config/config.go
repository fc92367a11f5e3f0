// Package config loads engine configuration from defaults, an optional YAML
// file, and environment variable overrides, in that precedence order.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"hookchain/hook-engine/internal/runner"
	"hookchain/hook-engine/pkg/scheduler"
)

// Config is the complete configuration for the hook engine.
type Config struct {
	Runner    RunnerConfig    `yaml:"runner"`
	Pool      PoolConfig      `yaml:"pool"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RunnerConfig bounds chain execution.
type RunnerConfig struct {
	WarnAfter time.Duration `yaml:"warn_after" env:"HOOK_ENGINE_WARN_AFTER"`
	KillAfter time.Duration `yaml:"kill_after" env:"HOOK_ENGINE_KILL_AFTER"`
}

// UnmarshalYAML accepts durations in the human form ("5m", "1h") as well as
// plain nanosecond integers.
func (r *RunnerConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		WarnAfter string `yaml:"warn_after"`
		KillAfter string `yaml:"kill_after"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	var err error
	if raw.WarnAfter != "" {
		if r.WarnAfter, err = parseDuration(raw.WarnAfter); err != nil {
			return fmt.Errorf("runner.warn_after: %w", err)
		}
	}
	if raw.KillAfter != "" {
		if r.KillAfter, err = parseDuration(raw.KillAfter); err != nil {
			return fmt.Errorf("runner.kill_after: %w", err)
		}
	}
	return nil
}

// MarshalYAML renders durations in their human form so serialized configs
// stay readable and round-trip.
func (r RunnerConfig) MarshalYAML() (any, error) {
	return struct {
		WarnAfter string `yaml:"warn_after"`
		KillAfter string `yaml:"kill_after"`
	}{
		WarnAfter: r.WarnAfter.String(),
		KillAfter: r.KillAfter.String(),
	}, nil
}

func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	ns, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return time.Duration(ns), nil
}

// PoolConfig sizes the shared worker pool.
type PoolConfig struct {
	Size int `yaml:"size" env:"HOOK_ENGINE_POOL_SIZE"`
}

// DiscoveryConfig controls hook directory scanning.
type DiscoveryConfig struct {
	// Suffix restricts discovery to hooks with this file name suffix.
	// Empty means no restriction.
	Suffix string `yaml:"suffix" env:"HOOK_ENGINE_HOOK_SUFFIX"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"HOOK_ENGINE_LOG_LEVEL"`
	Format     string `yaml:"format" env:"HOOK_ENGINE_LOG_FORMAT"`
	Output     string `yaml:"output" env:"HOOK_ENGINE_LOG_OUTPUT"`
	FilePath   string `yaml:"file_path" env:"HOOK_ENGINE_LOG_FILE"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Runner: RunnerConfig{
			WarnAfter: runner.DefaultWarnAfter,
			KillAfter: runner.DefaultKillAfter,
		},
		Pool: PoolConfig{
			Size: scheduler.DefaultPoolSize,
		},
		Discovery: DiscoveryConfig{},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stdout",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Runner.WarnAfter < 0 {
		return fmt.Errorf("runner.warn_after must not be negative")
	}
	if c.Runner.KillAfter < 0 {
		return fmt.Errorf("runner.kill_after must not be negative")
	}
	if c.Runner.WarnAfter > 0 && c.Runner.KillAfter > 0 && c.Runner.WarnAfter > c.Runner.KillAfter {
		return fmt.Errorf("runner.warn_after (%s) exceeds runner.kill_after (%s)", c.Runner.WarnAfter, c.Runner.KillAfter)
	}
	if c.Pool.Size < 0 {
		return fmt.Errorf("pool.size must not be negative")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level: %s", c.Logging.Level)
	}
	return nil
}

// Loader handles configuration loading from multiple sources.
type Loader struct {
	configPath string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// WithConfigPath sets the path to the YAML configuration file.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// Load loads configuration with precedence: defaults < YAML file < environment.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // file is optional, keep defaults
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides recursively applies env-tagged environment variables to
// struct fields.
func applyEnvOverrides(cfg *Config) error {
	return applyEnvToStruct(reflect.ValueOf(cfg).Elem())
}

func applyEnvToStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Duration(0)) {
			if err := applyEnvToStruct(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}
		envValue := os.Getenv(envTag)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("setting %s from %s: %w", fieldType.Name, envTag, err)
		}
	}
	return nil
}

// setFieldValue sets a reflect.Value from its string representation.
func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field is not settable")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		} else {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

// Serialize renders the configuration as YAML.
func (c *Config) Serialize() ([]byte, error) {
	return yaml.Marshal(c)
}

// ParseConfig parses a YAML document into a Config on top of the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
