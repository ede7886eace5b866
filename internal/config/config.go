package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-scheduler/internal/logger"
)

// Config holds tunable parameters for the alarm scheduler.
type Config struct {
	// RenderInterval is the fixed cadence at which a display worker
	// re-renders its alarm message.
	RenderInterval time.Duration `yaml:"render_interval"`
	// DispatcherNap is how long the dispatcher sleeps when the registry is
	// empty before checking again, giving the submitter a turn.
	DispatcherNap time.Duration `yaml:"dispatcher_nap"`
	// MetricsAddress is the optional listen address for the Prometheus
	// endpoint. Metrics are disabled when empty.
	MetricsAddress string `yaml:"metrics_addr"`
	// LogLevel is the minimum level for log output.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for scheduler settings.
	DefaultConfigFilename = "alarm-scheduler-settings.yaml"

	// DefaultRenderInterval is the default display worker render cadence.
	DefaultRenderInterval = 5 * time.Second

	// DefaultDispatcherNap is the default empty-registry nap duration.
	// It must stay at least one second so the submitter is never starved.
	DefaultDispatcherNap = 1 * time.Second

	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeRenderInterval is returned when the render interval is negative.
	errNegativeRenderInterval = errors.New("render interval must not be negative")
	// errNegativeDispatcherNap is returned when the dispatcher nap is negative.
	errNegativeDispatcherNap = errors.New("dispatcher nap must not be negative")
)

// Default returns a configuration populated with the default values.
func Default() *Config {
	return &Config{
		RenderInterval: DefaultRenderInterval,
		DispatcherNap:  DefaultDispatcherNap,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file is not an error: the scheduler is usable without a settings
// file, so defaults are returned instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for anything
// left unset.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.RenderInterval < 0 {
		return errNegativeRenderInterval
	}

	if cfg.DispatcherNap < 0 {
		return errNegativeDispatcherNap
	}

	if cfg.RenderInterval == 0 {
		cfg.RenderInterval = DefaultRenderInterval
	}

	if cfg.DispatcherNap == 0 {
		cfg.DispatcherNap = DefaultDispatcherNap
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	if cfg.MetricsAddress == "" {
		return nil
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.MetricsAddress); err != nil {
		return fmt.Errorf("invalid metrics address: %w", err)
	}

	return nil
}
