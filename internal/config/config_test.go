package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaulting and format validations for settings.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Nil config.
	require.Error(t, Validate(nil))

	// Empty config picks up defaults.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultRenderInterval, cfg.RenderInterval)
	require.Equal(t, DefaultDispatcherNap, cfg.DispatcherNap)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)

	// Negative durations.
	cfg = &Config{RenderInterval: -time.Second}
	require.Error(t, Validate(cfg))

	cfg = &Config{DispatcherNap: -time.Second}
	require.Error(t, Validate(cfg))

	// Bad log level.
	cfg = &Config{LogLevel: "loud"}
	require.Error(t, Validate(cfg))

	// Bad metrics address.
	cfg = &Config{MetricsAddress: "bad:address"}
	require.Error(t, Validate(cfg))

	// Okay with metrics address.
	cfg = &Config{MetricsAddress: "127.0.0.1:0"}
	require.NoError(t, Validate(cfg))
}

// TestLoadMissingFileReturnsDefaults ensures the scheduler starts without a
// settings file.
func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		RenderInterval: 2 * time.Second,
		DispatcherNap:  time.Second,
		MetricsAddress: "127.0.0.1:9091",
		LogLevel:       "debug",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
