package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-scheduler/internal/config"
)

// TestRunEndToEnd drives the full process wiring: configuration file,
// prompt loop over a scripted input, dispatcher and worker teardown at EOF.
func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{
		RenderInterval: 20 * time.Millisecond,
		DispatcherNap:  10 * time.Millisecond,
		LogLevel:       "warn",
	}))

	in := strings.NewReader(
		"Start_Alarm(1): 0 end to end\n" +
			"not a command\n" +
			"Change_Alarm(42): 5 never started\n",
	)

	var out strings.Builder

	err := Run(context.Background(), &Options{
		ConfigPath:    cfgPath,
		AllowMultiple: true,
		Input:         in,
		Output:        &out,
	})

	require.NoError(t, err)
	require.Contains(t, out.String(), "alarm> ")
	require.Contains(t, out.String(), "Bad command")
	require.Contains(t, out.String(), "Alarm ID (42) not found")
}

// TestRunRejectsBrokenConfig verifies configuration errors surface before
// anything starts.
func TestRunRejectsBrokenConfig(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{
		ConfigPath:    filepath.Join(t.TempDir(), "ignored.yaml"),
		LogLevel:      "loud",
		AllowMultiple: true,
		Input:         strings.NewReader(""),
		Output:        &strings.Builder{},
	})

	require.Error(t, err)
}

// TestAnotherInstanceRunning ensures the process scan completes without error.
func TestAnotherInstanceRunning(t *testing.T) {
	t.Parallel()

	_, err := anotherInstanceRunning()
	require.NoError(t, err)
}
