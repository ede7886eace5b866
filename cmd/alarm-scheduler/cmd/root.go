package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-scheduler/internal/config"
	"github.com/oshokin/alarm-scheduler/internal/service/scheduler"
	"github.com/oshokin/alarm-scheduler/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the log level from configuration.
	logLevel string
	// metricsAddress overrides the metrics listen address from configuration.
	metricsAddress string
	// allowMultiple disables the duplicate-instance check.
	allowMultiple bool

	// rootCmd represents the base command for running the scheduler.
	rootCmd = &cobra.Command{
		Use:   "alarm-scheduler",
		Short: "Run the interactive alarm scheduler.",
		Long: `Starts the interactive alarm scheduler and reads requests from standard input.

Supported requests:
  Start_Alarm(<id>): <seconds> <message>
  Change_Alarm(<id>): <seconds> <message>

Alarms are queued in ascending id order and retired when their timer elapses.
While an alarm is active, a dedicated display worker re-renders its message
every few seconds and picks up mid-flight message changes. Alarms live only
for the lifetime of the process; nothing is persisted.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &scheduler.Options{
				ConfigPath:     configPath,
				MetricsAddress: metricsAddress,
				LogLevel:       logLevel,
				AllowMultiple:  allowMultiple,
			}

			return scheduler.Run(ctx, options)
		},
	}
)

// Execute runs the alarm-scheduler CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")
	rootCmd.Flags().
		StringVarP(&metricsAddress, "metrics-address", "m", "", "listen address for the Prometheus endpoint")
	rootCmd.Flags().
		BoolVar(&allowMultiple, "allow-multiple", false, "allow running alongside another scheduler instance")
}
