package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/alarm-scheduler/internal/command"
	"github.com/oshokin/alarm-scheduler/internal/config"
	"github.com/oshokin/alarm-scheduler/internal/events"
	"github.com/oshokin/alarm-scheduler/internal/logger"
	"github.com/oshokin/alarm-scheduler/internal/metrics"
	"github.com/oshokin/alarm-scheduler/internal/registry"
)

// Options controls the alarm-scheduler process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// MetricsAddress overrides the metrics listen address from config.
	MetricsAddress string
	// LogLevel overrides the log level from config.
	LogLevel string
	// AllowMultiple disables the duplicate-instance check.
	AllowMultiple bool
	// Input is the request source; defaults to os.Stdin.
	Input io.Reader
	// Output receives the prompt and rejection messages; defaults to os.Stdout.
	Output io.Writer
}

// metricsShutdownTimeout bounds the metrics server drain on exit.
const metricsShutdownTimeout = 2 * time.Second

// Run starts the scheduler and serves the interactive prompt until EOF or
// context cancellation. The dispatcher and every display worker are shut
// down before it returns; nothing is persisted.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-scheduler")

	// Load settings first; CLI options override the file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.MetricsAddress != "" {
		cfg.MetricsAddress = opts.MetricsAddress
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("validate configuration: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	// Refuse to start a second interactive instance unless asked to.
	if !opts.AllowMultiple {
		running, err := anotherInstanceRunning()
		if err != nil {
			logger.Warnf(ctx, "Unable to scan process table: %v", err)
		} else if running {
			return ErrAlreadyRunning
		}
	}

	if cfg.MetricsAddress != "" {
		metrics.Init()
		serveMetrics(ctx, cfg.MetricsAddress)
	}

	scheduler := New(
		registry.New(),
		events.NewLogSink(),
		WithRenderInterval(cfg.RenderInterval),
		WithDispatcherNap(cfg.DispatcherNap),
	)

	// The dispatcher runs for as long as the prompt does; canceling
	// dispatchCtx tears down the workers once the prompt loop ends.
	dispatchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})

	go func() {
		scheduler.Run(dispatchCtx)
		close(done)
	}()

	in := opts.Input
	if in == nil {
		in = os.Stdin
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	logger.InfoKV(ctx, "Alarm scheduler ready",
		"render_interval", cfg.RenderInterval.String(),
		"dispatcher_nap", cfg.DispatcherNap.String(),
		"metrics_addr", cfg.MetricsAddress)

	promptErr := command.RunPrompt(ctx, in, out, scheduler)

	// Stop the dispatcher and wait until every worker terminated.
	cancel()
	<-done

	logger.Info(ctx, "Alarm scheduler stopped")

	return promptErr
}

// serveMetrics exposes the Prometheus endpoint on the provided address and
// drains it when the context ends. Serve errors are logged, not fatal: the
// scheduler is usable without metrics.
func serveMetrics(ctx context.Context, address string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: metricsShutdownTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.InfoKV(ctx, "Metrics endpoint listening", "address", address)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorKV(ctx, "Metrics endpoint failed", "error", err)
		}
	}()
}
