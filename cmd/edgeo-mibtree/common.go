package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/edgeo-scada/mibtree/gomibsrc"
	"github.com/edgeo-scada/mibtree/mibtree"
)

// Exit codes.
const (
	exitOK       = 0 // success
	exitError    = 1 // usage error or processing failure
	exitNotFound = 2 // ROOT_NODE does not resolve
	exitTemplate = 3 // template does not parse or fails to evaluate
)

// exitCode maps an error returned by a command to a process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case mibtree.IsNotFound(err):
		return exitNotFound
	case mibtree.IsTemplateError(err):
		return exitTemplate
	default:
		return exitError
	}
}

// parseLogLevel maps a --log-level value to a slog level. enabled is false
// for "none".
func parseLogLevel(s string) (level slog.Level, enabled bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return 0, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "error", "fatal":
		return slog.LevelError, true, nil
	default:
		return 0, false, &usageError{msg: fmt.Sprintf("invalid log level: %s", s)}
	}
}

// setupLogger returns a stderr logger for the level, or nil when logging
// is disabled.
func setupLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, enabled, err := parseLogLevel(level)
	if err != nil || !enabled {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

// buildOptions builds graph and renderer options from the current configuration.
func buildOptions(logger *slog.Logger, metrics *mibtree.Metrics) []mibtree.Option {
	mode := mibtree.PeersExcludeSelf
	if peersIncludeSelf {
		mode = mibtree.PeersIncludeSelf
	}
	opts := []mibtree.Option{
		mibtree.WithPeerMode(mode),
		mibtree.WithMetrics(metrics),
	}
	if logger != nil {
		opts = append(opts, mibtree.WithLogger(logger))
	}
	return opts
}

// loadGraph builds the OID tree from the fixture file or the MIB search path.
func loadGraph(ctx context.Context, logger *slog.Logger, metrics *mibtree.Metrics, opts []mibtree.Option) (*mibtree.Graph, error) {
	start := time.Now()

	var (
		graph *mibtree.Graph
		err   error
	)
	if fixtureFile != "" {
		graph, err = mibtree.LoadFixtureFile(fixtureFile, opts...)
	} else {
		graph, err = gomibsrc.Load(ctx, gomibsrc.Config{
			Paths:      mibPaths,
			Modules:    mibModules,
			Permissive: permissive,
			Logger:     logger,
		}, opts...)
	}
	if err != nil {
		return nil, err
	}

	metrics.ObserveGraph(graph, time.Since(start))
	return graph, nil
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// formatBytes formats bytes for display.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// microseconds converts a histogram sum back to a duration.
func microseconds(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}
