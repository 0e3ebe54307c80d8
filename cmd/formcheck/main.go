// Command formcheck serves the exercise tracking API: clients open a
// session, stream pose landmark frames to it and read back per-frame
// correctness, rep counts and hold durations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/formcheck/internal/api"
	"github.com/banshee-data/formcheck/internal/config"
	"github.com/banshee-data/formcheck/internal/exercise"
	"github.com/banshee-data/formcheck/internal/metrics"
	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/session"
	"github.com/banshee-data/formcheck/internal/timeutil"
	"github.com/banshee-data/formcheck/internal/version"
)

var (
	listen      = flag.String("listen", ":8080", "Listen address (overrides FORMCHECK_LISTEN)")
	tuningPath  = flag.String("tuning", "", "Tuning file, .json or .toml (overrides FORMCHECK_TUNING)")
	logLevel    = flag.String("log-level", "info", "Log level (overrides FORMCHECK_LOG_LEVEL)")
	logJSON     = flag.Bool("log-json", false, "Log as JSON (overrides FORMCHECK_LOG_JSON)")
	logFile     = flag.String("log-file", "", "Also log to this rotated file (overrides FORMCHECK_LOG_FILE)")
	idleTimeout = flag.Duration("idle-timeout", 30*time.Minute, "Evict sessions idle this long, 0 disables (overrides FORMCHECK_SESSION_IDLE_TIMEOUT)")
	sweepEvery  = flag.Duration("sweep-interval", time.Minute, "How often to look for idle sessions")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// applyFlags copies explicitly set flags over the environment config.
func applyFlags(fs *flag.FlagSet, cfg *config.ServerConfig) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = *listen
		case "tuning":
			cfg.TuningPath = *tuningPath
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-json":
			cfg.LogJSON = *logJSON
		case "log-file":
			cfg.LogFile = *logFile
		case "idle-timeout":
			cfg.SessionIdleTimeout = *idleTimeout
		}
	})
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.LoadServerConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "formcheck: %v\n", err)
		os.Exit(2)
	}
	applyFlags(flag.CommandLine, &cfg)

	monitoring.Setup(monitoring.SetupParams{
		Level:    cfg.LogLevel,
		JSON:     cfg.LogJSON,
		File:     cfg.LogFile,
		ToStdout: true,
	})
	monitoring.Logf("%s starting", version.String())

	tuning, err := cfg.Tuning()
	if err != nil {
		monitoring.Logf("failed to load tuning: %v", err)
		os.Exit(1)
	}
	if cfg.TuningPath != "" {
		monitoring.Logf("loaded tuning from %s", cfg.TuningPath)
	}

	promRegistry := metrics.SetupPrometheus()
	m := metrics.NewManager("formcheck", "server", promRegistry)

	clock := timeutil.RealClock{}
	sessions := session.NewRegistry(exercise.ConfigFromTuning(tuning), clock, m)

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SessionIdleTimeout > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessions.RunSweeper(ctx, *sweepEvery, cfg.SessionIdleTimeout)
			monitoring.Logf("session sweeper stopped")
		}()
	}

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		s := api.NewServer(sessions, m, promRegistry)
		server := &http.Server{
			Addr:              cfg.Listen,
			Handler:           s.LoggingMiddleware(s.ServeMux()),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			monitoring.Logf("listening on %s", cfg.Listen)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				monitoring.Logf("failed to start server: %v", err)
				stop()
			}
		}()

		<-ctx.Done()
		monitoring.Logf("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			monitoring.Logf("HTTP server shutdown error: %v", err)
			if err := server.Close(); err != nil {
				monitoring.Logf("HTTP server force close error: %v", err)
			}
		}
		monitoring.Logf("HTTP server routine stopped")
	}()

	wg.Wait()
	monitoring.Logf("graceful shutdown complete, %d sessions dropped", sessions.Len())
}
