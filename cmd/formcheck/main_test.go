package main

import (
	"flag"
	"testing"
	"time"

	"github.com/banshee-data/formcheck/internal/config"
)

func TestFlagDefaults(t *testing.T) {
	if *listen != ":8080" {
		t.Errorf("listen default = %q, want :8080", *listen)
	}
	if *idleTimeout != 30*time.Minute {
		t.Errorf("idle-timeout default = %s, want 30m", *idleTimeout)
	}
	if *sweepEvery != time.Minute {
		t.Errorf("sweep-interval default = %s, want 1m", *sweepEvery)
	}
}

// TestApplyFlags verifies that only flags given on the command line
// override values loaded from the environment.
func TestApplyFlags(t *testing.T) {
	origListen, origLevel, origIdle := *listen, *logLevel, *idleTimeout
	t.Cleanup(func() { *listen, *logLevel, *idleTimeout = origListen, origLevel, origIdle })

	fs := flag.NewFlagSet("formcheck", flag.ContinueOnError)
	fs.StringVar(listen, "listen", ":8080", "")
	fs.StringVar(logLevel, "log-level", "info", "")
	fs.DurationVar(idleTimeout, "idle-timeout", 30*time.Minute, "")

	if err := fs.Parse([]string{"-listen", ":9090", "-idle-timeout", "2m"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg := config.ServerConfig{Listen: ":7000", LogLevel: "debug", SessionIdleTimeout: time.Hour}
	applyFlags(fs, &cfg)

	if cfg.Listen != ":9090" {
		t.Errorf("Listen = %q, want :9090", cfg.Listen)
	}
	if cfg.SessionIdleTimeout != 2*time.Minute {
		t.Errorf("SessionIdleTimeout = %s, want 2m", cfg.SessionIdleTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want env value debug", cfg.LogLevel)
	}
}
