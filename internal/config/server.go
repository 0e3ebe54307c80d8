package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds process-level settings for the formcheck server. Values
// come from FORMCHECK_* environment variables; command-line flags override
// them in cmd/formcheck.
type ServerConfig struct {
	Listen             string        `env:"FORMCHECK_LISTEN"               envDefault:":8080"`
	TuningPath         string        `env:"FORMCHECK_TUNING"`
	LogLevel           string        `env:"FORMCHECK_LOG_LEVEL"            envDefault:"info"`
	LogJSON            bool          `env:"FORMCHECK_LOG_JSON"`
	LogFile            string        `env:"FORMCHECK_LOG_FILE"`
	SessionIdleTimeout time.Duration `env:"FORMCHECK_SESSION_IDLE_TIMEOUT" envDefault:"30m"`
}

// LoadServerConfigFromEnv parses ServerConfig from the environment.
func LoadServerConfigFromEnv() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionIdleTimeout < 0 {
		return ServerConfig{}, fmt.Errorf("FORMCHECK_SESSION_IDLE_TIMEOUT must be non-negative, got %s", cfg.SessionIdleTimeout)
	}
	return cfg, nil
}

// Tuning loads the tuning file named by TuningPath, or returns an empty
// config (all defaults) when no path is set.
func (c ServerConfig) Tuning() (*TuningConfig, error) {
	if c.TuningPath == "" {
		return EmptyTuningConfig(), nil
	}
	return LoadTuningConfig(c.TuningPath)
}
