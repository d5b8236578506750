// Package config loads the service configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Optimizer struct {
		// ExplorationDepth is the default exploitation/exploration trade-off
		// applied to sessions that do not specify one.
		ExplorationDepth int `env:"OPT_EXPLORATION_DEPTH" envDefault:"5"`
		// MaxSessions caps the number of concurrently open sessions.
		MaxSessions int `env:"OPT_MAX_SESSIONS" envDefault:"256"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Developers usually want debug output without setting LOG_LEVEL.
	if _, set := os.LookupEnv("LOG_LEVEL"); !set && cfg.Environment == "development" {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
