package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all intentd configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Profile   ProfileConfig
	Workflow  WorkflowConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Bind string `env:"INTENTD_BIND" envDefault:"127.0.0.1"`
	Port int    `env:"INTENTD_PORT" envDefault:"8089"`
}

type DatabaseConfig struct {
	Path string `env:"INTENTD_DB"` // empty: resolved via store.DefaultDBPath()
}

// ProfileConfig points at the external profile service. An empty URL means no
// profile lookups, so fit scores are 0 for everyone.
type ProfileConfig struct {
	URL string `env:"INTENTD_PROFILE_URL"`
}

// WorkflowConfig points at the conversion/nurturing orchestrator. An empty
// URL disables threshold triggers.
type WorkflowConfig struct {
	URL string `env:"INTENTD_WORKFLOW_URL"`
}

type SchedulerConfig struct {
	ScoreInterval time.Duration `env:"INTENTD_SCORE_INTERVAL" envDefault:"30s"`
	BatchSize     int           `env:"INTENTD_BATCH_SIZE" envDefault:"10"`
}

// Load reads configuration from the environment on top of defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
