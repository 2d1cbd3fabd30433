package seedscan

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the environment overlay for a search. Unset variables keep
// their defaults.
type Config struct {
	Threads      int           `env:"THREADS"`
	BatchChars   int           `env:"BATCH_CHARS"   envDefault:"3"`
	LogLevel     slog.Level    `env:"LOG_LEVEL"     envDefault:"INFO"`
	MemoryLimit  int64         `env:"MEMORY_LIMIT"`
	RateLimit    float64       `env:"RATE_LIMIT"`
	StageTimeout time.Duration `env:"STAGE_TIMEOUT" envDefault:"1s"`
}

// EnvPrefix prefixes every variable read by LoadConfig.
const EnvPrefix = "SEEDSCAN_"

// LoadConfig reads Config from SEEDSCAN_* environment variables.
func LoadConfig() (Config, error) {
	return loadConfig(nil)
}

func loadConfig(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	}); err != nil {
		return Config{}, fmt.Errorf("seedscan: parse env: %w", err)
	}
	return cfg, nil
}

// Options converts cfg to search options. Place them before explicit
// options so that the latter win.
func (c Config) Options() []Option {
	opts := []Option{
		WithThreads(c.Threads),
		WithLogLevel(c.LogLevel),
		WithMemoryLimit(c.MemoryLimit),
		WithRateLimit(c.RateLimit),
		WithStageTimeout(c.StageTimeout),
	}
	if c.BatchChars > 0 {
		opts = append(opts, WithBatchChars(c.BatchChars))
	}
	return opts
}
