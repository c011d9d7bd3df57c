package chronicle

import (
	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Log backends selectable via CHRONICLE_LOG_BACKEND.
const (
	LogBackendMemory = "memory"
	LogBackendRedis  = "redis"
)

// Config holds the engine configuration. Every field can be set via
// environment variables with the listed defaults.
type Config struct {
	// Namespace prefixes every Redis key the engine writes.
	Namespace string `env:"CHRONICLE_NAMESPACE" envDefault:"chronicle"`

	// LogBackend selects the event log implementation, "memory" or "redis".
	LogBackend string `env:"CHRONICLE_LOG_BACKEND" envDefault:"memory"`

	// RedisAddress is the address of the Redis backing the event log. Only
	// read when LogBackend is "redis".
	RedisAddress string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`

	// RedisPassword is the password of the Redis backing the event log.
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`

	// LogLevel is the zerolog level name for engine logging.
	LogLevel string `env:"CHRONICLE_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig loads the engine configuration from environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse engine config")
	}

	if err := cfg.validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Namespace == "" {
		return eris.New("namespace cannot be empty")
	}
	switch cfg.LogBackend {
	case LogBackendMemory, LogBackendRedis:
	default:
		return eris.Errorf("unknown log backend %q", cfg.LogBackend)
	}
	if cfg.LogBackend == LogBackendRedis && cfg.RedisAddress == "" {
		return eris.New("redis address cannot be empty")
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return eris.Wrapf(err, "unknown log level %q", cfg.LogLevel)
	}
	return nil
}
