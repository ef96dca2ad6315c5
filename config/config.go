// Package config reads the service settings from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Logger    Logger    `envPrefix:"LOGGER_"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	RateLimit RateLimit `envPrefix:"RATELIMIT_"`
	Metrics   Metrics   `envPrefix:"METRICS_"`
}

type Logger struct {
	Level string `env:"LEVEL,expand" envDefault:"info"`
}

// ParseLevel returns the logrus level named by Level.
func (l Logger) ParseLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return logrus.InfoLevel, errors.Wrapf(err, "invalid logger level %q", l.Level)
	}
	return level, nil
}

type HTTP struct {
	Address         string        `env:"ADDRESS,expand" envDefault:":3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,expand" envDefault:"10s"`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED,expand" envDefault:"true"`
	TrustHeaders bool          `env:"TRUST_HEADERS,expand" envDefault:"false"`
	Interval     time.Duration `env:"INTERVAL,expand" envDefault:"500ms"`
	Burst        int           `env:"BURST,expand" envDefault:"20"`
	CacheSize    int           `env:"CACHE_SIZE,expand" envDefault:"1024"`
	TTL          time.Duration `env:"TTL,expand" envDefault:"10m"`
}

type Metrics struct {
	Enabled bool `env:"ENABLED,expand" envDefault:"true"`
}

// Parse reads the TASKS_ prefixed environment variables.
func Parse() (*Config, error) {
	return ParseEnvironment(nil)
}

// ParseEnvironment is Parse with an explicit environment, used by tests.
// A nil environment reads the process environment.
func ParseEnvironment(environment map[string]string) (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      "TASKS_",
		Environment: environment,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if conf.RateLimit.Enabled && (conf.RateLimit.Burst <= 0 || conf.RateLimit.CacheSize <= 0) {
		return nil, errors.Errorf("rate limit burst and cache size must be positive, got %d and %d", conf.RateLimit.Burst, conf.RateLimit.CacheSize)
	}

	return &conf, nil
}
