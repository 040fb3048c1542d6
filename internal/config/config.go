package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port string `env:"PORT"        envDefault:"8080"`
	Env  string `env:"ENVIRONMENT" envDefault:"development"`

	RedisAddr string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB"       envDefault:"0"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"  envDefault:"24h"`

	LogLvl string `env:"LOG_LVL" envDefault:"info"`

	// Delay before a pending withdrawal settles. Zero settles inline, which
	// is what the tests use.
	WithdrawalDelay time.Duration `env:"WITHDRAWAL_DELAY" envDefault:"3500ms"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
