package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type syncEnv struct {
	URL        string        `env:"SYNC_URL"`
	Interval   time.Duration `env:"SYNC_INTERVAL" envDefault:"0s"`
	Timeout    time.Duration `env:"SYNC_TIMEOUT" envDefault:"30s"`
	Retries    int           `env:"SYNC_RETRIES" envDefault:"3"`
	RetryDelay time.Duration `env:"SYNC_RETRY_DELAY" envDefault:"5s"`
	RateLimit  int           `env:"SYNC_RATE_LIMIT" envDefault:"6"`
}

type syncer struct {
	raw syncEnv
}

func NewSyncConfig() (*syncer, error) {
	var raw syncEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &syncer{raw: raw}, nil
}

func (cfg *syncer) URL() string               { return cfg.raw.URL }
func (cfg *syncer) Interval() time.Duration   { return cfg.raw.Interval }
func (cfg *syncer) Timeout() time.Duration    { return cfg.raw.Timeout }
func (cfg *syncer) RetryDelay() time.Duration { return cfg.raw.RetryDelay }

func (cfg *syncer) Retries() int {
	if cfg.raw.Retries < 1 {
		return 1
	}
	return cfg.raw.Retries
}

func (cfg *syncer) RatePerMinute() int {
	if cfg.raw.RateLimit < 1 {
		return 1
	}
	return cfg.raw.RateLimit
}
