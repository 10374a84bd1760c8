package mongo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/you-humble/spare-parts/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type Config struct {
	ContainerName string
	ImageName     string
	Database      string
	Username      string
	Password      string
	AuthDB        string
	Logger        Logger

	Host string
	Port string
}

func buildConfig(opts ...Option) *Config {
	cfg := &Config{
		ImageName: "mongo:8.0",
		Database:  "test",
		Username:  "root",
		Password:  "root",
		AuthDB:    "admin",
		Logger:    &logger.NoopLogger{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// URI is only meaningful once the container has started and Host/Port are known.
func (c *Config) URI() string {
	return fmt.Sprintf(
		"mongodb://%s:%s@%s:%s/%s?authSource=%s",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.AuthDB,
	)
}
