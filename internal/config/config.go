package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/you-humble/spare-parts/internal/config/env"
)

var cfg *config

type config struct {
	Server Server
	GRPC   GRPC
	Logger Logger
	Source Source
	Sync   Sync
	Kafka  Kafka
	// nil unless the source kind is mongo
	Mongo Database
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	serverCfg, err := envconfig.NewHTTPServerConfig()
	if err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}

	grpcCfg, err := envconfig.NewGRPCServerConfig()
	if err != nil {
		return fmt.Errorf("%s GRPC: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	sourceCfg, err := envconfig.NewSourceConfig()
	if err != nil {
		return fmt.Errorf("%s Source: %w", op, err)
	}

	syncCfg, err := envconfig.NewSyncConfig()
	if err != nil {
		return fmt.Errorf("%s Sync: %w", op, err)
	}

	kafkaCfg, err := envconfig.NewKafkaConfig()
	if err != nil {
		return fmt.Errorf("%s Kafka: %w", op, err)
	}

	c := &config{
		Server: serverCfg,
		GRPC:   grpcCfg,
		Logger: loggerCfg,
		Source: sourceCfg,
		Sync:   syncCfg,
		Kafka:  kafkaCfg,
	}

	if sourceCfg.Kind() == envconfig.SourceKindMongo {
		mongoCfg, err := envconfig.NewMongoConfig()
		if err != nil {
			return fmt.Errorf("%s Mongo: %w", op, err)
		}
		c.Mongo = mongoCfg
	}

	cfg = c
	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
