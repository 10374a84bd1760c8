package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type grpcServerEnv struct {
	Enabled bool   `env:"GRPC_ENABLED" envDefault:"false"`
	Host    string `env:"GRPC_HOST" envDefault:"0.0.0.0"`
	Port    int    `env:"GRPC_PORT" envDefault:"50051"`
}

type grpcServer struct {
	raw grpcServerEnv
}

func NewGRPCServerConfig() (*grpcServer, error) {
	var raw grpcServerEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &grpcServer{raw: raw}, nil
}

func (cfg *grpcServer) Enabled() bool { return cfg.raw.Enabled }
func (cfg *grpcServer) Address() string {
	return fmt.Sprintf("%s:%d", cfg.raw.Host, cfg.raw.Port)
}
