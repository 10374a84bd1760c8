package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/you-humble/spare-parts/internal/cli"
)

func main() {
	ctx, quit := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM,
	)
	defer quit()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
