package cli

import (
	"github.com/spf13/cobra"

	"github.com/you-humble/spare-parts/internal/app"
	"github.com/you-humble/spare-parts/platform/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inventory over HTTP and gRPC",
	Long: `Loads the configured source and serves it until interrupted.
Configuration is read from the environment (and .env when APP_ENV=local).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := app.New(ctx)
	if err != nil {
		logger.Error(ctx,
			"❌ Failed to create an application",
			logger.ErrorF(err),
		)
		return err
	}

	if err := a.Run(ctx); err != nil {
		logger.Error(ctx, "❌ Inventory server error", logger.ErrorF(err))
		return err
	}
	return nil
}
