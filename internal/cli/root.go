// Package cli holds the spares command tree. Running without a subcommand serves the API.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spares",
	Short: "Spare parts inventory service",
	Long: `Serves a read-only spare parts inventory loaded from a spreadsheet workbook
or a MongoDB database, with stock classification, search and aggregate stats.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
