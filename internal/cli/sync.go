package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/you-humble/spare-parts/internal/app"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the remote workbook once and reload it",
	Long: `Fetches the workbook from SYNC_URL into SOURCE_PATH and loads it.
Without SYNC_URL only the local file is reloaded.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	res, err := app.SyncOnce(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if res.Downloaded {
		cmd.Printf("Downloaded %d bytes\n", res.Bytes)
	}
	cmd.Printf("Loaded %d parts from %s\n", res.Snapshot.Len(), res.Snapshot.Source)
	return nil
}
