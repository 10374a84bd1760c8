package cli

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/you-humble/spare-parts/internal/converter"
	"github.com/you-humble/spare-parts/internal/metrics"
	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/internal/repository/source"
	"github.com/you-humble/spare-parts/internal/service/loader"
	"github.com/you-humble/spare-parts/internal/service/query"
	"github.com/you-humble/spare-parts/internal/service/stats"
	"github.com/you-humble/spare-parts/platform/logger"
)

var (
	inspectSheet      string
	inspectSearch     string
	inspectEquipment  string
	inspectStockLevel string
	inspectSortBy     string
	inspectDesc       bool
	inspectLimit      int
	inspectStableIDs  bool
	inspectStats      bool
	inspectJSON       bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Load a workbook and print its parts",
	Long: `Loads an .xlsx or .csv workbook the same way the server does and prints
the normalized parts. Filters combine like the HTTP query parameters.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "Inventory", "preferred sheet name")
	inspectCmd.Flags().StringVarP(&inspectSearch, "search", "q", "", "search part name, code and supplier")
	inspectCmd.Flags().StringVar(&inspectEquipment, "equipment", "", "filter by equipment category")
	inspectCmd.Flags().StringVar(&inspectStockLevel, "stock-level", "", "filter by stock level")
	inspectCmd.Flags().StringVar(&inspectSortBy, "sort", "", "sort field")
	inspectCmd.Flags().BoolVar(&inspectDesc, "desc", false, "sort descending")
	inspectCmd.Flags().IntVarP(&inspectLimit, "limit", "n", 20, "maximum number of parts")
	inspectCmd.Flags().BoolVar(&inspectStableIDs, "stable-ids", false, "derive ids from row content instead of randomly")
	inspectCmd.Flags().BoolVar(&inspectStats, "stats", false, "print aggregate stats instead of parts")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := logger.Init("warn", false); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	var ids converter.IDGenerator = converter.RandomIDs{}
	if inspectStableIDs {
		ids = converter.StableIDs{}
	}

	l := loader.NewLoader(
		source.NewFileOpener(args[0]),
		converter.NewNormalizer(ids),
		metrics.NewRecorder(args[0]),
		inspectSheet,
	)
	snap := l.Load(ctx)

	if inspectStats {
		return outputStats(cmd, stats.Summarize(snap))
	}

	c := model.Criteria{
		Equipment:   inspectEquipment,
		StockLevel:  model.StockLevel(strings.ToUpper(inspectStockLevel)),
		Search:      inspectSearch,
		SearchScope: model.SearchScopeAll,
		SortBy:      model.SortField(inspectSortBy),
		Limit:       inspectLimit,
	}
	if inspectDesc {
		c.SortOrder = model.SortDesc
	}
	page := query.Run(snap, c)

	if inspectJSON {
		return outputPageJSON(cmd, page)
	}
	return outputPageTable(cmd, page)
}

func outputPageJSON(cmd *cobra.Command, page model.Page) error {
	rows := make([]model.RawRow, 0, len(page.Records))
	for _, r := range page.Records {
		rows = append(rows, converter.RowFromRecord(r))
	}

	data, err := json.MarshalIndent(map[string]any{
		"data":  rows,
		"total": page.Total,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal parts: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputPageTable(cmd *cobra.Command, page model.Page) error {
	if len(page.Records) == 0 {
		cmd.Println("No parts found.")
		return nil
	}

	cmd.Printf("%-16s %-14s %-32s %7s %7s %-13s %12s\n",
		"ID", "EQUIPMENT", "PART", "STOCK", "MIN", "LEVEL", "VALUE")
	for _, r := range page.Records {
		cmd.Printf("%-16s %-14s %-32s %7d %7d %-13s %12.2f\n",
			truncate(r.ID, 16),
			truncate(r.EquipmentCategory, 14),
			truncate(r.PartName, 32),
			r.CurrentStock,
			r.MinRequired,
			r.StockLevel,
			r.TotalValue,
		)
	}
	cmd.Printf("\nShowing %d of %d parts\n", len(page.Records), page.Total)
	return nil
}

func outputStats(cmd *cobra.Command, st model.Stats) error {
	if inspectJSON {
		s, err := converter.StatsToStruct(st)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(s.AsMap(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Parts:        %d\n", st.TotalParts)
	cmd.Printf("Total value:  %.2f\n", st.TotalValue)
	cmd.Printf("In process:   %d\n", st.InProcess)
	cmd.Printf("Out of stock: %d\n", st.OutOfStock)
	cmd.Printf("Low stock:    %d\n", st.LowStock)
	cmd.Println()
	for _, level := range model.StockLevels {
		cmd.Printf("  %-13s %d\n", level, st.StockLevelBreakdown[level])
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
