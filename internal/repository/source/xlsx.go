package source

import (
	"context"
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/you-humble/spare-parts/internal/model"
)

type xlsxWorkbook struct {
	file   *excelize.File
	sheets []string
}

func openXLSX(path string) (*xlsxWorkbook, error) {
	const op = "source.openXLSX"

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrSourceUnreadable, err)
	}
	return &xlsxWorkbook{file: f, sheets: f.GetSheetList()}, nil
}

func (w *xlsxWorkbook) SheetNames() []string {
	return slices.Clone(w.sheets)
}

// Rows reads raw cell values, so dates arrive as Excel serial numbers and
// numbers without their display format.
func (w *xlsxWorkbook) Rows(ctx context.Context, sheet string) ([]model.RawRow, error) {
	const op = "source.xlsxWorkbook.Rows"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	grid, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrSourceUnreadable, err)
	}
	return rowsFromGrid(grid), nil
}

func (w *xlsxWorkbook) Close() error {
	return w.file.Close()
}
