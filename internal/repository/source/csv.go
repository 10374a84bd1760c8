package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/you-humble/spare-parts/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvWorkbook exposes a csv file as a single sheet named after the file.
type csvWorkbook struct {
	name string
	rows []model.RawRow
}

func openCSV(path string) (*csvWorkbook, error) {
	const op = "source.openCSV"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrSourceUnreadable, err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	grid, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrSourceUnreadable, err)
	}

	base := filepath.Base(path)
	return &csvWorkbook{
		name: strings.TrimSuffix(base, filepath.Ext(base)),
		rows: rowsFromGrid(grid),
	}, nil
}

func (w *csvWorkbook) SheetNames() []string {
	return []string{w.name}
}

func (w *csvWorkbook) Rows(_ context.Context, sheet string) ([]model.RawRow, error) {
	if sheet != w.name {
		return nil, fmt.Errorf("source.csvWorkbook.Rows: %w: no sheet %q", model.ErrSourceNotFound, sheet)
	}
	return w.rows, nil
}

func (w *csvWorkbook) Close() error { return nil }
