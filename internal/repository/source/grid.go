package source

import (
	"strings"

	"github.com/you-humble/spare-parts/internal/model"
)

// rowsFromGrid treats the first row as the header. Columns with a blank header and
// rows with no non-blank cell are skipped; blank cells are left out of the row.
func rowsFromGrid(grid [][]string) []model.RawRow {
	if len(grid) == 0 {
		return []model.RawRow{}
	}

	header := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]model.RawRow, 0, len(grid)-1)
	for _, line := range grid[1:] {
		row := make(model.RawRow, len(header))
		for i, cell := range line {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if _, dup := row[header[i]]; dup {
				continue
			}
			row[header[i]] = cell
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
