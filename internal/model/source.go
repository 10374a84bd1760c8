package model

import "context"

// Workbook is an opened tabular source made of named sub-tables.
type Workbook interface {
	// SheetNames returns sub-table names in source order.
	SheetNames() []string
	Rows(ctx context.Context, sheet string) ([]RawRow, error)
	Close() error
}
