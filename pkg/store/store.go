package store

import (
	"context"

	model "github.com/hr-tools/punchbook/pkg/models/store"
)

// Store is the persistence contract the attendance engine writes
// through. Implementations address cells with 1-based row/column
// indices and report every failure as *PersistenceError.
type Store interface {
	// FindSheet reports whether a sheet with the given name exists.
	FindSheet(ctx context.Context, name string) (bool, error)
	// CreateSheet creates a sheet and applies its full header layout
	// atomically. It fails if the sheet already exists.
	CreateSheet(ctx context.Context, name string, layout model.SheetLayout) error
	// ReadCell returns the cell's display value, "" when empty.
	ReadCell(ctx context.Context, sheet string, row, col int) (string, error)
	WriteCell(ctx context.Context, sheet string, row, col int, value string) error
	// AppendRow reserves and returns the next free 1-based row index.
	AppendRow(ctx context.Context, sheet string) (int, error)
	// ColumnValues returns the column's values in row order up to the
	// last non-empty cell, with "" for gaps.
	ColumnValues(ctx context.Context, sheet string, col int) ([]string, error)
	SetFormula(ctx context.Context, sheet string, row, col int, expr string) error
	// SetStyle applies presentation metadata; backends without styling
	// treat it as a no-op.
	SetStyle(ctx context.Context, sheet string, rng model.StyledRange) error
	Policy() model.Policy
}
