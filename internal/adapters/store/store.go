// Package store defines the row-store contract the service depends on and
// its backends: in-memory, SQLite and Google Sheets.
//
// The contract models the external spreadsheet as ordered tables of
// column-name -> string-value rows. Failures are terminal per request; no
// backend retries.
package store

import (
	"context"

	"github.com/ssaa/navigator/internal/domain/model"
)

// RowStore provides read/write access to the spreadsheet-like store.
type RowStore interface {
	// ListAll returns every row of a table in underlying row order. The
	// order is not semantically meaningful.
	ListAll(ctx context.Context, table string) ([]model.Row, error)

	// FindByKey returns the first row whose keyColumn equals keyValue.
	// Returns ErrRowNotFound if no row matches.
	FindByKey(ctx context.Context, table, keyColumn, keyValue string) (model.Row, error)

	// Update sets only the listed fields on the matched row. Returns
	// ErrRowNotFound if no row matches; it never auto-creates rows. Upsert
	// semantics, where wanted, are layered above this contract.
	Update(ctx context.Context, table, keyColumn, keyValue string, updates map[string]string) error

	// AppendRow appends one row to the end of a table.
	AppendRow(ctx context.Context, table string, values map[string]string) error
}
