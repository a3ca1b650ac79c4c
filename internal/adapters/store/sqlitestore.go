package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/ssaa/navigator/internal/domain/model"
)

// sqliteSchema keeps rows schemaless: one JSON column map per row, ordered by
// rowid within a logical table. Mirrors the spreadsheet's "ordered rows of
// named cells" shape.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS store_tables (
	name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS store_rows (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	table_name TEXT NOT NULL,
	data       TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_store_rows_table ON store_rows(table_name);
`

// SQLiteStore is a file-backed RowStore. It lets the service run and be
// tested without spreadsheet credentials.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and initializes) a SQLite-backed row store at path. The
// three standard tables are registered on first open.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	for _, table := range []string{model.TableEvaluations, model.TableSettings, model.TableHistory} {
		if _, err := db.Exec(`INSERT OR IGNORE INTO store_tables (name) VALUES (?)`, table); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) tableExists(ctx context.Context, table string) error {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM store_tables WHERE name = ?`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTableNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// ListAll implements RowStore.
func (s *SQLiteStore) ListAll(ctx context.Context, table string) ([]model.Row, error) {
	start := time.Now()
	defer observe(table, "list_all", start)

	if err := s.tableExists(ctx, table); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM store_rows WHERE table_name = ? ORDER BY id`, table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		row, err := decodeRow(data)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return out, nil
}

// FindByKey implements RowStore.
func (s *SQLiteStore) FindByKey(ctx context.Context, table, keyColumn, keyValue string) (model.Row, error) {
	start := time.Now()
	defer observe(table, "find_by_key", start)

	if err := s.tableExists(ctx, table); err != nil {
		return nil, err
	}

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM store_rows
		 WHERE table_name = ? AND json_extract(data, '$.' || ?) = ?
		 ORDER BY id LIMIT 1`,
		table, keyColumn, keyValue).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return decodeRow(data)
}

// Update implements RowStore.
func (s *SQLiteStore) Update(ctx context.Context, table, keyColumn, keyValue string, updates map[string]string) error {
	start := time.Now()
	defer observe(table, "update", start)

	if err := s.tableExists(ctx, table); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var id int64
	var data string
	err = tx.QueryRowContext(ctx,
		`SELECT id, data FROM store_rows
		 WHERE table_name = ? AND json_extract(data, '$.' || ?) = ?
		 ORDER BY id LIMIT 1`,
		table, keyColumn, keyValue).Scan(&id, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRowNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	row, err := decodeRow(data)
	if err != nil {
		return err
	}
	for col, val := range updates {
		row[col] = val
	}

	encoded, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE store_rows SET data = ? WHERE id = ?`, string(encoded), id); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// AppendRow implements RowStore.
func (s *SQLiteStore) AppendRow(ctx context.Context, table string, values map[string]string) error {
	start := time.Now()
	defer observe(table, "append_row", start)

	if err := s.tableExists(ctx, table); err != nil {
		return err
	}

	encoded, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO store_rows (table_name, data) VALUES (?, ?)`, table, string(encoded)); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteAll removes every row in a logical table. The table itself stays
// registered. Used by the seed tool; the service never deletes rows.
func (s *SQLiteStore) DeleteAll(ctx context.Context, table string) error {
	start := time.Now()
	defer observe(table, "delete_all", start)

	if err := s.tableExists(ctx, table); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM store_rows WHERE table_name = ?`, table); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func decodeRow(data string) (model.Row, error) {
	var row model.Row
	if err := json.Unmarshal([]byte(data), &row); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return row, nil
}
