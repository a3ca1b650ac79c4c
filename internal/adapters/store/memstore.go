package store

import (
	"context"
	"sync"
	"time"

	"github.com/ssaa/navigator/internal/domain/model"
	"github.com/ssaa/navigator/pkg/metrics"
)

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithSeedRows preloads a table with rows.
func WithSeedRows(table string, rows []model.Row) MemOption {
	return func(m *MemStore) {
		seeded := make([]model.Row, 0, len(rows))
		for _, r := range rows {
			seeded = append(seeded, cloneRow(r))
		}
		m.tables[table] = seeded
	}
}

// MemStore is an in-memory RowStore for development and tests. Safe for
// concurrent handlers; last write wins, matching the external store.
type MemStore struct {
	mu     sync.RWMutex
	tables map[string][]model.Row
}

// NewMemStore creates a MemStore with the three standard tables empty.
func NewMemStore(opts ...MemOption) *MemStore {
	m := &MemStore{
		tables: map[string][]model.Row{
			model.TableEvaluations: {},
			model.TableSettings:    {},
			model.TableHistory:     {},
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// ListAll implements RowStore.
func (m *MemStore) ListAll(ctx context.Context, table string) ([]model.Row, error) {
	start := time.Now()
	defer observe(table, "list_all", start)

	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.tables[table]
	if !ok {
		return nil, ErrTableNotFound
	}

	out := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, cloneRow(r))
	}
	return out, nil
}

// FindByKey implements RowStore.
func (m *MemStore) FindByKey(ctx context.Context, table, keyColumn, keyValue string) (model.Row, error) {
	start := time.Now()
	defer observe(table, "find_by_key", start)

	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.tables[table]
	if !ok {
		return nil, ErrTableNotFound
	}

	for _, r := range rows {
		if r[keyColumn] == keyValue {
			return cloneRow(r), nil
		}
	}
	return nil, ErrRowNotFound
}

// Update implements RowStore.
func (m *MemStore) Update(ctx context.Context, table, keyColumn, keyValue string, updates map[string]string) error {
	start := time.Now()
	defer observe(table, "update", start)

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[table]
	if !ok {
		return ErrTableNotFound
	}

	for _, r := range rows {
		if r[keyColumn] == keyValue {
			for col, val := range updates {
				r[col] = val
			}
			return nil
		}
	}
	return ErrRowNotFound
}

// AppendRow implements RowStore.
func (m *MemStore) AppendRow(ctx context.Context, table string, values map[string]string) error {
	start := time.Now()
	defer observe(table, "append_row", start)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[table]; !ok {
		return ErrTableNotFound
	}

	m.tables[table] = append(m.tables[table], cloneRow(values))
	return nil
}

func cloneRow(r model.Row) model.Row {
	out := make(model.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func observe(table, op string, start time.Time) {
	metrics.RecordStoreRequestDuration(table, op, float64(time.Since(start).Milliseconds()))
}
