package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"github.com/ssaa/navigator/internal/domain/model"
)

const (
	sheetsBaseURL     = "https://sheets.googleapis.com/v4/spreadsheets"
	sheetsScope       = "https://www.googleapis.com/auth/spreadsheets"
	sheetsReadRange   = "A1:ZZ"
	sheetsHTTPTimeout = 20 * time.Second
)

// SheetsOption applies a configuration option to the SheetsStore.
type SheetsOption func(*SheetsStore)

// WithBaseURL overrides the Sheets API endpoint. Used by tests.
func WithBaseURL(base string) SheetsOption {
	return func(s *SheetsStore) {
		if base != "" {
			s.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient overrides the authenticated HTTP client. Used by tests.
func WithHTTPClient(client *http.Client) SheetsOption {
	return func(s *SheetsStore) {
		if client != nil {
			s.client = client
		}
	}
}

// SheetsStore is a RowStore over the Google Sheets v4 values API. Each
// logical table is one sheet whose first row is the column header.
type SheetsStore struct {
	sheetID string
	baseURL string
	client  *http.Client
}

// NewSheetsStore builds a SheetsStore authenticated as a service account.
// The private key must already be sanitized by config loading.
func NewSheetsStore(ctx context.Context, sheetID, email, privateKey string, opts ...SheetsOption) *SheetsStore {
	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	s := &SheetsStore{
		sheetID: sheetID,
		baseURL: sheetsBaseURL,
		client:  conf.Client(ctx),
	}
	s.client.Timeout = sheetsHTTPTimeout

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// valueRange mirrors the Sheets API values payload.
type valueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values"`
}

// sheetTable is one fetched sheet: header row plus data rows.
type sheetTable struct {
	header []string
	rows   []model.Row
}

// ListAll implements RowStore.
func (s *SheetsStore) ListAll(ctx context.Context, table string) ([]model.Row, error) {
	start := time.Now()
	defer observe(table, "list_all", start)

	t, err := s.fetchTable(ctx, table)
	if err != nil {
		return nil, err
	}
	return t.rows, nil
}

// FindByKey implements RowStore.
func (s *SheetsStore) FindByKey(ctx context.Context, table, keyColumn, keyValue string) (model.Row, error) {
	start := time.Now()
	defer observe(table, "find_by_key", start)

	t, err := s.fetchTable(ctx, table)
	if err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		if row[keyColumn] == keyValue {
			return row, nil
		}
	}
	return nil, ErrRowNotFound
}

// Update implements RowStore. The whole matched row is rewritten in header
// order; columns absent from the header are dropped, matching spreadsheet
// semantics where the header defines the schema.
func (s *SheetsStore) Update(ctx context.Context, table, keyColumn, keyValue string, updates map[string]string) error {
	start := time.Now()
	defer observe(table, "update", start)

	t, err := s.fetchTable(ctx, table)
	if err != nil {
		return err
	}

	rowIdx := -1
	for i, row := range t.rows {
		if row[keyColumn] == keyValue {
			rowIdx = i
			break
		}
	}
	if rowIdx == -1 {
		return ErrRowNotFound
	}

	merged := cloneRow(t.rows[rowIdx])
	for col, val := range updates {
		merged[col] = val
	}

	cells := make([]any, len(t.header))
	for i, col := range t.header {
		cells[i] = merged[col]
	}

	// Header occupies row 1; data row i sits at sheet row i+2.
	sheetRow := rowIdx + 2 //nolint:mnd
	target := fmt.Sprintf("%s!A%d:%s%d", table, sheetRow, columnLetter(len(t.header)), sheetRow)
	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW",
		s.baseURL, s.sheetID, url.PathEscape(target))

	return s.write(ctx, http.MethodPut, endpoint, valueRange{Values: [][]any{cells}})
}

// AppendRow implements RowStore.
func (s *SheetsStore) AppendRow(ctx context.Context, table string, values map[string]string) error {
	start := time.Now()
	defer observe(table, "append_row", start)

	t, err := s.fetchTable(ctx, table)
	if err != nil {
		return err
	}

	cells := make([]any, len(t.header))
	for i, col := range t.header {
		cells[i] = values[col]
	}

	target := fmt.Sprintf("%s!%s", table, sheetsReadRange)
	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW&insertDataOption=INSERT_ROWS",
		s.baseURL, s.sheetID, url.PathEscape(target))

	return s.write(ctx, http.MethodPost, endpoint, valueRange{Values: [][]any{cells}})
}

// fetchTable reads a whole sheet and splits it into header and rows.
func (s *SheetsStore) fetchTable(ctx context.Context, table string) (*sheetTable, error) {
	target := fmt.Sprintf("%s!%s", table, sheetsReadRange)
	endpoint := fmt.Sprintf("%s/%s/values/%s", s.baseURL, s.sheetID, url.PathEscape(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var vr valueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	t := &sheetTable{}
	if len(vr.Values) == 0 {
		return t, nil
	}

	for _, cell := range vr.Values[0] {
		t.header = append(t.header, cellString(cell))
	}

	for _, raw := range vr.Values[1:] {
		row := make(model.Row, len(t.header))
		for i, col := range t.header {
			if i < len(raw) {
				row[col] = cellString(raw[i])
			} else {
				row[col] = ""
			}
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}

func (s *SheetsStore) write(ctx context.Context, method, endpoint string, body valueRange) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// checkStatus translates Sheets API failures into store error kinds. A range
// the API cannot parse means the sheet (table) does not exist.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:mnd
	if resp.StatusCode == http.StatusNotFound ||
		(resp.StatusCode == http.StatusBadRequest && strings.Contains(string(body), "Unable to parse range")) {
		return fmt.Errorf("%w: %s", ErrTableNotFound, resp.Status)
	}
	return fmt.Errorf("%w: %s: %s", ErrStoreUnavailable, resp.Status, strings.TrimSpace(string(body)))
}

func cellString(cell any) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}

// columnLetter converts a 1-based column count to its A1-notation letter.
func columnLetter(n int) string {
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	if letters == "" {
		return "A"
	}
	return letters
}
