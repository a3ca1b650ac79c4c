// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Store backend names accepted in StoreBackend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend selects the row store: memory, sqlite or sheets.
	StoreBackend string `koanf:"store_backend"`

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `koanf:"sqlite_path"`

	// SheetID identifies the spreadsheet used by the sheets backend.
	SheetID string `koanf:"sheet_id"`

	// ServiceAccountEmail authenticates the sheets backend.
	ServiceAccountEmail string `koanf:"service_account_email"`

	// ServiceAccountKey is the PEM private key for the service account.
	// Loading sanitizes escaped newlines and stray quotes; see Load.
	ServiceAccountKey string `koanf:"service_account_key"`

	// QuadrantThreshold is the axis cutoff for quadrant classification.
	QuadrantThreshold float64 `koanf:"quadrant_threshold"`

	// NoiseFloor is the per-axis movement below which no trail is drawn.
	NoiseFloor float64 `koanf:"noise_floor"`

	// DefaultAssetSharePct is the asset share reported per project when the
	// portfolio has zero total work hours.
	DefaultAssetSharePct float64 `koanf:"default_asset_share_pct"`

	// SeedSampleData preloads the memory backend with sample projects.
	SeedSampleData bool `koanf:"seed_sample_data"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":8090",
		StoreBackend:         BackendMemory,
		SQLitePath:           "navigator.db",
		QuadrantThreshold:    60,
		NoiseFloor:           2,
		DefaultAssetSharePct: 20,
		SeedSampleData:       false,
	}
}
