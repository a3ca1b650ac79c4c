package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if NAVIGATOR_CONFIG is set
//  3. env (prefix NAVIGATOR_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("NAVIGATOR_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	// Environment variables: NAVIGATOR_ADDR, NAVIGATOR_STORE_BACKEND, ...
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("NAVIGATOR_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "navigator_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// Deployment platforms mangle multi-line secrets; repair the PEM key
	// before anything downstream sees it.
	cfg.ServiceAccountKey = SanitizePrivateKey(cfg.ServiceAccountKey)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SanitizePrivateKey normalizes a service-account private key pasted through
// env vars: literal \n sequences become newlines, stray double quotes are
// dropped, surrounding whitespace is trimmed.
func SanitizePrivateKey(key string) string {
	key = strings.ReplaceAll(key, `\n`, "\n")
	key = strings.ReplaceAll(key, `"`, "")
	return strings.TrimSpace(key)
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StoreBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path must not be empty", ErrInvalidConfig)
		}
	case BackendSheets:
		if c.SheetID == "" || c.ServiceAccountEmail == "" || c.ServiceAccountKey == "" {
			return fmt.Errorf("%w: sheet_id, service_account_email and service_account_key are required for the sheets backend", ErrConfigurationMissing)
		}
	default:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, c.StoreBackend)
	}
	if c.QuadrantThreshold < 0 || c.QuadrantThreshold > 100 {
		return fmt.Errorf("%w: quadrant_threshold must be within [0,100]", ErrInvalidConfig)
	}
	if c.NoiseFloor < 0 {
		return fmt.Errorf("%w: noise_floor must not be negative", ErrInvalidConfig)
	}
	return nil
}
