package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig        = errors.New("invalid config")
	ErrConfigurationMissing = errors.New("required store credentials absent")
)
