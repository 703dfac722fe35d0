package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidVaultConfigs indicates a missing vault directory.
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	// ErrInvalidDirectoryConfigs indicates invalid account directory
	// settings (for example, empty remote DSN or an in-memory local path).
	ErrInvalidDirectoryConfigs = errors.New("invalid account directory configuration")
	// ErrInvalidBlobConfigs indicates invalid blob storage settings
	// (for example, missing bucket or backend credentials).
	ErrInvalidBlobConfigs = errors.New("invalid blob storage configuration")
	// ErrInvalidServerConfigs indicates invalid relay server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates a missing API key signing secret.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
