package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and the
// Require helpers.
var (
	// ErrInvalidStorageConfigs indicates inconsistent backend settings
	// (for example, an S3 access key without a secret key).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidServerConfigs indicates unusable local API settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")

	// ErrMissingDatabaseURL is returned when a command needs a vault but
	// none was configured.
	ErrMissingDatabaseURL = errors.New("no vault url configured (set --database or KEY_DATABASE_URL)")
)
