// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks invariants that hold for every command.
func (cfg *StructuredConfig) validate() error {
	s3 := cfg.Storage.S3
	if (s3.AccessKey == "") != (s3.SecretKey == "") {
		return fmt.Errorf("%w: s3 access key and secret key must be set together", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.HTTP.Timeout < 0 {
		return fmt.Errorf("%w: negative http timeout", ErrInvalidStorageConfigs)
	}

	if cfg.Server.TokenDuration < 0 {
		return fmt.Errorf("%w: negative token duration", ErrInvalidServerConfigs)
	}

	return nil
}

// RequireVault fails when no vault URL is configured.
func (cfg *StructuredConfig) RequireVault() error {
	if cfg.Vault.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

// RequireServer checks the settings `key serve` cannot run without.
func (cfg *StructuredConfig) RequireServer() error {
	if err := cfg.RequireVault(); err != nil {
		return err
	}
	if cfg.Server.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidServerConfigs)
	}
	return nil
}
