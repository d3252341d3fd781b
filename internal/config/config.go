// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "KEY_"

// Defaults applied after all sources are merged.
const (
	DefaultS3Region       = "us-east-1"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultServerAddress  = "127.0.0.1:7878"
	DefaultTokenIssuer    = "go-key"
	DefaultTokenDuration  = time.Hour
	DefaultReloadInterval = time.Minute
)

// StructuredConfig is the top-level configuration of go-key. It is
// populated by merging command-line flags, KEY_-prefixed environment
// variables and an optional JSON file.
type StructuredConfig struct {
	// Vault says where the database lives and how to open it.
	Vault Vault

	// Storage holds backend credentials and the fallback cache location.
	Storage Storage

	// Server holds the local API settings used by `key serve`.
	Server Server `envPrefix:"SERVER_"`

	// LogLevel is a zerolog level name.
	// Env: KEY_LOG
	LogLevel string `env:"LOG"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: KEY_CONFIG
	JSONFilePath string `env:"CONFIG"`
}

// Vault locates the database and carries its credentials.
type Vault struct {
	// DatabaseURL is a file://, s3://, s3+http:// or http(s):// URL.
	// Env: KEY_DATABASE_URL
	DatabaseURL string `env:"DATABASE_URL"`

	// Keyfile is a path to a KeePass key file.
	// Env: KEY_KEYFILE
	Keyfile string `env:"KEYFILE"`

	// Password is the master password. When empty and no keyfile is given
	// the CLI prompts for it.
	// Env: KEY_PASSWORD
	Password string `env:"PASSWORD"`
}

// Storage groups backend settings.
type Storage struct {
	S3   S3   `envPrefix:"S3_"`
	HTTP HTTP `envPrefix:"HTTP_"`

	// CacheDir overrides the default ~/.key/cache.
	// Env: KEY_CACHE_DIR
	CacheDir string `env:"CACHE_DIR"`
}

// S3 holds object store credentials. Without keys requests are anonymous.
type S3 struct {
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Region    string `env:"REGION"`
}

// HTTP configures the web backend.
type HTTP struct {
	Username string        `env:"USERNAME"`
	Password string        `env:"PASSWORD"`
	Timeout  time.Duration `env:"TIMEOUT"`
}

// Server configures the local API.
type Server struct {
	// Address is host:port to listen on.
	// Env: KEY_SERVER_ADDRESS
	Address string `env:"ADDRESS"`

	// TokenSignKey signs and verifies bearer tokens.
	// Env: KEY_SERVER_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// Env: KEY_SERVER_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// Env: KEY_SERVER_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// ReloadInterval is how often the served vault is re-read from its
	// backend. Negative disables reloading.
	// Env: KEY_SERVER_RELOAD_INTERVAL
	ReloadInterval time.Duration `env:"RELOAD_INTERVAL"`
}

// Load merges flags, the environment and the optional JSON file, in that
// order of precedence, applies defaults and validates the result.
// flags may be nil.
func Load(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(flags).
		withEnv().
		withJSON().
		build()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.S3.Region == "" {
		cfg.Storage.S3.Region = DefaultS3Region
	}
	if cfg.Storage.HTTP.Timeout == 0 {
		cfg.Storage.HTTP.Timeout = DefaultHTTPTimeout
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultServerAddress
	}
	if cfg.Server.TokenIssuer == "" {
		cfg.Server.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.Server.TokenDuration == 0 {
		cfg.Server.TokenDuration = DefaultTokenDuration
	}
	if cfg.Server.ReloadInterval == 0 {
		cfg.Server.ReloadInterval = DefaultReloadInterval
	}
}
