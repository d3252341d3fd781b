// Package config loads, merges and validates go-key configuration.
//
// Sources, highest precedence first:
//  1. Command-line flags
//  2. KEY_-prefixed environment variables
//  3. JSON config file (path from --config or KEY_CONFIG)
//
// The entry point is [Load].
package config
