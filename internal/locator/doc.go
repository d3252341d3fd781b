// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package locator turns a vault URL into a typed [Location].
//
// Supported forms:
//
//	file:///home/me/vault.kdbx
//	s3://minio.example.com:9000/bucket/path/to/vault.kdbx
//	s3+http://localhost:9000/bucket/vault.kdbx
//	https://dav.example.com/remote.php/vault.kdbx
//
// The scheme is inspected exactly once, inside [Parse]. Everything downstream
// dispatches on the concrete Location type.
package locator
