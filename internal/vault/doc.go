// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault is the in-memory model of a decoded credential database.
//
// A [Vault] owns a single root [Group]. Groups own an ordered list of child
// nodes, each either an [*Entry] or a [*Group]. Entries hold named field
// values; every entry carries a "Title" field that is its display identity.
//
// Name-based operations ([Vault.Get], [Vault.Set], [Vault.Rename],
// [Vault.Delete], [Vault.GetField]) only address the direct children of the
// root group. Entries inside sub-groups are reachable through [Vault.Tree],
// [Vault.Walk] and [Vault.ByUUID].
//
// Vault is not safe for concurrent use. Share it through service.Handle.
package vault
