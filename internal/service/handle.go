// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-key/internal/codec"
	"github.com/MKhiriev/go-key/internal/locator"
	"github.com/MKhiriev/go-key/internal/logger"
	"github.com/MKhiriev/go-key/internal/otp"
	"github.com/MKhiriev/go-key/internal/vault"
)

// Handle owns one opened vault together with its key. Every read and
// mutation is serialised by a single mutex, so a Handle can be shared by
// HTTP handlers and the reload job. Mutations are written back to the
// backend before they return.
type Handle struct {
	mu sync.Mutex

	loc    locator.Location
	creds  codec.Credentials
	loader VaultLoader
	writer VaultWriter
	otp    *otp.Engine
	logger *logger.Logger

	vault *vault.Vault
	key   codec.Key

	// gen counts mutations. Reload drops its result when gen moved while
	// the load ran outside the lock.
	gen uint64
}

// Choice is one entry offered by the interactive chooser.
type Choice struct {
	UUID  uuid.UUID
	Group string
	Title string
	User  string
}

// Label is "group/title", or just the title for root entries.
func (c Choice) Label() string {
	if c.Group == "" {
		return c.Title
	}
	return c.Group + "/" + c.Title
}

// OpenHandle loads the vault at loc and wraps it in a Handle.
func OpenHandle(ctx context.Context, loader VaultLoader, writer VaultWriter, engine *otp.Engine,
	loc locator.Location, creds codec.Credentials, log *logger.Logger) (*Handle, error) {
	v, key, err := loader.Load(ctx, loc, creds)
	if err != nil {
		return nil, err
	}

	return &Handle{
		loc:    loc,
		creds:  creds,
		loader: loader,
		writer: writer,
		otp:    engine,
		logger: log,
		vault:  v,
		key:    key,
	}, nil
}

// Location returns where the vault lives.
func (h *Handle) Location() locator.Location {
	return h.loc
}

// View runs fn with exclusive read access to the vault. fn must not keep
// references to the vault or its values after returning.
func (h *Handle) View(fn func(v *vault.Vault) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.vault == nil {
		return ErrHandleClosed
	}
	return fn(h.vault)
}

// Update runs fn on a copy of the vault and writes it back. The copy
// replaces the current vault only once the write succeeds, so a failed
// mutation or write leaves memory as it was.
func (h *Handle) Update(ctx context.Context, fn func(v *vault.Vault) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.vault == nil {
		return ErrHandleClosed
	}

	next := h.vault.Clone()
	if err := fn(next); err != nil {
		next.Close()
		return err
	}
	if err := h.writer.Store(ctx, h.loc, next, h.key); err != nil {
		next.Close()
		return err
	}

	h.vault.Close()
	h.vault = next
	h.gen++
	return nil
}

// Reload replaces the in-memory vault with a fresh copy from the backend.
// The current copy stays when the load fails, when only the local cache
// could be read, or when a mutation landed while the load was running.
func (h *Handle) Reload(ctx context.Context) error {
	h.mu.Lock()
	gen := h.gen
	h.mu.Unlock()

	v, key, err := h.loader.Load(ctx, h.loc, h.creds)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	discard := func() {
		v.Close()
		key.Destroy()
	}

	switch {
	case h.vault == nil:
		discard()
		return ErrHandleClosed
	case v.FromCache:
		discard()
		return fmt.Errorf("%w: keeping current copy of %s", ErrStaleReload, h.loc)
	case h.gen != gen:
		discard()
		h.logger.Debug().Str("location", h.loc.String()).Msg("vault changed during reload, keeping current copy")
		return nil
	}

	h.vault.Close()
	h.key.Destroy()
	h.vault, h.key = v, key

	h.logger.Debug().Str("location", h.loc.String()).Msg("vault reloaded")
	return nil
}

// Close zeroes the vault and the key. It is safe to call more than once.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.vault == nil {
		return
	}
	h.vault.Close()
	h.key.Destroy()
	h.vault, h.key = nil, nil
}

// Tree returns the read-only projection of the vault.
func (h *Handle) Tree() ([]vault.TreeNode, error) {
	var tree []vault.TreeNode
	err := h.View(func(v *vault.Vault) error {
		tree = v.Tree()
		return nil
	})
	return tree, err
}

// Render serialises the tree in format.
func (h *Handle) Render(format string) ([]byte, error) {
	var out []byte
	err := h.View(func(v *vault.Vault) error {
		var err error
		out, err = v.Render(format)
		return err
	})
	return out, err
}

// Entry returns the projection of the root-level entry titled name.
func (h *Handle) Entry(name string) (vault.EntryView, error) {
	var view vault.EntryView
	err := h.View(func(v *vault.Vault) error {
		e, err := v.Entry(name)
		if err != nil {
			return err
		}
		view = vault.ViewEntry(e)
		return nil
	})
	return view, err
}

// GetField returns the plaintext of one field of a root-level entry.
func (h *Handle) GetField(name, field string) (string, error) {
	var value string
	err := h.View(func(v *vault.Vault) error {
		var err error
		value, err = v.GetField(name, field)
		return err
	})
	return value, err
}

// SetField writes a field, creating the entry if needed, and saves.
func (h *Handle) SetField(ctx context.Context, name, field, value string) error {
	return h.Update(ctx, func(v *vault.Vault) error {
		v.Set(name, field, value)
		return nil
	})
}

// Rename retitles a root-level entry and saves.
func (h *Handle) Rename(ctx context.Context, name, newName string) error {
	return h.Update(ctx, func(v *vault.Vault) error {
		return v.Rename(name, newName)
	})
}

// Delete removes a root-level entry and saves.
func (h *Handle) Delete(ctx context.Context, name string) error {
	return h.Update(ctx, func(v *vault.Vault) error {
		return v.Delete(name)
	})
}

// OTP derives the current code from field of the root-level entry titled
// name. field defaults to "otp".
func (h *Handle) OTP(name, field string) (string, error) {
	if field == "" {
		field = vault.FieldOTP
	}

	var code string
	err := h.View(func(v *vault.Vault) error {
		stored, err := v.GetField(name, field)
		if errors.Is(err, vault.ErrNotFound) && v.Get([]string{name}) != nil {
			return fmt.Errorf("entry %q: %w", name, ErrNoOTP)
		}
		if err != nil {
			return err
		}

		code, err = h.otp.DeriveCurrent(stored)
		return err
	})
	return code, err
}

// Choices lists entries of the root group and of its direct subgroups.
func (h *Handle) Choices() ([]Choice, error) {
	var choices []Choice
	err := h.View(func(v *vault.Vault) error {
		v.Walk(func(groups []string, e *vault.Entry) {
			if len(groups) > 1 {
				return
			}
			c := Choice{UUID: e.NodeUUID(), Title: e.Title()}
			if len(groups) == 1 {
				c.Group = groups[0]
			}
			c.User, _ = e.UserName()
			choices = append(choices, c)
		})
		return nil
	})
	return choices, err
}

// FieldByUUID returns the plaintext of field of the entry with uuid id,
// wherever it sits in the tree.
func (h *Handle) FieldByUUID(id uuid.UUID, field string) (string, error) {
	var value string
	err := h.View(func(v *vault.Vault) error {
		n, ok := v.ByUUID(id)
		e, isEntry := n.(*vault.Entry)
		if !ok || !isEntry {
			return fmt.Errorf("entry %s: %w", id, vault.ErrNotFound)
		}

		val, ok := e.Field(field)
		if !ok {
			return fmt.Errorf("field %q of entry %s: %w", field, id, vault.ErrNotFound)
		}
		value = val.Reveal()
		return nil
	})
	return value, err
}
