// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"fmt"
	"slices"
)

// Get resolves path against the root group.
//
// The single path segment is compared, case-sensitively, with the title of
// each root-level entry and the name of each root-level group; the first
// match wins. An empty path, an unmatched name, or a path of more than one
// segment yields nil.
func (v *Vault) Get(path []string) Node {
	if len(path) != 1 {
		return nil
	}

	name := path[0]
	for _, c := range v.root.children {
		switch n := c.(type) {
		case *Entry:
			if n.Title() == name {
				return n
			}
		case *Group:
			if n.Name == name {
				return n
			}
		}
	}
	return nil
}

// Set writes field of the root-level entry titled name, creating the entry
// at the end of the root group if it does not exist. The value is always
// stored protected.
func (v *Vault) Set(name, field, value string) {
	e, _ := v.rootEntry(name)
	if e == nil {
		e = NewEntry(v.freshUUID(), name)
		v.root.children = append(v.root.children, e)
		v.index[e.uuid] = e
	}
	e.SetField(field, NewProtected(value))
}

// Rename replaces the title of the root-level entry titled name, keeping
// its protection flag. It does not check whether newName is already taken.
func (v *Vault) Rename(name, newName string) error {
	e, _ := v.rootEntry(name)
	if e == nil {
		return fmt.Errorf("entry %q: %w", name, ErrNotFound)
	}

	var title Value = Unprotected(newName)
	if old, ok := e.Field(FieldTitle); ok && old.Protected() {
		title = NewProtected(newName)
	}
	e.SetField(FieldTitle, title)
	return nil
}

// Delete removes the root-level entry titled name and zeroes its values.
func (v *Vault) Delete(name string) error {
	e, i := v.rootEntry(name)
	if e == nil {
		return fmt.Errorf("entry %q: %w", name, ErrNotFound)
	}

	v.root.children = slices.Delete(v.root.children, i, i+1)
	delete(v.index, e.uuid)
	e.release()
	return nil
}

// GetField returns the plaintext of field in the root-level entry titled name.
func (v *Vault) GetField(name, field string) (string, error) {
	e, _ := v.rootEntry(name)
	if e == nil {
		return "", fmt.Errorf("entry %q: %w", name, ErrNotFound)
	}

	val, ok := e.Field(field)
	if !ok {
		return "", fmt.Errorf("field %q of entry %q: %w", field, name, ErrNotFound)
	}
	return val.Reveal(), nil
}

// Entry returns the root-level entry titled name.
func (v *Vault) Entry(name string) (*Entry, error) {
	e, _ := v.rootEntry(name)
	if e == nil {
		return nil, fmt.Errorf("entry %q: %w", name, ErrNotFound)
	}
	return e, nil
}

func (v *Vault) rootEntry(name string) (*Entry, int) {
	for i, c := range v.root.children {
		if e, ok := c.(*Entry); ok && e.Title() == name {
			return e, i
		}
	}
	return nil, -1
}
