// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package kdbx

import (
	"github.com/google/uuid"
	"github.com/tobischo/gokeepasslib/v3"

	"github.com/MKhiriev/go-key/internal/vault"
)

// origin is the codec state carried on vault.Vault.Origin.
type origin struct {
	db *gokeepasslib.Database

	// synthetic is set when the database had several top-level groups and
	// the vault root was made up to hold them.
	synthetic bool
}

// rootGroup converts the database tree and drops the plaintext of current
// values from the database copy.
func (o *origin) rootGroup() *vault.Group {
	groups := o.db.Content.Root.Groups
	defer o.clearCurrentValues()

	if len(groups) == 1 {
		return toGroup(&groups[0])
	}

	o.synthetic = true
	root := vault.NewGroup(uuid.New(), "Root")
	for i := range groups {
		root.Add(toGroup(&groups[i]))
	}
	return root
}

func toGroup(g *gokeepasslib.Group) *vault.Group {
	out := vault.NewGroup(toUUID(g.UUID), g.Name)
	for i := range g.Entries {
		out.Add(toEntry(&g.Entries[i]))
	}
	for i := range g.Groups {
		out.Add(toGroup(&g.Groups[i]))
	}
	return out
}

func toEntry(e *gokeepasslib.Entry) *vault.Entry {
	out := vault.NewEntry(toUUID(e.UUID), e.GetTitle())
	// Title is set again from Values so its protection flag survives.
	for _, vd := range e.Values {
		if vd.Value.Protected.Bool {
			out.SetField(vd.Key, vault.NewProtectedBytes([]byte(vd.Value.Content)))
		} else {
			out.SetField(vd.Key, vault.Unprotected(vd.Value.Content))
		}
	}
	return out
}

// clearCurrentValues drops value contents from the database tree. Encode
// rebuilds them from the vault, so the copy only has to keep what the model
// does not represent.
func (o *origin) clearCurrentValues() {
	for i := range o.db.Content.Root.Groups {
		clearGroup(&o.db.Content.Root.Groups[i])
	}
}

func clearGroup(g *gokeepasslib.Group) {
	for i := range g.Entries {
		for j := range g.Entries[i].Values {
			g.Entries[i].Values[j].Value.Content = ""
		}
	}
	for i := range g.Groups {
		clearGroup(&g.Groups[i])
	}
}

// rebuild produces the top-level group list for root.
func (o *origin) rebuild(root *vault.Group) []gokeepasslib.Group {
	entries := make(map[uuid.UUID]gokeepasslib.Entry)
	groups := make(map[uuid.UUID]gokeepasslib.Group)
	for i := range o.db.Content.Root.Groups {
		indexGroup(&o.db.Content.Root.Groups[i], entries, groups)
	}

	if o.synthetic && !hasEntries(root) {
		var out []gokeepasslib.Group
		for _, c := range root.Children() {
			if g, ok := c.(*vault.Group); ok {
				out = append(out, fromGroup(g, entries, groups))
			}
		}
		return out
	}
	return []gokeepasslib.Group{fromGroup(root, entries, groups)}
}

func hasEntries(g *vault.Group) bool {
	for _, c := range g.Children() {
		if _, ok := c.(*vault.Entry); ok {
			return true
		}
	}
	return false
}

func indexGroup(g *gokeepasslib.Group, entries map[uuid.UUID]gokeepasslib.Entry, groups map[uuid.UUID]gokeepasslib.Group) {
	groups[toUUID(g.UUID)] = *g
	for _, e := range g.Entries {
		entries[toUUID(e.UUID)] = e
	}
	for i := range g.Groups {
		indexGroup(&g.Groups[i], entries, groups)
	}
}

func fromGroup(g *vault.Group, entries map[uuid.UUID]gokeepasslib.Entry, groups map[uuid.UUID]gokeepasslib.Group) gokeepasslib.Group {
	out, ok := groups[g.NodeUUID()]
	if !ok {
		out = gokeepasslib.NewGroup()
		out.UUID = fromUUID(g.NodeUUID())
	}
	out.Name = g.Name
	out.Entries = nil
	out.Groups = nil

	for _, c := range g.Children() {
		switch n := c.(type) {
		case *vault.Entry:
			out.Entries = append(out.Entries, fromEntry(n, entries))
		case *vault.Group:
			out.Groups = append(out.Groups, fromGroup(n, entries, groups))
		}
	}
	return out
}

func fromEntry(e *vault.Entry, entries map[uuid.UUID]gokeepasslib.Entry) gokeepasslib.Entry {
	out, ok := entries[e.NodeUUID()]
	if !ok {
		out = gokeepasslib.NewEntry()
		out.UUID = fromUUID(e.NodeUUID())
	}

	fields := e.Fields()
	out.Values = make([]gokeepasslib.ValueData, 0, len(fields))
	for _, f := range fields {
		out.Values = append(out.Values, gokeepasslib.ValueData{
			Key: f.Name,
			Value: gokeepasslib.V{
				Content:   f.Value.Reveal(),
				Protected: boolWrapper(f.Value.Protected()),
			},
		})
	}
	return out
}
