// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"bytes"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-key/internal/secret"
)

// Well-known field names.
const (
	FieldTitle    = "Title"
	FieldUserName = "UserName"
	FieldPassword = "Password"
	FieldURL      = "URL"
	FieldNotes    = "Notes"
	FieldOTP      = "otp"
)

// Value is a field value: either [Protected] or [Unprotected].
type Value interface {
	// Protected reports whether the value is sensitive.
	Protected() bool

	// Reveal returns the plaintext.
	Reveal() string

	// release drops and zeroes any sensitive material held by the value.
	release()

	// clone returns an independent copy that survives releasing the original.
	clone() Value
}

// Protected is a sensitive value kept in a zeroable buffer.
type Protected struct {
	buf *secret.Buffer
}

// NewProtected wraps s in a fresh secret buffer.
func NewProtected(s string) Protected {
	return Protected{buf: secret.FromString(s)}
}

// NewProtectedBytes moves b into a fresh secret buffer, wiping b.
func NewProtectedBytes(b []byte) Protected {
	return Protected{buf: secret.New(b)}
}

func (p Protected) Protected() bool { return true }

func (p Protected) Reveal() string {
	if p.buf == nil {
		return ""
	}
	return p.buf.Reveal()
}

// Use gives scoped access to the plaintext bytes.
func (p Protected) Use(fn func(plain []byte) error) error {
	if p.buf == nil {
		return fn(nil)
	}
	return p.buf.Use(fn)
}

func (p Protected) String() string { return p.buf.String() }

func (p Protected) release() {
	if p.buf != nil {
		p.buf.Destroy()
	}
}

func (p Protected) clone() Value {
	if p.buf == nil {
		return Protected{}
	}
	var out Protected
	_ = p.buf.Use(func(plain []byte) error {
		out = NewProtectedBytes(bytes.Clone(plain))
		return nil
	})
	return out
}

// Unprotected is a plain, non-sensitive value.
type Unprotected string

func (u Unprotected) Protected() bool { return false }
func (u Unprotected) Reveal() string  { return string(u) }
func (u Unprotected) release()        {}
func (u Unprotected) clone() Value    { return u }

// Field is one named value of an entry.
type Field struct {
	Name  string
	Value Value
}

// Node is a member of the entry tree: [*Entry] or [*Group].
type Node interface {
	NodeUUID() uuid.UUID
	isNode()
}

// Entry is a leaf of the tree.
type Entry struct {
	uuid   uuid.UUID
	fields []Field
}

// NewEntry builds an entry with the given uuid and title.
func NewEntry(id uuid.UUID, title string) *Entry {
	return &Entry{
		uuid:   id,
		fields: []Field{{Name: FieldTitle, Value: Unprotected(title)}},
	}
}

func (e *Entry) NodeUUID() uuid.UUID { return e.uuid }
func (e *Entry) isNode()             {}

// Title returns the plaintext of the Title field.
func (e *Entry) Title() string {
	v, ok := e.Field(FieldTitle)
	if !ok {
		return ""
	}
	return v.Reveal()
}

// UserName returns the UserName field, if any.
func (e *Entry) UserName() (string, bool) {
	v, ok := e.Field(FieldUserName)
	if !ok {
		return "", false
	}
	return v.Reveal(), true
}

// HasOTP reports whether the entry carries a non-empty otp field.
func (e *Entry) HasOTP() bool {
	v, ok := e.Field(FieldOTP)
	if !ok {
		return false
	}
	if p, isProtected := v.(Protected); isProtected {
		return p.buf != nil && p.buf.Len() > 0
	}
	return v.Reveal() != ""
}

// Field returns the value stored under name.
func (e *Entry) Field(name string) (Value, bool) {
	for _, f := range e.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Fields returns a copy of the entry's fields.
func (e *Entry) Fields() []Field {
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// SetField inserts or overwrites a field. The replaced value is released.
func (e *Entry) SetField(name string, value Value) {
	for i, f := range e.fields {
		if f.Name == name {
			f.Value.release()
			e.fields[i].Value = value
			return
		}
	}
	e.fields = append(e.fields, Field{Name: name, Value: value})
}

func (e *Entry) clone() *Entry {
	out := &Entry{uuid: e.uuid, fields: make([]Field, len(e.fields))}
	for i, f := range e.fields {
		out.fields[i] = Field{Name: f.Name, Value: f.Value.clone()}
	}
	return out
}

func (e *Entry) release() {
	for _, f := range e.fields {
		f.Value.release()
	}
}

// Group is an internal node of the tree.
type Group struct {
	uuid     uuid.UUID
	Name     string
	children []Node
}

// NewGroup builds an empty group.
func NewGroup(id uuid.UUID, name string) *Group {
	return &Group{uuid: id, Name: name}
}

func (g *Group) NodeUUID() uuid.UUID { return g.uuid }
func (g *Group) isNode()             {}

// Children returns a copy of the group's child list.
func (g *Group) Children() []Node {
	out := make([]Node, len(g.children))
	copy(out, g.children)
	return out
}

// Add appends children to the group. It is meant for building a tree before
// handing it to [New]; mutations of a live vault go through [Vault] methods
// so the uuid index stays consistent.
func (g *Group) Add(children ...Node) {
	g.children = append(g.children, children...)
}

func (g *Group) clone() *Group {
	out := &Group{uuid: g.uuid, Name: g.Name, children: make([]Node, 0, len(g.children))}
	for _, c := range g.children {
		switch n := c.(type) {
		case *Entry:
			out.children = append(out.children, n.clone())
		case *Group:
			out.children = append(out.children, n.clone())
		}
	}
	return out
}

func (g *Group) release() {
	for _, c := range g.children {
		switch n := c.(type) {
		case *Entry:
			n.release()
		case *Group:
			n.release()
		}
	}
}
