// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Node kinds used in the exported tree.
const (
	KindEntry = "entry"
	KindGroup = "group"
)

// Output formats accepted by [Render].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatText = "text"
)

// ErrUnknownFormat is returned by [Render] for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// TreeNode is one element of the exported tree: [EntryView] or [GroupView].
type TreeNode interface {
	isTreeNode()
}

// EntryView is the read-only projection of an [Entry].
type EntryView struct {
	Type   string  `json:"type" yaml:"type" toml:"type"`
	UUID   string  `json:"uuid" yaml:"uuid" toml:"uuid"`
	Title  string  `json:"title" yaml:"title" toml:"title"`
	User   *string `json:"user,omitempty" yaml:"user,omitempty" toml:"user,omitempty"`
	HasOTP bool    `json:"has_otp" yaml:"has_otp" toml:"has_otp"`
}

// GroupView is the read-only projection of a [Group].
type GroupView struct {
	Type    string     `json:"type" yaml:"type" toml:"type"`
	UUID    string     `json:"uuid" yaml:"uuid" toml:"uuid"`
	Title   string     `json:"title" yaml:"title" toml:"title"`
	Entries []TreeNode `json:"entries" yaml:"entries" toml:"entries"`
}

func (EntryView) isTreeNode() {}
func (GroupView) isTreeNode() {}

// ViewEntry projects a single entry.
func ViewEntry(e *Entry) EntryView {
	view := EntryView{
		Type:   KindEntry,
		UUID:   e.uuid.String(),
		Title:  e.Title(),
		HasOTP: e.HasOTP(),
	}
	if user, ok := e.UserName(); ok {
		view.User = &user
	}
	return view
}

func viewNode(n Node) TreeNode {
	switch n := n.(type) {
	case *Entry:
		return ViewEntry(n)
	case *Group:
		entries := make([]TreeNode, 0, len(n.children))
		for _, c := range n.children {
			entries = append(entries, viewNode(c))
		}
		return GroupView{
			Type:    KindGroup,
			UUID:    n.uuid.String(),
			Title:   n.Name,
			Entries: entries,
		}
	}
	return nil
}

// Tree projects the children of the root group, recursively.
// It never mutates the vault.
func (v *Vault) Tree() []TreeNode {
	out := make([]TreeNode, 0, len(v.root.children))
	for _, c := range v.root.children {
		out = append(out, viewNode(c))
	}
	return out
}

// Walk calls fn for every entry in the tree, depth first, with the names of
// the groups between the root and the entry.
func (v *Vault) Walk(fn func(groups []string, e *Entry)) {
	walk(v.root, nil, fn)
}

func walk(g *Group, groups []string, fn func([]string, *Entry)) {
	for _, c := range g.children {
		switch n := c.(type) {
		case *Entry:
			fn(groups, n)
		case *Group:
			walk(n, append(groups[:len(groups):len(groups)], n.Name), fn)
		}
	}
}

// Render serialises the tree in the given format. The text format prints
// one "group/sub/title" line per entry.
func (v *Vault) Render(format string) ([]byte, error) {
	tree := v.Tree()

	switch strings.ToLower(format) {
	case FormatJSON:
		return json.MarshalIndent(tree, "", "  ")

	case FormatYAML:
		return yaml.Marshal(tree)

	case FormatTOML:
		return toml.Marshal(struct {
			Entries []TreeNode `toml:"entries"`
		}{Entries: tree})

	case FormatText, "":
		var buf bytes.Buffer
		v.Walk(func(groups []string, e *Entry) {
			buf.WriteString(strings.Join(append(groups[:len(groups):len(groups)], e.Title()), "/"))
			buf.WriteByte('\n')
		})
		return buf.Bytes(), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
