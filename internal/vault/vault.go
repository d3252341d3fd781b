// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vault

import (
	"fmt"

	"github.com/google/uuid"
)

// Vault is a decoded credential database.
type Vault struct {
	root  *Group
	index map[uuid.UUID]Node

	// Origin is opaque codec state carried from decode to encode, so that
	// a re-encoded vault keeps what the model does not represent (history,
	// timestamps, icons, database metadata). Only the codec reads it.
	Origin any

	// FromCache is set by the loader when the bytes came from the local
	// cache because the remote backend could not be read.
	FromCache bool
}

// New builds a Vault around root and indexes every node by uuid.
func New(root *Group) (*Vault, error) {
	if root == nil {
		return nil, ErrNoRoot
	}

	v := &Vault{root: root, index: make(map[uuid.UUID]Node)}
	if err := v.indexNode(root); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vault) indexNode(n Node) error {
	id := n.NodeUUID()
	if _, exists := v.index[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateUUID, id)
	}
	v.index[id] = n

	if g, ok := n.(*Group); ok {
		for _, c := range g.children {
			if err := v.indexNode(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Root returns the root group.
func (v *Vault) Root() *Group {
	return v.root
}

// ByUUID looks a node up anywhere in the tree.
func (v *Vault) ByUUID(id uuid.UUID) (Node, bool) {
	n, ok := v.index[id]
	return n, ok
}

// Len returns the number of nodes in the tree, root included.
func (v *Vault) Len() int {
	return len(v.index)
}

// Clone returns a deep copy of the vault. Protected values are copied into
// fresh buffers, so closing either vault leaves the other intact. Origin is
// shared.
func (v *Vault) Clone() *Vault {
	root := v.root.clone()
	out := &Vault{
		root:      root,
		index:     make(map[uuid.UUID]Node, len(v.index)),
		Origin:    v.Origin,
		FromCache: v.FromCache,
	}
	// uuids were unique in v, so indexing the copy cannot fail.
	_ = out.indexNode(root)
	return out
}

// Close zeroes every protected value in the tree. The vault must not be
// used afterwards.
func (v *Vault) Close() {
	if v.root != nil {
		v.root.release()
	}
}

// newUUID is swapped in tests.
var newUUID = func() uuid.UUID {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.New()
	}
	return id
}

func (v *Vault) freshUUID() uuid.UUID {
	for {
		id := newUUID()
		if _, taken := v.index[id]; !taken {
			return id
		}
	}
}
