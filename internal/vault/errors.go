package vault

import "errors"

var (
	// ErrNotFound is returned when no root-level entry carries the requested
	// title, or the entry has no field with the requested name.
	ErrNotFound = errors.New("not found")

	// ErrNoRoot is returned by [New] when the vault has no root group.
	ErrNoRoot = errors.New("vault has no root group")

	// ErrDuplicateUUID is returned by [New] when two nodes share a uuid.
	ErrDuplicateUUID = errors.New("duplicate node uuid")
)
