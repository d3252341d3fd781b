package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

// FileBackend keeps the vault in a single file.
type FileBackend struct {
	fs   afero.Fs
	path string
}

// NewFileBackend returns a backend for path on fsys.
func NewFileBackend(fsys afero.Fs, path string) *FileBackend {
	return &FileBackend{fs: fsys, path: path}
}

func (b *FileBackend) Fetch(_ context.Context) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("file %s: %w", b.path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	return data, nil
}

// Store overwrites the file in place. A crash mid-write can leave a
// truncated vault behind.
func (b *FileBackend) Store(_ context.Context, data []byte) error {
	if err := afero.WriteFile(b.fs, b.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", b.path, err)
	}
	return nil
}

func (b *FileBackend) Remote() bool { return false }

func (b *FileBackend) String() string { return "file://" + b.path }
