// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileCache stores one file per cache name under a single directory,
// ~/.key/cache unless configured otherwise.
type FileCache struct {
	fs      afero.Fs
	dir     string
	homeDir func() (string, error)
}

// NewFileCache returns a cache rooted at dir, or at ~/.key/cache when dir
// is empty.
func NewFileCache(fsys afero.Fs, dir string) *FileCache {
	return &FileCache{fs: fsys, dir: dir, homeDir: os.UserHomeDir}
}

// Dir resolves and creates the cache directory.
func (c *FileCache) Dir() (string, error) {
	dir := c.dir
	if dir == "" {
		home, err := c.homeDir()
		if err != nil || home == "" {
			return "", fmt.Errorf("%w: cannot determine home directory: %w", ErrCacheUnavailable, err)
		}
		dir = filepath.Join(home, ".key", "cache")
	}

	if err := c.fs.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}
	return dir, nil
}

func (c *FileCache) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: invalid cache name %q", ErrCacheUnavailable, name)
	}

	dir, err := c.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Read returns the cached bytes for name.
func (c *FileCache) Read(name string) ([]byte, error) {
	p, err := c.path(name)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(c.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cache entry %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry %q: %w", name, err)
	}
	return data, nil
}

// Write replaces the cached bytes for name. Readers see either the old or
// the new contents.
func (c *FileCache) Write(name string, data []byte) error {
	p, err := c.path(name)
	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(c.fs, filepath.Dir(p), name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = c.fs.Rename(tmpName, p)
	}
	if err != nil {
		_ = c.fs.Remove(tmpName)
		return fmt.Errorf("write cache entry %q: %w", name, err)
	}
	return nil
}
