// Package objectstore provides document store adapters implementing
// ports.ObjectStore.
package objectstore

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemStore serves documents from a local directory. Keys are
// slash-separated paths relative to the base directory, so prefix
// filtering works the same way it would against a bucket listing.
type FilesystemStore struct {
	baseDir string
}

// NewFilesystemStore creates a store rooted at baseDir.
func NewFilesystemStore(baseDir string) *FilesystemStore {
	return &FilesystemStore{baseDir: baseDir}
}

// List returns the keys of all regular files under the given prefix, in
// lexical order.
func (s *FilesystemStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.baseDir, err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Get fetches the raw bytes of one object.
func (s *FilesystemStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Key converts an absolute path inside the store back into an object key,
// used when file watcher events report absolute paths.
func (s *FilesystemStore) Key(path string) (string, bool) {
	rel, err := filepath.Rel(s.baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
