// Package storage manages files on disk: criminal photos and generated
// failure reports. Every stored file gets a generated unique name so
// concurrent requests never collide.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes files under a root directory.
type Store struct {
	root string
}

// New returns a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// Root returns the storage directory.
func (s *Store) Root() string {
	return s.root
}

// SaveUpload persists a multipart upload under a generated name, keeping
// the original extension, and returns the stored filename.
func (s *Store) SaveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return name, nil
}

// Open returns a reader for a stored file. The name is reduced to its base
// so a crafted path cannot escape the root.
func (s *Store) Open(name string) (*os.File, error) {
	return os.Open(filepath.Join(s.root, filepath.Base(name)))
}

// Remove deletes a stored file. Missing files are not an error; the record
// pointing at the file has already been removed or replaced.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
