package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes blobs below a root directory and serves them from a public base URL.
type LocalStore struct {
	rootDir string
	baseURL string
}

func NewLocalStore(rootDir, baseURL string) (*LocalStore, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("storage root directory is required")
	}

	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root directory: %w", err)
	}

	return &LocalStore{rootDir: rootDir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error) {
	if err := validateKey(key); err != nil {
		return Object{}, err
	}
	if size > MaxObjectSize {
		return Object{}, ErrTooLarge
	}

	fullPath := filepath.Join(s.rootDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return Object{}, fmt.Errorf("creating object directory: %w", err)
	}

	// Write to a temp file, then rename so readers never see a partial object.
	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("creating temp object: %w", err)
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, io.LimitReader(r, MaxObjectSize+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return Object{}, fmt.Errorf("writing temp object: %w", err)
	}
	if n > MaxObjectSize {
		os.Remove(tmpPath)
		return Object{}, ErrTooLarge
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return Object{}, fmt.Errorf("renaming object: %w", err)
	}

	return Object{Key: key, URL: s.baseURL + "/" + key}, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.rootDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting object: %w", err)
	}
	return nil
}

// validateKey ensures the key is relative and stays under the root.
func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") || filepath.IsAbs(key) {
		return ErrPathTraversal
	}
	if strings.HasPrefix(filepath.Clean(filepath.FromSlash(key)), "..") {
		return ErrPathTraversal
	}
	return nil
}
