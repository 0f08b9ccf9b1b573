// Package storage persists uploaded avatar files. A stored object is
// addressed by the public path returned from Save; the same path is what the
// user record keeps and what Delete accepts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrInvalidName = errors.New("storage: invalid object name")
	ErrForeignPath = errors.New("storage: path not managed by this storage")
)

type Storage interface {
	// Save durably stores data under name and returns its public path.
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)

	// Delete removes the object behind a path previously returned by Save.
	// Deleting an object that no longer exists is not an error.
	Delete(ctx context.Context, path string) error

	// Owns reports whether path points into this storage.
	Owns(path string) bool
}

// EnsureDir creates dir and its parents if missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func joinURL(prefix, name string) string {
	return strings.TrimRight(prefix, "/") + "/" + name
}
