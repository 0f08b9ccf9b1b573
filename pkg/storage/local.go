package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local stores files in a directory served statically under urlPrefix.
type Local struct {
	dir       string
	urlPrefix string
}

func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}
	return &Local{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) URLPrefix() string {
	return l.urlPrefix
}

func (l *Local) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	if !validName(name) {
		return "", ErrInvalidName
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpName, filepath.Join(l.dir, name)); err != nil {
		return "", fmt.Errorf("store %s: %w", name, err)
	}

	return joinURL(l.urlPrefix, name), nil
}

func (l *Local) Delete(_ context.Context, path string) error {
	if !l.Owns(path) {
		return ErrForeignPath
	}

	err := os.Remove(filepath.Join(l.dir, strings.TrimPrefix(path, l.urlPrefix+"/")))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) Owns(path string) bool {
	name, ok := strings.CutPrefix(path, l.urlPrefix+"/")
	return ok && validName(name)
}
