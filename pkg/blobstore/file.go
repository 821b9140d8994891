package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps each blob as a file under a root directory. The root is
// created on first access, so pointing it at a fresh path just works.
type FileBackend struct {
	root string
}

func NewFileBackend(root string) *FileBackend {
	return &FileBackend{root: root}
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.root, name)
}

func (b *FileBackend) ensureRoot() error {
	if err := os.MkdirAll(b.root, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", b.root, err)
	}
	return nil
}

func (b *FileBackend) Read(_ context.Context, name string) ([]byte, error) {
	if err := b.ensureRoot(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", name, err)
	}
	return data, nil
}

func (b *FileBackend) Write(_ context.Context, name string, data []byte) error {
	if err := b.ensureRoot(); err != nil {
		return err
	}
	if err := os.WriteFile(b.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", name, err)
	}
	return nil
}

func (b *FileBackend) Remove(_ context.Context, name string) error {
	err := os.Remove(b.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob %s: %w", name, err)
	}
	return nil
}

func (b *FileBackend) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(b.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat blob %s: %w", name, err)
	}
	return true, nil
}
