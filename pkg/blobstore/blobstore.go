package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when the named blob does not exist.
var ErrNotFound = errors.New("blob not found")

// Backend stores named whole-collection blobs. A Write overwrites the entire
// blob in a single call; there is no partial-write protection, no cross-blob
// transaction, and no locking between concurrent read-modify-write sequences
// (the later write wins).
type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
}
