package blobstore

import (
	"context"
	"sync"
)

// MemoryBackend is an in-process Backend used by tests and by the memory
// store mode. The mutex only guards the map itself; concurrent
// read-modify-write sequences still collide at the collection level exactly
// like the file backend.
type MemoryBackend struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[string][]byte)}
}

func (b *MemoryBackend) Read(_ context.Context, name string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (b *MemoryBackend) Write(_ context.Context, name string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	b.mu.Lock()
	b.blobs[name] = stored
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Remove(_ context.Context, name string) error {
	b.mu.Lock()
	delete(b.blobs, name)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Exists(_ context.Context, name string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.blobs[name]
	return ok, nil
}
