package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryKVRepo is an in-process KVRepo. It stands in for the SQLite backend
// in tests and for throwaway sessions.
type MemoryKVRepo struct {
	tx   sync.Mutex // held for the duration of WithinTx
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKVRepo() *MemoryKVRepo {
	return &MemoryKVRepo{data: make(map[string]string)}
}

func (r *MemoryKVRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, ErrNotFound)
	}
	return v, nil
}

func (r *MemoryKVRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

func (r *MemoryKVRepo) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

// WithinTx serializes fn against other WithinTx calls. Changes made by fn
// are kept even when it fails; there is no rollback.
func (r *MemoryKVRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, kv KVRepo) error) error {
	r.tx.Lock()
	defer r.tx.Unlock()
	return fn(ctx, r)
}

var _ TxKVRepo = (*MemoryKVRepo)(nil)
