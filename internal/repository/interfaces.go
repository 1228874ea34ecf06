package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned (wrapped) when a key has no stored value.
var ErrNotFound = errors.New("not found")

// KVRepo is a string key/value area, the durable medium behind the store.
type KVRepo interface {
	// Get returns the value stored under key, or an error wrapping
	// ErrNotFound when nothing is stored.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// TxKVRepo is a KVRepo that can group several operations atomically.
type TxKVRepo interface {
	KVRepo
	WithinTx(ctx context.Context, fn func(ctx context.Context, kv KVRepo) error) error
}
