package testutil

import (
	"context"
	"sync/atomic"
)

// KV matches repository.KVRepo without importing it, so repository tests can
// use this package.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// FailingKV wraps a KV and injects Err into writes once FailAfter successful
// Set calls have happened. FailGets makes every Get fail as well.
type FailingKV struct {
	KV
	FailAfter int32
	FailGets  bool
	Err       error

	sets atomic.Int32
}

func (f *FailingKV) Get(ctx context.Context, key string) (string, error) {
	if f.FailGets {
		return "", f.Err
	}
	return f.KV.Get(ctx, key)
}

func (f *FailingKV) Set(ctx context.Context, key, value string) error {
	if f.sets.Add(1) > f.FailAfter {
		return f.Err
	}
	return f.KV.Set(ctx, key, value)
}
