package testutil

import (
	"context"
	"sync/atomic"
)

// KV mirrors repository.KVStore without importing it, so repository tests can
// use this package.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// FailOnNthSetKV wraps a KVStore and injects Err on the Nth Set call.
// Calls are counted starting at 1; Get and Delete pass through.
// FailOn <= 0 fails every Set.
type FailOnNthSetKV struct {
	KV
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailOnNthSetKV) Set(ctx context.Context, key string, value []byte) error {
	n := f.count.Add(1)
	if f.FailOn <= 0 || n == f.FailOn {
		return f.Err
	}
	return f.KV.Set(ctx, key, value)
}

// Sets returns how many Set calls were attempted.
func (f *FailOnNthSetKV) Sets() int {
	return int(f.count.Load())
}
