package repository

import (
	"context"

	"github.com/alexanderramin/teamflow/internal/domain"
)

// KVStore is a flat key-value store holding opaque byte values.
type KVStore interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ProjectRepo loads and saves the whole project collection as one unit.
type ProjectRepo interface {
	Load(ctx context.Context) ([]*domain.Project, error)
	Save(ctx context.Context, projects []*domain.Project) error
	// Clear removes the saved collection so the next Load starts empty.
	Clear(ctx context.Context) error
}
