package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/teamflow/internal/domain"
)

// ProjectsKey is the single key the project collection is stored under.
const ProjectsKey = "team_projects"

// KVProjectStore implements ProjectRepo by serializing the full collection as
// a JSON array under ProjectsKey. There is no schema versioning and no
// partial update: every Save overwrites the previous value.
type KVProjectStore struct {
	kv  KVStore
	key string
}

// NewKVProjectStore creates a KVProjectStore over kv.
func NewKVProjectStore(kv KVStore) *KVProjectStore {
	return &KVProjectStore{kv: kv, key: ProjectsKey}
}

// Load returns the saved collection, or an empty one when nothing was saved.
func (s *KVProjectStore) Load(ctx context.Context) ([]*domain.Project, error) {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if !ok || len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []*domain.Project{}, nil
	}

	var projects []*domain.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.key, err)
	}
	out := projects[:0]
	for _, p := range projects {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// Save overwrites the stored collection with projects, order preserved.
func (s *KVProjectStore) Save(ctx context.Context, projects []*domain.Project) error {
	if projects == nil {
		projects = []*domain.Project{}
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.key, err)
	}
	return s.kv.Set(ctx, s.key, data)
}

// Clear deletes the stored collection. Clearing an absent key is not an error.
func (s *KVProjectStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
