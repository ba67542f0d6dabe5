package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/google/uuid"
)

var fixtureClock atomic.Int64

// ProjectOption customizes a fixture project.
type ProjectOption func(*domain.Project)

func WithOwner(owner string) ProjectOption {
	return func(p *domain.Project) {
		p.Owner = owner
	}
}

func WithStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithCreatedAt(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t.UnixMilli()
	}
}

// NewTestProject builds a project with a fresh id. CreatedAt values increase
// strictly across calls so fixtures sort deterministically.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC).UnixMilli()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Owner:     "Test Owner",
		Status:    domain.StatusNotStarted,
		CreatedAt: base + fixtureClock.Add(1)*1000,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
