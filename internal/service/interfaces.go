package service

import (
	"context"

	"github.com/alexanderramin/teamflow/internal/domain"
)

// ProjectTracker is the owned project collection. Views and commands mutate
// it only through these operations.
type ProjectTracker interface {
	Add(ctx context.Context, name, owner string, status domain.ProjectStatus) (*domain.Project, error)
	Remove(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) error
	Clear(ctx context.Context) error

	Projects() []*domain.Project
	Filter(term string) []*domain.Project
	Aggregate() Stats
	Get(id string) (*domain.Project, bool)
	Resolve(input string) (string, error)
}

// Stats are aggregate counts derived from the current collection.
type Stats struct {
	Total      int
	NotStarted int
	InProgress int
	Done       int
}
