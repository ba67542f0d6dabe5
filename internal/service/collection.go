package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/alexanderramin/teamflow/internal/repository"
	"github.com/google/uuid"
)

// Collection is the in-memory source of truth for projects, ordered
// newest-first. Every successful mutation writes the full collection back
// through the store before returning. A failed write is returned as-is; the
// in-memory change is kept and nothing is retried.
type Collection struct {
	mu       sync.Mutex
	store    repository.ProjectRepo
	projects []*domain.Project
	observer UseCaseObserver

	now   func() time.Time
	newID func() string
}

var _ ProjectTracker = (*Collection)(nil)

// NewCollection loads the saved projects from store once and returns the
// collection that owns them from then on.
func NewCollection(ctx context.Context, store repository.ProjectRepo, observers ...UseCaseObserver) (*Collection, error) {
	projects, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	return &Collection{
		store:    store,
		projects: projects,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}, nil
}

// Add prepends a new project. Blank name or owner (after trimming) makes it
// a no-op that returns (nil, nil); callers are expected to gate on that first.
func (c *Collection) Add(ctx context.Context, name, owner string, status domain.ProjectStatus) (project *domain.Project, err error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(owner) == "" {
		return nil, nil
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	startedAt := time.Now()
	fields := map[string]any{"status": string(status)}
	defer func() {
		c.observe(ctx, "add-project", startedAt, err, fields)
	}()

	p := &domain.Project{
		ID:        c.newID(),
		Name:      name,
		Owner:     owner,
		Status:    status,
		CreatedAt: c.now().UnixMilli(),
	}
	fields["project_id"] = p.ID
	c.projects = append([]*domain.Project{p}, c.projects...)

	if err = c.persistLocked(ctx); err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Remove deletes the project with the given id. An unknown id is a no-op.
func (c *Collection) Remove(ctx context.Context, id string) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(id)
	if idx < 0 {
		return nil
	}

	startedAt := time.Now()
	defer func() {
		c.observe(ctx, "remove-project", startedAt, err, map[string]any{"project_id": id})
	}()

	c.projects = append(c.projects[:idx:idx], c.projects[idx+1:]...)
	return c.persistLocked(ctx)
}

// Clear empties the collection and deletes its saved copy. Like the other
// mutations, the in-memory change is kept if the store fails.
func (c *Collection) Clear(ctx context.Context) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	startedAt := time.Now()
	fields := map[string]any{"removed": len(c.projects)}
	defer func() {
		c.observe(ctx, "clear-projects", startedAt, err, fields)
	}()

	c.projects = []*domain.Project{}
	if err = c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing projects: %w", err)
	}
	return nil
}

// SetStatus replaces the status of the project with the given id. An unknown
// id is a no-op. Every other field is left untouched.
func (c *Collection) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (err error) {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(id)
	if idx < 0 {
		return nil
	}

	startedAt := time.Now()
	defer func() {
		c.observe(ctx, "set-status", startedAt, err, map[string]any{
			"project_id": id,
			"status":     string(status),
		})
	}()

	updated := c.projects[idx].Clone()
	updated.Status = status
	c.projects[idx] = updated
	return c.persistLocked(ctx)
}

// Projects returns a snapshot of the collection in order.
func (c *Collection) Projects() []*domain.Project {
	return c.Filter("")
}

// Filter returns the projects whose name, owner or status contains term,
// case-insensitively. An empty term returns every project. Order is kept.
func (c *Collection) Filter(term string) []*domain.Project {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*domain.Project, 0, len(c.projects))
	for _, p := range c.projects {
		if p.Matches(term) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Aggregate counts projects in total and per status.
func (c *Collection) Aggregate() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Total: len(c.projects)}
	for _, p := range c.projects {
		switch p.Status {
		case domain.StatusNotStarted:
			s.NotStarted++
		case domain.StatusInProgress:
			s.InProgress++
		case domain.StatusDone:
			s.Done++
		}
	}
	return s
}

// Get returns a copy of the project with the given id.
func (c *Collection) Get(id string) (*domain.Project, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(id)
	if idx < 0 {
		return nil, false
	}
	return c.projects[idx].Clone(), true
}

// Resolve maps user input to a project id: an exact id first, then a unique
// id prefix (case-insensitive).
func (c *Collection) Resolve(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexLocked(input); idx >= 0 {
		return c.projects[idx].ID, nil
	}

	lower := strings.ToLower(input)
	var matches []string
	for _, p := range c.projects {
		if strings.HasPrefix(strings.ToLower(p.ID), lower) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrProjectNotFound, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q (%d matches)", ErrAmbiguousID, input, len(matches))
	}
}

func (c *Collection) indexLocked(id string) int {
	for i, p := range c.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) persistLocked(ctx context.Context) error {
	if err := c.store.Save(ctx, c.projects); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	return nil
}

func (c *Collection) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	fields["total"] = len(c.projects)
	c.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
