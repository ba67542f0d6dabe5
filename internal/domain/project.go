package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Project is a tracked work item. ID and CreatedAt are assigned once at
// creation and never change; only Status is mutable.
type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Owner     string        `json:"owner"`
	Status    ProjectStatus `json:"status"`
	CreatedAt int64         `json:"createdAt"` // epoch milliseconds
}

// Created returns CreatedAt as a time.Time in local time.
func (p *Project) Created() time.Time {
	return time.UnixMilli(p.CreatedAt)
}

// Clone returns a copy safe to hand out of the owning collection.
func (p *Project) Clone() *Project {
	c := *p
	return &c
}

// Matches reports whether term occurs, case-insensitively, in the project's
// name, owner or status. An empty term matches everything.
func (p *Project) Matches(term string) bool {
	if term == "" {
		return true
	}
	lt := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), lt) ||
		strings.Contains(strings.ToLower(p.Owner), lt) ||
		strings.Contains(strings.ToLower(string(p.Status)), lt)
}

// Initial returns the upper-cased first letter of the owner, used for the
// owner badge.
func (p *Project) Initial() string {
	owner := strings.TrimSpace(p.Owner)
	if owner == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(owner)
	return strings.ToUpper(string(r))
}

// DisplayID returns the first 8 characters of the ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
