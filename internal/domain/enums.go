package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStatus is returned when a value is not one of the three project statuses.
var ErrInvalidStatus = errors.New("invalid project status")

// ProjectStatus is the progress state of a tracked project. Only the three
// constants below are valid; ParseStatus and JSON decoding reject anything else.
type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "Not Started"
	StatusInProgress ProjectStatus = "In Progress"
	StatusDone       ProjectStatus = "Done"
)

// AllStatuses lists the statuses in workflow order.
var AllStatuses = []ProjectStatus{StatusNotStarted, StatusInProgress, StatusDone}

// ParseStatus accepts the display literal ("In Progress") or the constant
// spelling ("IN_PROGRESS", "in-progress"), case-insensitively.
func ParseStatus(s string) (ProjectStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, st := range AllStatuses {
		if strings.ToLower(string(st)) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Valid reports whether s is one of the three known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Next returns the following status in workflow order, wrapping Done back
// to Not Started.
func (s ProjectStatus) Next() ProjectStatus {
	for i, st := range AllStatuses {
		if st == s {
			return AllStatuses[(i+1)%len(AllStatuses)]
		}
	}
	return StatusNotStarted
}

// Key returns the constant-style spelling, e.g. "IN_PROGRESS".
func (s ProjectStatus) Key() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), " ", "_"))
}

func (s ProjectStatus) String() string { return string(s) }

func (s *ProjectStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
