package service

import "errors"

var (
	// ErrProjectNotFound indicates no project matches the given id or prefix.
	ErrProjectNotFound = errors.New("project not found")

	// ErrAmbiguousID indicates an id prefix matches more than one project.
	ErrAmbiguousID = errors.New("project id prefix is ambiguous")
)
