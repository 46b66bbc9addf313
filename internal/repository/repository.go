package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g. postgres) inside this directory.

import (
	"context"
	"errors"

	"edusync/internal/model"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert collides with an existing id.
	ErrDuplicate = errors.New("record with this id already exists")
)

// ListFilter narrows List results. The zero value lists everything.
// Only course listings honor InstructorID; other entities ignore it.
type ListFilter struct {
	InstructorID string
}

// Crud is the persistence surface shared by every entity type, using SQL
// queries only. No business logic here — strictly persistence operations.
type Crud[T model.Entity] interface {
	// List returns all records matching the filter.
	List(ctx context.Context, f ListFilter) ([]T, error)

	// FindByID returns a record by its id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*T, error)

	// Create inserts a new record with its client-supplied id.
	// Returns the stored record, or ErrDuplicate when the id already exists.
	Create(ctx context.Context, e *T) (*T, error)

	// Update overwrites every non-id column of the record identified by its id.
	// Returns ErrNotFound when no row was updated.
	Update(ctx context.Context, e *T) error

	// Delete removes a record by id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// UserRepository extends the generic surface with the lookup login needs.
type UserRepository interface {
	Crud[model.User]

	// FindByEmail returns the user with the given email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
