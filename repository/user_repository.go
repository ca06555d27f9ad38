package repository

import (
	"context"
	"errors"

	"github.com/samandartukhtayev/migration-fixtures/models"
)

var (
	// ErrDuplicateKey is returned when a batch insert violates a unique key
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrConnection is returned when a backend cannot be reached
	ErrConnection = errors.New("backend unreachable")
)

// Target addresses a collection inside a database
type Target struct {
	Database   string
	Collection string
}

// String returns the target as "database.collection"
func (t Target) String() string {
	return t.Database + "." + t.Collection
}

// UserStore is the collection-level surface the seeder needs from a document store.
// Implementations address exactly one Target.
type UserStore interface {
	// InsertMany stores all users in a single request to the backend
	InsertMany(ctx context.Context, users []models.User) error

	// CountDocuments counts every document in the collection
	CountDocuments(ctx context.Context) (int64, error)

	// FindProjected streams every document as a UserProjection, in backend order.
	// Iteration stops at the first error returned by fn.
	FindProjected(ctx context.Context, fn func(models.UserProjection) error) error
}
