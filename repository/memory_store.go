package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/samandartukhtayev/migration-fixtures/models"
)

// MemoryUserStore keeps documents in process. It backs dry runs and tests.
type MemoryUserStore struct {
	target Target

	mu   sync.RWMutex
	docs []models.User
}

var _ UserStore = (*MemoryUserStore)(nil)

// NewMemoryUserStore creates an empty in-memory collection
func NewMemoryUserStore(target Target) *MemoryUserStore {
	return &MemoryUserStore{target: target}
}

// Target returns the collection this store addresses
func (s *MemoryUserStore) Target() Target {
	return s.target
}

// InsertMany appends users, or nothing at all if any id is already taken
func (s *MemoryUserStore) InsertMany(ctx context.Context, users []models.User) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to insert users: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[string]bool, len(s.docs)+len(users))
	for _, doc := range s.docs {
		taken[doc.ID.Hex()] = true
	}
	for _, user := range users {
		id := user.ID.Hex()
		if taken[id] {
			return fmt.Errorf("failed to insert users into %s: %w: _id %s", s.target, ErrDuplicateKey, id)
		}
		taken[id] = true
	}

	s.docs = append(s.docs, users...)
	return nil
}

// CountDocuments returns the number of stored documents
func (s *MemoryUserStore) CountDocuments(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.docs)), nil
}

// FindProjected walks a snapshot of the documents in insertion order
func (s *MemoryUserStore) FindProjected(ctx context.Context, fn func(models.UserProjection) error) error {
	s.mu.RLock()
	snapshot := make([]models.User, len(s.docs))
	copy(snapshot, s.docs)
	s.mu.RUnlock()

	for _, doc := range snapshot {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("failed to iterate users: %w", err)
		}
		if err := fn(doc.Project()); err != nil {
			return err
		}
	}
	return nil
}
