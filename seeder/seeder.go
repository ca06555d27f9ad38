// Package seeder loads the sample users into a store and prints a summary of
// what the collection holds afterwards.
package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/samandartukhtayev/migration-fixtures/fixture"
	"github.com/samandartukhtayev/migration-fixtures/models"
	"github.com/samandartukhtayev/migration-fixtures/repository"
	"go.uber.org/zap"
)

// Fixed target of every seed run
const (
	Database   = "migration_examples"
	Collection = "users"
)

// DefaultTarget is the collection the sample users are written to
var DefaultTarget = repository.Target{Database: Database, Collection: Collection}

// Seeder writes the fixture to a store. It never clears the collection first,
// so running it twice leaves two copies of every sample user.
type Seeder struct {
	store  repository.UserStore
	target repository.Target
	out    io.Writer
	logger *zap.Logger
}

// New creates a seeder. Report lines go to out; logger may be nil.
func New(store repository.UserStore, target repository.Target, out io.Writer, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		store:  store,
		target: target,
		out:    out,
		logger: logger.With(zap.Stringer("target", target)),
	}
}

// Run seeds the collection and reports on it
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.Seed(ctx); err != nil {
		return err
	}
	return s.Report(ctx)
}

// Seed inserts the sample users as one batch
func (s *Seeder) Seed(ctx context.Context) error {
	users := fixture.Users()
	s.logger.Debug("inserting sample users", zap.Int("count", len(users)))

	if err := s.store.InsertMany(ctx, users); err != nil {
		return fmt.Errorf("failed to seed sample users: %w", err)
	}

	s.logger.Info("sample users inserted", zap.Int("count", len(users)))
	fmt.Fprintf(s.out, "✓ Created %s database with sample users\n", s.target.Database)
	return nil
}

// Report prints the total document count and the projected fields of every
// document, in whatever order the store returns them
func (s *Seeder) Report(ctx context.Context) error {
	count, err := s.store.CountDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to report sample users: %w", err)
	}
	fmt.Fprintf(s.out, "✓ Inserted %d sample users\n", count)

	fmt.Fprintln(s.out, "\nSample data overview:")
	var printed int
	err = s.store.FindProjected(ctx, func(doc models.UserProjection) error {
		line, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", doc.Email, err)
		}
		fmt.Fprintf(s.out, "  %s\n", line)
		printed++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to report sample users: %w", err)
	}

	s.logger.Debug("report written", zap.Int64("count", count), zap.Int("listed", printed))
	fmt.Fprintln(s.out, "\nReady for migration examples!")
	return nil
}
