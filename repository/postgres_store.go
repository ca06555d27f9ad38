package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	"github.com/samandartukhtayev/migration-fixtures/config"
	"github.com/samandartukhtayev/migration-fixtures/models"
)

// SQLSTATE for unique_violation
const uniqueViolation = "23505"

// PostgresUserStore keeps a document collection in PostgreSQL.
// The target database maps to a schema and the collection to a table of JSONB documents.
type PostgresUserStore struct {
	target Target
	db     *sql.DB
	table  string
}

var _ UserStore = (*PostgresUserStore)(nil)

// ConnectPostgres opens a connection pool with the configured driver and pings it once
func ConnectPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres (%s): %w", cfg.Driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres at %s:%d: %w: %w", cfg.Host, cfg.Port, ErrConnection, err)
	}

	return db, nil
}

// NewPostgresUserStore creates a store for target. Call EnsureCollection before first use.
func NewPostgresUserStore(db *sql.DB, target Target) *PostgresUserStore {
	return &PostgresUserStore{
		target: target,
		db:     db,
		table:  pq.QuoteIdentifier(target.Database) + "." + pq.QuoteIdentifier(target.Collection),
	}
}

// EnsureCollection creates the schema and table if they do not exist yet.
// Existing rows are left untouched.
func (s *PostgresUserStore) EnsureCollection(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE SCHEMA IF NOT EXISTS `+pq.QuoteIdentifier(s.target.Database)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", s.target.Database, err)
	}

	query := `
		CREATE TABLE IF NOT EXISTS ` + s.table + ` (
			id  TEXT PRIMARY KEY,
			doc JSONB NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.target, err)
	}

	return nil
}

// InsertMany writes all users with a single multi-row INSERT
func (s *PostgresUserStore) InsertMany(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO ` + s.table + ` (id, doc) VALUES `)

	args := make([]any, 0, len(users)*2)
	for i, user := range users {
		doc, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to encode user %s: %w", user.Email, err)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($%d, $%d::jsonb)", 2*i+1, 2*i+2)
		args = append(args, user.ID.Hex(), string(doc))
	}

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to insert users into %s: %w: %w", s.target, ErrDuplicateKey, err)
		}
		return fmt.Errorf("failed to insert users into %s: %w", s.target, err)
	}

	return nil
}

// CountDocuments counts every row in the collection table
func (s *PostgresUserStore) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+s.table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users in %s: %w", s.target, err)
	}

	return count, nil
}

// FindProjected builds the projection server side and streams rows without ORDER BY
func (s *PostgresUserStore) FindProjected(ctx context.Context, fn func(models.UserProjection) error) error {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectionExpr()+` FROM `+s.table)
	if err != nil {
		return fmt.Errorf("failed to query users in %s: %w", s.target, err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("failed to scan user from %s: %w", s.target, err)
		}

		var doc models.UserProjection
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to decode user from %s: %w", s.target, err)
		}
		if err := fn(doc); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating users in %s: %w", s.target, err)
	}

	return nil
}

// projectionExpr selects the report fields from doc. Keys missing from a
// document come back as SQL NULL and are stripped, so absent stays absent.
func projectionExpr() string {
	parts := make([]string, 0, len(models.ProjectionFields))
	for _, field := range models.ProjectionFields {
		parts = append(parts, fmt.Sprintf("%s, doc->%s", pq.QuoteLiteral(field), pq.QuoteLiteral(field)))
	}
	return "jsonb_strip_nulls(jsonb_build_object(" + strings.Join(parts, ", ") + "))"
}

// isUniqueViolation recognises unique_violation from either registered driver
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}

	return false
}
