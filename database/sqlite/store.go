// Package sqlite implements the docroot store using SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/sagarc03/statiq"
	"github.com/sagarc03/statiq/database/internal"
)

// Store serves and manages docroot mappings backed by a SQLite database.
type Store struct {
	db        *sql.DB
	tableName string
}

// NewStore creates a Store on an open database handle. The table must exist;
// run Migrate first.
func NewStore(db *sql.DB, tableName string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("new sqlite store: db handle is required")
	}
	return &Store{db: db, tableName: tableName}, nil
}

// Roots returns the docroots mapped to the request's host, ordered by
// position. An unmapped host yields no roots and no error.
func (s *Store) Roots(ctx context.Context, r *http.Request) ([]string, error) {
	host := internal.Hostname(r.Host)

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT root FROM %s WHERE host = ? ORDER BY position`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, host)
	if err != nil {
		return nil, fmt.Errorf("roots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var roots []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("roots: scan: %w", err)
		}
		roots = append(roots, root)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("roots: rows error: %w", err)
	}

	return roots, nil
}

// Add creates or replaces the mapping at (host, position).
func (s *Store) Add(ctx context.Context, d statiq.Docroot) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (host, position, root) VALUES (?, ?, ?)
		ON CONFLICT (host, position) DO UPDATE SET root = excluded.root`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, internal.Hostname(d.Host), d.Position, d.Root); err != nil {
		return fmt.Errorf("add docroot: %w", err)
	}
	return nil
}

// Remove deletes every mapping of root under host.
func (s *Store) Remove(ctx context.Context, host, root string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`DELETE FROM %s WHERE host = ? AND root = ?`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, internal.Hostname(host), root); err != nil {
		return fmt.Errorf("remove docroot: %w", err)
	}
	return nil
}

// List returns the mappings for host ordered by position, or every mapping
// when host is empty.
func (s *Store) List(ctx context.Context, host string) ([]statiq.Docroot, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT host, position, root FROM %s WHERE (? = '' OR host = ?) ORDER BY host, position`, s.tableName)

	h := internal.Hostname(host)
	rows, err := s.db.QueryContext(ctx, query, h, h)
	if err != nil {
		return nil, fmt.Errorf("list docroots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var mappings []statiq.Docroot
	for rows.Next() {
		var d statiq.Docroot
		if err := rows.Scan(&d.Host, &d.Position, &d.Root); err != nil {
			return nil, fmt.Errorf("list docroots: scan: %w", err)
		}
		mappings = append(mappings, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list docroots: rows error: %w", err)
	}

	return mappings, nil
}
