// Package postgres implements the docroot store using PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sagarc03/statiq"
	"github.com/sagarc03/statiq/database/internal"
)

// Store serves and manages docroot mappings backed by a PostgreSQL database.
type Store struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewStore creates a Store on an open connection pool. The table must exist;
// run Migrate first.
func NewStore(pool *pgxpool.Pool, tableName string) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("new postgres store: connection pool is required")
	}
	return &Store{pool: pool, tableName: tableName}, nil
}

// Roots returns the docroots mapped to the request's host, ordered by
// position. An unmapped host yields no roots and no error.
func (s *Store) Roots(ctx context.Context, r *http.Request) ([]string, error) {
	host := internal.Hostname(r.Host)

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT root FROM %s WHERE host = $1 ORDER BY position`, s.tableName)

	rows, err := s.pool.Query(ctx, query, host)
	if err != nil {
		return nil, fmt.Errorf("roots: %w", err)
	}
	defer rows.Close()

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
		`INSERT INTO %s (host, position, root) VALUES ($1, $2, $3)
		ON CONFLICT (host, position) DO UPDATE SET root = EXCLUDED.root`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, internal.Hostname(d.Host), d.Position, d.Root); err != nil {
		return fmt.Errorf("add docroot: %w", err)
	}
	return nil
}

// Remove deletes every mapping of root under host.
func (s *Store) Remove(ctx context.Context, host, root string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`DELETE FROM %s WHERE host = $1 AND root = $2`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, internal.Hostname(host), root); err != nil {
		return fmt.Errorf("remove docroot: %w", err)
	}
	return nil
}

// List returns the mappings for host ordered by position, or every mapping
// when host is empty.
func (s *Store) List(ctx context.Context, host string) ([]statiq.Docroot, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT host, position, root FROM %s WHERE ($1 = '' OR host = $1) ORDER BY host, position`, s.tableName)

	rows, err := s.pool.Query(ctx, query, internal.Hostname(host))
	if err != nil {
		return nil, fmt.Errorf("list docroots: %w", err)
	}
	defer rows.Close()

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
