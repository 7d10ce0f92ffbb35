package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sagarc03/statiq"
	"github.com/sagarc03/statiq/database/internal"
	"github.com/sagarc03/statiq/database/postgres"
	"github.com/sagarc03/statiq/database/sqlite"

	_ "modernc.org/sqlite" // SQLite driver
)

// RootStore serves docroot mappings to the resolver and manages them.
type RootStore interface {
	statiq.RootProvider

	// Add creates or replaces the mapping at (host, position).
	Add(ctx context.Context, d statiq.Docroot) error
	// Remove deletes every mapping of root under host. It is not an error if
	// none exists.
	Remove(ctx context.Context, host, root string) error
	// List returns the mappings for host ordered by position, or every
	// mapping when host is empty.
	List(ctx context.Context, host string) ([]statiq.Docroot, error)
}

// Config holds the configuration for connecting to a docroot backend.
type Config struct {
	// Type specifies the database type: "sqlite" or "postgres". Empty
	// disables the backend.
	Type string `mapstructure:"type"`
	// DSN is the data source name (connection string).
	DSN string `mapstructure:"dsn"`
	// Table is the name of the docroot mapping table.
	Table string `mapstructure:"table"`
}

// Enabled reports whether a backend is configured at all.
func (c Config) Enabled() bool {
	return c.Type != ""
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("validate database config: unsupported type: %s", c.Type)
	}

	if c.DSN == "" {
		return errors.New("validate database config: dsn cannot be empty")
	}

	if !internal.IsValidTableName(c.Table) {
		return fmt.Errorf("validate database config: invalid table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", c.Table)
	}

	return nil
}

// Connect establishes a connection to the configured backend, runs the
// migration, validates the schema, and returns a RootStore. The returned
// cleanup function should be called to close the connection.
func Connect(ctx context.Context, cfg Config) (RootStore, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.Type {
	case "sqlite":
		return connectSQLite(ctx, cfg.DSN, cfg.Table)
	case "postgres":
		return connectPostgres(ctx, cfg.DSN, cfg.Table)
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

func connectSQLite(ctx context.Context, dsn, table string) (RootStore, func(), error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err = sqlite.Migrate(ctx, db, table); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	if err = sqlite.ValidateSchema(ctx, db, table); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("validate sqlite schema: %w", err)
	}

	store, err := sqlite.NewStore(db, table)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create sqlite store: %w", err)
	}

	cleanup := func() {
		_ = db.Close()
	}

	return store, cleanup, nil
}

func connectPostgres(ctx context.Context, dsn, table string) (RootStore, func(), error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err = postgres.Migrate(ctx, pool, table); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate postgres: %w", err)
	}

	if err = postgres.ValidateSchema(ctx, pool, table); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("validate postgres schema: %w", err)
	}

	store, err := postgres.NewStore(pool, table)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("create postgres store: %w", err)
	}

	return store, pool.Close, nil
}
