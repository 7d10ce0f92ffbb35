package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the docroot table and its index. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	indexHost := pgx.Identifier{fmt.Sprintf("idx_%s_host", tableName)}.Sanitize()

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			host TEXT NOT NULL,
			position INTEGER NOT NULL,
			root TEXT NOT NULL,
			PRIMARY KEY (host, position)
		);

		CREATE INDEX IF NOT EXISTS %s ON %s (host);
	`, quotedTable, indexHost, quotedTable)

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create table %s: %w", tableName, err)
	}

	return nil
}

// DropTable removes the docroot table. Intended for tests.
func DropTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	sql := fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{tableName}.Sanitize())
	_, err := pool.Exec(ctx, sql)
	return err
}
