package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// quoteIdentifier safely quotes a SQLite identifier
func quoteIdentifier(name string) string {
	return `"` + name + `"`
}

// Migrate creates the docroot table and its index. It is idempotent.
func Migrate(ctx context.Context, db *sql.DB, tableName string) error {
	quotedTable := quoteIdentifier(tableName)
	indexHost := quoteIdentifier(fmt.Sprintf("idx_%s_host", tableName))

	createTableSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			host TEXT NOT NULL,
			position INTEGER NOT NULL,
			root TEXT NOT NULL,
			PRIMARY KEY (host, position)
		)
	`, quotedTable)

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create table %s: %w", tableName, err)
	}

	indexSQL := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s ON %s (host)
	`, indexHost, quotedTable)

	if _, err := db.ExecContext(ctx, indexSQL); err != nil {
		return fmt.Errorf("create index host: %w", err)
	}

	return nil
}

// DropTable removes the docroot table. Intended for tests.
func DropTable(ctx context.Context, db *sql.DB, tableName string) error {
	dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdentifier(tableName))
	_, err := db.ExecContext(ctx, dropSQL)
	return err
}
