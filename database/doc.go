// Package database provides host-to-docroot mappings stored in a database.
//
// A mapping assigns an ordered list of root directories to a hostname. At
// request time the store acts as a statiq.RootProvider: the roots mapped to
// the request's host (port stripped) are spliced into the search path. This
// is how multi-tenant deployments point different virtual hosts at different
// document trees without restarting.
//
// # Supported backends
//
//   - PostgreSQL: production backend using a pgx connection pool
//   - SQLite: lightweight backend for development and single-node deployments
//
// # Usage
//
//	cfg := database.Config{
//	    Type:  "sqlite",
//	    DSN:   "statiq.db",
//	    Table: "statiq_docroots",
//	}
//
//	store, cleanup, err := database.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
//
//	resolverCfg := statiq.Config{
//	    IncludePath: []statiq.Root{statiq.Dynamic(store), statiq.Dir("./public")},
//	}
//
// Connect opens the connection, runs the idempotent migration, and validates
// the schema before returning a ready-to-use store.
//
// Backend-specific implementations live in database/postgres and
// database/sqlite.
package database
