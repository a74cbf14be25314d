// Package dialect provides the database dialect abstraction used to execute
// composed ancestor queries.
//
// The package defines the interfaces implemented by the SQL layer so that
// callers can run a query produced by sqlgraph against PostgreSQL, MySQL or
// SQLite without depending on database/sql directly.
//
// # Dialect Constants
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Usage
//
//	drv, err := sql.Open(dialect.SQLite, "file:garage.db?_pragma=foreign_keys(1)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	rows, err := q.All(ctx, drv)
//
// # Sub-packages
//
//   - dialect/sql: SQL builder, selector and driver implementation
//   - dialect/sql/schema: live schema inspection into a graph.Graph
//   - dialect/sql/sqlgraph: lazy SQL queries over graph types
package dialect
