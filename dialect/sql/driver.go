package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/syssam/ancestry/dialect"
)

type (
	// Rows holds the result set of a Query call.
	Rows struct{ *sql.Rows }
	// Result is an alias to sql.Result.
	Result = sql.Result
)

// Driver runs ancestor queries on a database/sql connection pool.
type Driver struct {
	db   *sql.DB
	name string
}

var _ dialect.Driver = (*Driver)(nil)

// Open opens a connection pool with the database/sql driver registered
// under name.
func Open(name, source string) (*Driver, error) {
	db, err := sql.Open(name, source)
	if err != nil {
		return nil, err
	}
	return OpenDB(name, db), nil
}

// OpenDB returns a Driver using db. The name is the registered database/sql
// driver name and selects the dialect.
func OpenDB(name string, db *sql.DB) *Driver {
	return &Driver{db: db, name: name}
}

// DB returns the underlying connection pool.
func (d *Driver) DB() *sql.DB { return d.db }

// Dialect returns the dialect of the driver. Registered names carrying a
// suffix, such as "sqlite3" or "postgres-otel", map to their base dialect.
func (d *Driver) Dialect() string {
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.name, name) {
			return name
		}
	}
	return d.name
}

// Exec runs a statement that returns no rows. v is either nil or a *Result
// receiving the outcome.
func (d *Driver) Exec(ctx context.Context, query string, args, v any) error {
	argv, err := argList(args)
	if err != nil {
		return err
	}
	var res *Result
	if v != nil {
		var ok bool
		if res, ok = v.(*Result); !ok {
			return fmt.Errorf("dialect/sql: exec into %T, expect *sql.Result", v)
		}
	}
	r, err := d.db.ExecContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: exec: %w", err)
	}
	if res != nil {
		*res = r
	}
	return nil
}

// Query runs a statement and stores its rows in v, which must be a *Rows.
// The caller closes the rows.
func (d *Driver) Query(ctx context.Context, query string, args, v any) error {
	rows, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: query into %T, expect *sql.Rows", v)
	}
	argv, err := argList(args)
	if err != nil {
		return err
	}
	r, err := d.db.QueryContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	rows.Rows = r
	return nil
}

// Close closes the connection pool.
func (d *Driver) Close() error { return d.db.Close() }

func argList(args any) ([]any, error) {
	switch args := args.(type) {
	case nil:
		return nil, nil
	case []any:
		return args, nil
	default:
		return nil, fmt.Errorf("dialect/sql: args of type %T, expect []any", args)
	}
}
