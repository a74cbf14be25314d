package schema

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"
	"github.com/go-openapi/inflect"

	"github.com/syssam/ancestry/dialect"
	"github.com/syssam/ancestry/dialect/sql"
	"github.com/syssam/ancestry/graph"
)

type (
	// InspectOption configures Inspect.
	InspectOption func(*inspectConfig)

	inspectConfig struct {
		schemaName string
		typeName   func(table string) string
		exclude    []string
		log        *slog.Logger
	}
)

// WithSchemaName sets the database schema to inspect. By default the
// current schema of the connection is used.
func WithSchemaName(name string) InspectOption {
	return func(c *inspectConfig) {
		c.schemaName = name
	}
}

// WithTypeNamer sets the function mapping table names to type names.
// Defaults to graph.TypeName.
func WithTypeNamer(fn func(table string) string) InspectOption {
	return func(c *inspectConfig) {
		c.typeName = fn
	}
}

// WithExcludeTables skips the given tables. Foreign keys referencing them
// are dropped.
func WithExcludeTables(tables ...string) InspectOption {
	return func(c *inspectConfig) {
		c.exclude = append(c.exclude, tables...)
	}
}

// WithLogger sets the logger used to report validation warnings.
func WithLogger(l *slog.Logger) InspectOption {
	return func(c *inspectConfig) {
		c.log = l
	}
}

// Inspect reads the tables and foreign keys of a live database and builds
// the schema graph over them. Tables without a primary key are skipped.
//
//	drv, err := sql.Open(dialect.Postgres, dsn)
//	g, err := schema.Inspect(ctx, drv, schema.WithSchemaName("public"))
func Inspect(ctx context.Context, drv *sql.Driver, opts ...InspectOption) (*graph.Graph, error) {
	cfg := &inspectConfig{typeName: graph.TypeName, log: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	inspector, err := atlasDriver(drv)
	if err != nil {
		return nil, err
	}
	s, err := inspector.InspectSchema(ctx, cfg.schemaName, &schema.InspectOptions{Mode: schema.InspectTables})
	if err != nil {
		return nil, fmt.Errorf("dialect/sql/schema: inspect schema: %w", err)
	}
	tables := make([]*schema.Table, 0, len(s.Tables))
	for _, t := range s.Tables {
		if !slices.Contains(cfg.exclude, t.Name) {
			tables = append(tables, t)
		}
	}
	result := Validate(tables)
	for _, e := range result.Errors {
		cfg.log.WarnContext(ctx, "dialect/sql/schema: skipping table", "table", e.Table, "reason", e.Message)
	}
	for _, w := range result.Warnings {
		cfg.log.WarnContext(ctx, "dialect/sql/schema: "+w.Message, "table", w.Table, "columns", w.Column)
	}
	return typeDefs(tables, cfg).Build()
}

func atlasDriver(drv *sql.Driver) (migrate.Driver, error) {
	var (
		d   migrate.Driver
		err error
	)
	switch drv.Dialect() {
	case dialect.SQLite:
		d, err = sqlite.Open(drv.DB())
	case dialect.Postgres:
		d, err = postgres.Open(drv.DB())
	case dialect.MySQL:
		d, err = mysql.Open(drv.DB())
	default:
		return nil, fmt.Errorf("dialect/sql/schema: unsupported dialect %q", drv.Dialect())
	}
	if err != nil {
		return nil, fmt.Errorf("dialect/sql/schema: open atlas driver: %w", err)
	}
	return d, nil
}

// typeDefs maps the inspected tables to graph definitions.
func typeDefs(tables []*schema.Table, cfg *inspectConfig) *graph.Builder {
	names := make(map[string]string, len(tables))
	for _, t := range tables {
		if t.PrimaryKey != nil && len(t.PrimaryKey.Parts) > 0 {
			names[t.Name] = cfg.typeName(t.Name)
		}
	}
	b := graph.NewBuilder(graph.WithLogger(cfg.log))
	for _, t := range tables {
		name, ok := names[t.Name]
		if !ok {
			continue
		}
		d := graph.TypeDef{Name: name, Table: t.Name}
		for _, p := range t.PrimaryKey.Parts {
			if p.C != nil {
				d.PrimaryKey = append(d.PrimaryKey, p.C.Name)
			}
		}
		for _, c := range t.Columns {
			d.Fields = append(d.Fields, graph.FieldDef{Name: c.Name})
		}
		for _, fk := range t.ForeignKeys {
			if fk.RefTable == nil {
				continue
			}
			ref, ok := names[fk.RefTable.Name]
			if !ok {
				continue
			}
			e := graph.EdgeDef{Name: edgeName(fk, d.Edges), Type: ref}
			for _, c := range fk.Columns {
				e.Columns = append(e.Columns, c.Name)
				if c.Type != nil && c.Type.Null {
					e.Optional = true
				}
			}
			for _, c := range fk.RefColumns {
				e.RefColumns = append(e.RefColumns, c.Name)
			}
			d.Edges = append(d.Edges, e)
		}
		b.Add(d)
	}
	return b
}

// edgeName derives the relationship property of a foreign key: the column
// name without its "_id" suffix, or the singular referenced table name. On
// collision the column names are used, suffixed with a number while taken.
func edgeName(fk *schema.ForeignKey, edges []graph.EdgeDef) string {
	var name string
	switch {
	case len(fk.Columns) == 1 && strings.HasSuffix(fk.Columns[0].Name, "_id") && fk.Columns[0].Name != "_id":
		name = strings.TrimSuffix(fk.Columns[0].Name, "_id")
	default:
		name = inflect.Singularize(fk.RefTable.Name)
	}
	taken := func(n string) bool {
		return slices.ContainsFunc(edges, func(e graph.EdgeDef) bool { return e.Name == n })
	}
	if !taken(name) {
		return name
	}
	name = strings.ReplaceAll(fkColumns(fk), ",", "_")
	for i := 2; taken(name); i++ {
		name = strings.ReplaceAll(fkColumns(fk), ",", "_") + "_" + strconv.Itoa(i)
	}
	return name
}
