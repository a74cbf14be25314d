package sqlgraph

import (
	"context"
	"fmt"
	"strconv"

	"github.com/syssam/ancestry"
	"github.com/syssam/ancestry/dialect"
	"github.com/syssam/ancestry/dialect/sql"
	"github.com/syssam/ancestry/graph"
)

// Row is one materialized entity, keyed by field name.
type Row map[string]any

// Query is a lazy SELECT over the rows of one graph type. Projecting a
// query through an edge joins the referenced table and re-targets the
// selection to it. Nothing is executed until All or IDs is called.
type Query struct {
	typ  *graph.Type
	sel  *sql.Selector
	last *sql.SelectTable
	hops int
}

var _ ancestry.Query = (*Query)(nil)

// NewQuery returns a query over all rows of the named type, filtered by the
// given predicates.
//
//	q, err := sqlgraph.NewQuery(g, "Bolt", sql.FieldEQ("id", 1))
func NewQuery(g *graph.Graph, typ string, preds ...func(*sql.Selector)) (*Query, error) {
	t, ok := g.Lookup(typ)
	if !ok {
		return nil, fmt.Errorf("sqlgraph: unknown type %q", typ)
	}
	t0 := sql.Table(t.Table).As(alias(0))
	q := &Query{
		typ:  t,
		sel:  sql.Select(t0.Columns(t.Columns()...)...).From(t0),
		last: t0,
	}
	return q.Where(preds...), nil
}

// Where returns a copy of q filtered by the given predicates. Predicates
// apply to the fields of the type q currently yields. Field names are
// translated to their columns; names that are not fields are taken as
// column names.
func (q *Query) Where(preds ...func(*sql.Selector)) *Query {
	if len(preds) == 0 {
		return q
	}
	c := q.clone()
	for _, p := range preds {
		scope := sql.Select().From(c.last).Resolve(c.column)
		p(scope)
		if w := scope.P(); w != nil {
			c.sel.Where(w)
		}
	}
	return c
}

// column returns the column storing the named field of the current type.
func (q *Query) column(name string) string {
	if f, ok := q.typ.Field(name); ok {
		return f.Column
	}
	return name
}

// Type implements ancestry.Query.
func (q *Query) Type() string {
	return q.typ.Name
}

// Project implements ancestry.Query.
func (q *Query) Project(edge string) (ancestry.Query, error) {
	return q.Join(edge)
}

// Join returns a query yielding, for every row of q, the entity referenced
// through the named edge. A LEFT JOIN is used so that every row of q yields
// exactly one row, empty when the foreign key is NULL.
func (q *Query) Join(edge string) (*Query, error) {
	e, ok := q.typ.Edge(edge)
	if !ok {
		return nil, fmt.Errorf("sqlgraph: type %s has no edge %q", q.typ.Name, edge)
	}
	c := q.clone()
	t := sql.Table(e.Ref.Table).As(alias(q.hops + 1))
	c.sel.LeftJoin(t)
	for i, column := range e.Columns {
		c.sel.OnP(sql.ColumnsEQ(q.last.C(column), t.C(e.RefColumns[i])))
	}
	c.sel.Select(t.Columns(e.Ref.Columns()...)...)
	c.typ, c.last, c.hops = e.Ref, t, q.hops+1
	return c, nil
}

// Hops returns the number of joins applied to the query.
func (q *Query) Hops() int {
	return q.hops
}

// Selector returns a copy of the underlying SELECT statement.
func (q *Query) Selector() *sql.Selector {
	return q.sel.Clone()
}

// SQL renders the statement for the given dialect.
func (q *Query) SQL(dialectName string) (string, []any) {
	s := q.sel.Clone()
	s.SetDialect(dialectName)
	return s.Query()
}

// All executes the query and returns its rows.
func (q *Query) All(ctx context.Context, drv dialect.Driver) ([]Row, error) {
	query, args := q.SQL(drv.Dialect())
	rows := &sql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("sqlgraph: query %s: %w", q.typ.Name, err)
	}
	defer rows.Close()
	var (
		out    []Row
		fields = q.typ.Fields
	)
	for rows.Next() {
		values := make([]any, len(fields))
		dest := make([]any, len(fields))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("sqlgraph: scan %s: %w", q.typ.Name, err)
		}
		row := make(Row, len(fields))
		for i, f := range fields {
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}
			row[f.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlgraph: read %s: %w", q.typ.Name, err)
	}
	return out, nil
}

// IDs executes the query and returns the primary key of every row, in row
// order. Composite keys are returned as []any. Rows reached through a NULL
// foreign key yield nil.
func (q *Query) IDs(ctx context.Context, drv dialect.Driver) ([]any, error) {
	rows, err := q.All(ctx, drv)
	if err != nil {
		return nil, err
	}
	ids := make([]any, len(rows))
	for i, r := range rows {
		ids[i] = q.key(r)
	}
	return ids, nil
}

func (q *Query) key(r Row) any {
	if len(q.typ.PrimaryKey) == 1 {
		return r[q.typ.PrimaryKey[0].Name]
	}
	parts := make([]any, len(q.typ.PrimaryKey))
	for i, f := range q.typ.PrimaryKey {
		parts[i] = r[f.Name]
	}
	return parts
}

func (q *Query) clone() *Query {
	c := *q
	c.sel = q.sel.Clone()
	return &c
}

func alias(i int) string {
	return "t" + strconv.Itoa(i)
}
