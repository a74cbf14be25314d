package sql

import (
	"strconv"
	"strings"

	"github.com/syssam/ancestry/dialect"
)

// Querier wraps the basic Query method that is implemented
// by the different builders in this file.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// Builder is the base query builder for the sql dsl.
type Builder struct {
	sb      *strings.Builder
	dialect string
	args    []any
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string {
	return b.dialect
}

// SetDialect sets the builder dialect. It's used for garnering dialect specific queries.
func (b *Builder) SetDialect(dialect string) {
	b.dialect = dialect
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteString(s)
	return b
}

// WriteByte appends a byte to the builder.
func (b *Builder) WriteByte(c byte) *Builder {
	if b.sb == nil {
		b.sb = &strings.Builder{}
	}
	b.sb.WriteByte(c)
	return b
}

// Quote quotes the given identifier with the characters based
// on the configured dialect. It defaults to "`".
func (b *Builder) Quote(ident string) string {
	if b.postgres() {
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}

// Ident appends the given string as an identifier. Qualified names
// ("t0.id") are quoted part by part and "*" is left as is. Expressions
// and already-quoted identifiers are written raw.
func (b *Builder) Ident(s string) *Builder {
	switch {
	case s == "*":
		b.WriteString(s)
	case isRaw(s):
		b.WriteString(s)
	default:
		for i, part := range strings.Split(s, ".") {
			if i > 0 {
				b.WriteByte('.')
			}
			if part == "*" {
				b.WriteString(part)
			} else {
				b.WriteString(b.Quote(part))
			}
		}
	}
	return b
}

// IdentComma calls Ident on all arguments and adds a comma between them.
func (b *Builder) IdentComma(s ...string) *Builder {
	for i := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(s[i])
	}
	return b
}

// Arg appends an input argument to the builder and writes its placeholder.
func (b *Builder) Arg(a any) *Builder {
	b.args = append(b.args, a)
	if b.postgres() {
		b.WriteString("$" + strconv.Itoa(len(b.args)))
	} else {
		b.WriteByte('?')
	}
	return b
}

// Args appends a list of arguments to the builder, separated by commas.
func (b *Builder) Args(a ...any) *Builder {
	for i := range a {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Arg(a[i])
	}
	return b
}

// String returns the accumulated string.
func (b *Builder) String() string {
	if b.sb == nil {
		return ""
	}
	return b.sb.String()
}

func (b *Builder) postgres() bool {
	return b.dialect == dialect.Postgres
}

func isRaw(s string) bool {
	if s == "" {
		return true
	}
	switch s[0] {
	case '`', '"':
		return true
	}
	return strings.ContainsAny(s, "( ")
}

// SelectTable is a table selector.
type SelectTable struct {
	as     string
	name   string
	schema string
}

// Table returns a new table selector.
//
//	t1 := Table("users").As("u")
//	return Select(t1.C("name"))
func Table(name string) *SelectTable {
	return &SelectTable{name: name}
}

// Schema sets the schema name of the table.
func (s *SelectTable) Schema(name string) *SelectTable {
	s.schema = name
	return s
}

// As adds the AS clause to the table selector.
func (s *SelectTable) As(alias string) *SelectTable {
	s.as = alias
	return s
}

// Name returns the table name.
func (s *SelectTable) Name() string {
	return s.name
}

// C returns a formatted string for the table column.
func (s *SelectTable) C(column string) string {
	return s.ref() + "." + column
}

// Columns returns a list of formatted strings for the table columns.
func (s *SelectTable) Columns(columns ...string) []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, s.C(c))
	}
	return names
}

func (s *SelectTable) ref() string {
	if s.as != "" {
		return s.as
	}
	if s.schema != "" {
		return s.schema + "." + s.name
	}
	return s.name
}

func (s *SelectTable) render(b *Builder) {
	if s.schema != "" {
		b.Ident(s.schema).WriteByte('.')
	}
	b.Ident(s.name)
	if s.as != "" {
		b.WriteString(" AS ").Ident(s.as)
	}
}

// join table option.
type join struct {
	kind  string
	table *SelectTable
	on    *Predicate
}

// Selector is a builder for the `SELECT` statement.
type Selector struct {
	Builder
	columns  []string
	from     *SelectTable
	joins    []join
	where    *Predicate
	order    []string
	limit    *int
	distinct bool
	resolve  func(string) string
}

// Select returns a new selector for the `SELECT` statement.
//
//	t1 := Table("users").As("u")
//	t2 := Select().From(Table("groups")).Where(EQ("user_id", 10)).As("g")
//	return Select(t1.C("id"), t2.C("name")).
//			From(t1).
//			Join(t2).
//			On(t1.C("id"), t2.C("user_id"))
func Select(columns ...string) *Selector {
	return (&Selector{}).Select(columns...)
}

// Select changes the columns selection of the SELECT statement.
func (s *Selector) Select(columns ...string) *Selector {
	s.columns = append(s.columns[:0:0], columns...)
	return s
}

// From sets the source of `FROM` clause.
func (s *Selector) From(t *SelectTable) *Selector {
	s.from = t
	return s
}

// Table returns the selected table.
func (s *Selector) Table() *SelectTable {
	return s.from
}

// Join appends a `JOIN` clause to the statement.
func (s *Selector) Join(t *SelectTable) *Selector {
	return s.join("JOIN", t)
}

// LeftJoin appends a `LEFT JOIN` clause to the statement.
func (s *Selector) LeftJoin(t *SelectTable) *Selector {
	return s.join("LEFT JOIN", t)
}

func (s *Selector) join(kind string, t *SelectTable) *Selector {
	s.joins = append(s.joins, join{kind: kind, table: t})
	return s
}

// Joins returns the number of joins in the statement.
func (s *Selector) Joins() int {
	return len(s.joins)
}

// On sets the `ON` clause for the `JOIN` operation.
func (s *Selector) On(c1, c2 string) *Selector {
	return s.OnP(ColumnsEQ(c1, c2))
}

// OnP sets or extends the `ON` predicate for the last `JOIN` operation.
func (s *Selector) OnP(p *Predicate) *Selector {
	if len(s.joins) == 0 {
		return s
	}
	j := &s.joins[len(s.joins)-1]
	if j.on == nil {
		j.on = p
	} else {
		j.on = And(j.on, p)
	}
	return s
}

// Where sets or appends the given predicate to the statement.
func (s *Selector) Where(p *Predicate) *Selector {
	if s.where == nil {
		s.where = p
	} else {
		s.where = And(s.where, p)
	}
	return s
}

// P returns the predicate of the selector.
func (s *Selector) P() *Predicate {
	return s.where
}

// Distinct adds the DISTINCT keyword to the `SELECT` statement.
func (s *Selector) Distinct() *Selector {
	s.distinct = true
	return s
}

// OrderBy appends the `ORDER BY` clause to the `SELECT` statement.
func (s *Selector) OrderBy(columns ...string) *Selector {
	s.order = append(s.order, columns...)
	return s
}

// Limit adds the `LIMIT` clause to the `SELECT` statement.
func (s *Selector) Limit(limit int) *Selector {
	s.limit = &limit
	return s
}

// Resolve sets the function C uses to map names to column names before
// qualifying them, for example from field names to the columns storing them.
func (s *Selector) Resolve(fn func(string) string) *Selector {
	s.resolve = fn
	return s
}

// C returns a formatted string for a selected column from this statement.
func (s *Selector) C(column string) string {
	if s.resolve != nil {
		column = s.resolve(column)
	}
	if s.from == nil {
		return column
	}
	return s.from.C(column)
}

// Columns returns a list of formatted strings for a selected columns from this statement.
func (s *Selector) Columns(columns ...string) []string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, s.C(c))
	}
	return names
}

// Clone returns a duplicate of the selector, including all associated steps. It can be
// used to prepare common SELECT statements and use them differently after the clone is made.
func (s *Selector) Clone() *Selector {
	c := *s
	c.Builder = Builder{dialect: s.dialect}
	c.columns = append([]string(nil), s.columns...)
	c.joins = append([]join(nil), s.joins...)
	c.order = append([]string(nil), s.order...)
	return &c
}

// Query returns query representation of a `SELECT` statement.
func (s *Selector) Query() (string, []any) {
	b := &Builder{dialect: s.dialect}
	b.WriteString("SELECT ")
	if s.distinct {
		b.WriteString("DISTINCT ")
	}
	if len(s.columns) > 0 {
		b.IdentComma(s.columns...)
	} else {
		b.WriteByte('*')
	}
	if s.from != nil {
		b.WriteString(" FROM ")
		s.from.render(b)
	}
	for _, j := range s.joins {
		b.WriteString(" " + j.kind + " ")
		j.table.render(b)
		if j.on != nil {
			b.WriteString(" ON ")
			j.on.render(b)
		}
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		s.where.render(b)
	}
	if len(s.order) > 0 {
		b.WriteString(" ORDER BY ").IdentComma(s.order...)
	}
	if s.limit != nil {
		b.WriteString(" LIMIT " + strconv.Itoa(*s.limit))
	}
	return b.String(), b.args
}

// Predicate is a where predicate. Its parts are rendered into the
// statement builder at query time, so placeholders are numbered in
// the order they appear in the final statement.
type Predicate struct {
	fns []func(*Builder)
}

// P creates a new predicate.
//
//	P().EQ("name", "a8m").And().EQ("age", 30)
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// Append appends a new function to the predicate callbacks.
func (p *Predicate) Append(f func(*Builder)) *Predicate {
	p.fns = append(p.fns, f)
	return p
}

// Query returns query representation of a predicate.
func (p *Predicate) Query() (string, []any) {
	b := &Builder{}
	p.render(b)
	return b.String(), b.args
}

func (p *Predicate) render(b *Builder) {
	for _, f := range p.fns {
		f(b)
	}
}

func binary(col, op string, v any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" " + op + " ").Arg(v)
	})
}

// EQ returns a "=" predicate.
func EQ(col string, value any) *Predicate {
	return binary(col, "=", value)
}

// NEQ returns a "<>" predicate.
func NEQ(col string, value any) *Predicate {
	return binary(col, "<>", value)
}

// GT returns a ">" predicate.
func GT(col string, value any) *Predicate {
	return binary(col, ">", value)
}

// GTE returns a ">=" predicate.
func GTE(col string, value any) *Predicate {
	return binary(col, ">=", value)
}

// LT returns a "<" predicate.
func LT(col string, value any) *Predicate {
	return binary(col, "<", value)
}

// LTE returns a "<=" predicate.
func LTE(col string, value any) *Predicate {
	return binary(col, "<=", value)
}

// In returns the `IN` predicate. An empty list never matches.
func In(col string, args ...any) *Predicate {
	return P(func(b *Builder) {
		if len(args) == 0 {
			b.WriteString("FALSE")
			return
		}
		b.Ident(col).WriteString(" IN (").Args(args...).WriteByte(')')
	})
}

// NotIn returns the `NOT IN` predicate. An empty list always matches.
func NotIn(col string, args ...any) *Predicate {
	return P(func(b *Builder) {
		if len(args) == 0 {
			b.WriteString("TRUE")
			return
		}
		b.Ident(col).WriteString(" NOT IN (").Args(args...).WriteByte(')')
	})
}

// IsNull returns the `IS NULL` predicate.
func IsNull(col string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IS NULL")
	})
}

// NotNull returns the `IS NOT NULL` predicate.
func NotNull(col string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IS NOT NULL")
	})
}

// ColumnsEQ appends a "=" predicate between 2 columns.
func ColumnsEQ(col1, col2 string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col1).WriteString(" = ").Ident(col2)
	})
}

// And combines all given predicates with AND between them.
func And(preds ...*Predicate) *Predicate {
	return combine("AND", preds)
}

// Or combines all given predicates with OR between them.
func Or(preds ...*Predicate) *Predicate {
	return combine("OR", preds)
}

// Not wraps the given predicate with the not predicate.
//
//	Not(Or(EQ("name", "foo"), EQ("name", "bar")))
func Not(pred *Predicate) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("NOT (")
		pred.render(b)
		b.WriteByte(')')
	})
}

func combine(op string, preds []*Predicate) *Predicate {
	if len(preds) == 1 {
		return preds[0]
	}
	return P(func(b *Builder) {
		for i, p := range preds {
			if i > 0 {
				b.WriteString(" " + op + " ")
			}
			b.WriteByte('(')
			p.render(b)
			b.WriteByte(')')
		}
	})
}
