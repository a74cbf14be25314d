// Package sql provides the SQL building primitives and driver used to render
// and execute ancestor queries.
//
// # Builder Types
//
//   - Builder: low-level SQL string builder with identifier quoting and placeholders
//   - Selector: SELECT builder with joins, predicates, ordering and limits
//   - SelectTable: table reference with alias and qualified column helpers
//
// # Dialect Support
//
// Identifier quoting and placeholders follow the dialect set on the builder:
//
//	s := sql.Select("id").From(sql.Table("cars"))
//	s.Query() // SELECT `id` FROM `cars`
//
//	s.SetDialect(dialect.Postgres)
//	s.Query() // SELECT "id" FROM "cars"
//
// # Predicates
//
//	sql.EQ("name", "john")           // name = ?
//	sql.In("status", "a", "b")       // status IN (?, ?)
//	sql.IsNull("deleted_at")         // deleted_at IS NULL
//	sql.ColumnsEQ("t0.car_id", "t1.id")
//
// Selector predicates (func(*Selector)) filter on the root table of a query:
//
//	sql.FieldEQ("id", 1)
//	sql.IntField[func(*sql.Selector)]("id").In(1, 2, 3)
//
// # Joins
//
//	t0, t1 := sql.Table("tires").As("t0"), sql.Table("cars").As("t1")
//	sql.Select(t1.C("*")).
//	    From(t0).
//	    LeftJoin(t1).On(t0.C("car_id"), t1.C("id"))
package sql
