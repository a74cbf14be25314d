package lazy

import (
	"context"
	"fmt"
	"reflect"

	"github.com/syssam/ancestry"
)

// Query is a lazy query over in-memory struct rows. Projections are
// recorded and applied only when the query is materialized with All.
type Query struct {
	typ  reflect.Type
	rows func(context.Context) ([]reflect.Value, error)
	hops int
}

var _ ancestry.Query = (*Query)(nil)

// From returns a query over the given rows. The query type is the Go type
// name of T, which must match the graph type name.
func From[T any](rows ...*T) *Query {
	return FromFunc(func(context.Context) ([]*T, error) {
		return rows, nil
	})
}

// FromFunc returns a query whose rows are loaded by fn on materialization.
func FromFunc[T any](fn func(context.Context) ([]*T, error)) *Query {
	return &Query{
		typ: reflect.TypeFor[T](),
		rows: func(ctx context.Context) ([]reflect.Value, error) {
			rows, err := fn(ctx)
			if err != nil {
				return nil, err
			}
			vs := make([]reflect.Value, len(rows))
			for i, r := range rows {
				vs[i] = reflect.ValueOf(r)
			}
			return vs, nil
		},
	}
}

// Type implements ancestry.Query.
func (q *Query) Type() string {
	return q.typ.Name()
}

// Project implements ancestry.Query.
func (q *Query) Project(edge string) (ancestry.Query, error) {
	return q.Join(edge)
}

// Join returns a query yielding the entity held by the named edge of every
// row of q. Rows with a nil edge yield nil.
func (q *Query) Join(edge string) (*Query, error) {
	get, err := Accessor(q.typ, edge)
	if err != nil {
		return nil, err
	}
	src := q.rows
	return &Query{
		typ:  get.Type,
		hops: q.hops + 1,
		rows: func(ctx context.Context) ([]reflect.Value, error) {
			rows, err := src(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]reflect.Value, len(rows))
			for i, r := range rows {
				out[i] = get.Get(r)
			}
			return out, nil
		},
	}, nil
}

// Hops returns the number of projections applied to the query.
func (q *Query) Hops() int {
	return q.hops
}

// All materializes q, which must be a *Query yielding T.
//
//	cars, err := lazy.All[Car](ctx, q)
func All[T any](ctx context.Context, q ancestry.Query) ([]*T, error) {
	lq, ok := q.(*Query)
	if !ok {
		return nil, fmt.Errorf("lazy: unexpected query type %T", q)
	}
	if want := reflect.TypeFor[T](); lq.typ != want {
		return nil, fmt.Errorf("lazy: query yields %s, not %s", lq.typ, want)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := lq.rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("lazy: load %s: %w", lq.typ.Name(), err)
	}
	out := make([]*T, len(rows))
	for i, r := range rows {
		out[i], _ = r.Interface().(*T)
	}
	return out, nil
}
