package ancestry

import "fmt"

// Query is a lazy, composable query over the rows of one type. Project
// returns a query yielding, for every row, the entity reached through the
// named relationship property. Implementations must not evaluate anything
// when projecting.
type Query interface {
	// Type returns the name of the type the query yields.
	Type() string
	// Project navigates the query through the named edge.
	Project(edge string) (Query, error)
}

// Compose applies one projection per hop of r to q, in route order. A route
// of zero hops returns q unchanged.
func Compose(r *Route, q Query) (Query, error) {
	if r.Hops() == 0 {
		return q, nil
	}
	if start := r.First().Name; q.Type() != start {
		return nil, fmt.Errorf("%w: query yields %s, route starts at %s", ErrQueryType, q.Type(), start)
	}
	for i := 0; i < r.Hops(); i++ {
		from, to := r.steps[i], r.steps[i+1]
		next, err := q.Project(from.Edge)
		if err != nil {
			return nil, NewNoNavigationError(from.Type.Name, to.Type.Name, err)
		}
		if next == nil || next.Type() != to.Type.Name {
			return nil, NewNoNavigationError(from.Type.Name, to.Type.Name, fmt.Errorf("edge %q does not yield %s", from.Edge, to.Type.Name))
		}
		q = next
	}
	return q, nil
}
