package ancestry

import (
	"errors"
	"strings"

	"github.com/syssam/ancestry/graph"
)

// Step is one entry of a Route. Edge names the relationship property on
// Type that leads to the next step; it is empty on the last step.
type Step struct {
	Type *graph.Type
	Edge string
}

// Route is the ordered chain of types from a descendant (First) to an
// ancestor (Last). A route of a single step has zero hops.
type Route struct {
	steps []Step
}

// NewRoute builds a route through the given type names, validating that
// each adjacent pair is connected by a principal edge.
//
//	r, err := ancestry.NewRoute(g, "Bolt", "Tire", "Car")
func NewRoute(s Schema, types ...string) (*Route, error) {
	if len(types) == 0 {
		return nil, errors.New("ancestry: empty route")
	}
	steps := make([]Step, len(types))
	for i, name := range types {
		t, ok := s.Lookup(name)
		if !ok {
			return nil, NewNotMappedError(name)
		}
		steps[i].Type = t
	}
	if err := navigate(s, steps); err != nil {
		return nil, err
	}
	return &Route{steps: steps}, nil
}

// navigate resolves the edge name of every step but the last.
func navigate(s Schema, steps []Step) error {
	for i := 0; i < len(steps)-1; i++ {
		from, to := steps[i].Type, steps[i+1].Type
		name, ok := s.Navigation(from, to)
		if !ok {
			return NewNoNavigationError(from.Name, to.Name, nil)
		}
		steps[i].Edge = name
	}
	return nil
}

// First returns the start (descendant) type of the route.
func (r *Route) First() *graph.Type {
	return r.steps[0].Type
}

// Last returns the target (ancestor) type of the route.
func (r *Route) Last() *graph.Type {
	return r.steps[len(r.steps)-1].Type
}

// Steps returns a copy of the route steps.
func (r *Route) Steps() []Step {
	return append([]Step(nil), r.steps...)
}

// Hops returns the number of edges traversed by the route.
func (r *Route) Hops() int {
	return len(r.steps) - 1
}

// Types returns the type names of the route in order.
func (r *Route) Types() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.Type.Name
	}
	return names
}

// String returns a readable form of the route, e.g. "Bolt.tire -> Tire.car -> Car".
func (r *Route) String() string {
	var b strings.Builder
	for i, s := range r.steps {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(s.Type.Name)
		if s.Edge != "" {
			b.WriteByte('.')
			b.WriteString(s.Edge)
		}
	}
	return b.String()
}
