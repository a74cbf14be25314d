package ancestry

import (
	"log/slog"

	"github.com/syssam/ancestry/graph"
)

// Schema is the read-only view of a schema graph used to find routes.
// *graph.Graph implements it.
type Schema interface {
	// Lookup returns the type with the given name.
	Lookup(name string) (*graph.Type, bool)
	// Principals returns the edges from t to the types it references, in
	// declaration order.
	Principals(t *graph.Type) []*graph.Edge
	// Navigation returns the relationship property leading from one type to
	// the other. The first declared edge wins.
	Navigation(from, to *graph.Type) (string, bool)
}

var _ Schema = (*graph.Graph)(nil)

// Option configures the Client.
type Option func(*Client)

// WithLogger sets the logger of the client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// Client finds ancestor routes over a schema. A Client is immutable and
// safe for concurrent use.
type Client struct {
	schema Schema
	log    *slog.Logger
}

// New returns a client over the given schema.
func New(s Schema, opts ...Option) *Client {
	c := &Client{schema: s, log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindParent turns q, a query over child entities, into a query over the
// parent entities reached through the shortest chain of foreign keys.
//
//	cars, err := client.FindParent("Bolt", "Car", bolts)
//
// Both types are resolved and the child key is checked before any search.
// When child and parent are the same type, q is returned unchanged.
func (c *Client) FindParent(child, parent string, q Query) (Query, error) {
	r, err := c.Route(child, parent)
	if err != nil {
		return nil, err
	}
	if r.Hops() == 0 {
		return q, nil
	}
	return Compose(r, q)
}

// Route returns the shortest route from child to parent.
func (c *Client) Route(child, parent string) (*Route, error) {
	from, ok := c.schema.Lookup(child)
	if !ok {
		return nil, NewNotMappedError(child)
	}
	if from.CompositeKey() {
		return nil, NewCompositeKeyError(from.Name, from.KeyColumns())
	}
	to, ok := c.schema.Lookup(parent)
	if !ok {
		return nil, NewNotMappedError(parent)
	}
	r, err := findRoute(c.schema, from, to)
	if err != nil {
		c.log.Debug("ancestry: route not found", "child", child, "parent", parent, "error", err)
		return nil, err
	}
	c.log.Debug("ancestry: route found", "child", child, "parent", parent, "hops", r.Hops(), "route", r.String())
	return r, nil
}

// FindParent is a shorthand for New(s).FindParent(child, parent, q).
func FindParent(s Schema, child, parent string, q Query) (Query, error) {
	return New(s).FindParent(child, parent, q)
}
