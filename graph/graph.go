package graph

import "strings"

// Graph holds the entity types of a schema and the foreign-key edges
// between them. A Graph is immutable once built and safe for concurrent use.
type Graph struct {
	// Types holds the nodes of the graph in declaration order.
	Types []*Type
	nodes map[string]*Type
}

// Type represents one mapped table.
type Type struct {
	// Name is the stable type identity (e.g. "Bolt").
	Name string
	// Table is the storage table of the type.
	Table string
	// Fields holds all columns of the type, primary key first.
	Fields []*Field
	// PrimaryKey holds the primary-key fields in key order.
	PrimaryKey []*Field
	// Edges holds the principal (ancestor-direction) edges in declaration order.
	Edges []*Edge

	id int64
}

// Field is a column of a type.
type Field struct {
	Name   string
	Column string
}

// Edge is a directed foreign-key relationship from the type holding the
// key (Owner) to the referenced principal type (Ref).
type Edge struct {
	// Name is the relationship property on the owner that yields the principal.
	Name string
	// Owner is the child type whose table holds the foreign key.
	Owner *Type
	// Ref is the referenced principal type.
	Ref *Type
	// Columns are the foreign-key columns on the owner table.
	Columns []string
	// RefColumns are the referenced columns on the principal table.
	RefColumns []string
	// Optional reports if the foreign key is nullable.
	Optional bool
}

// Lookup returns the type registered under the given name.
func (g *Graph) Lookup(name string) (*Type, bool) {
	t, ok := g.nodes[name]
	return t, ok
}

// Principals returns the edges leaving t towards the types it references.
func (g *Graph) Principals(t *Type) []*Edge {
	if t == nil {
		return nil
	}
	return t.Edges
}

// Navigation returns the name of the first declared edge that connects
// from to to in the ancestor direction.
func (g *Graph) Navigation(from, to *Type) (string, bool) {
	if from == nil || to == nil {
		return "", false
	}
	for _, e := range from.Edges {
		if e.Ref == to {
			return e.Name, true
		}
	}
	return "", false
}

// Edge returns the edge with the given name.
func (t *Type) Edge(name string) (*Edge, bool) {
	for _, e := range t.Edges {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Field returns the field with the given name.
func (t *Type) Field(name string) (*Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Columns returns the column names of all fields of the type.
func (t *Type) Columns() []string {
	columns := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		columns[i] = f.Column
	}
	return columns
}

// KeyColumns returns the column names of the primary key.
func (t *Type) KeyColumns() []string {
	columns := make([]string, len(t.PrimaryKey))
	for i, f := range t.PrimaryKey {
		columns[i] = f.Column
	}
	return columns
}

// CompositeKey reports if the primary key spans more than one field.
func (t *Type) CompositeKey() bool {
	return len(t.PrimaryKey) > 1
}

// String implements the fmt.Stringer interface.
func (t *Type) String() string {
	return t.Name
}

// String returns a readable form of the edge, e.g. "Bolt.tire(tire_id) -> Tire".
func (e *Edge) String() string {
	return e.Owner.Name + "." + e.Name + "(" + strings.Join(e.Columns, ", ") + ") -> " + e.Ref.Name
}
