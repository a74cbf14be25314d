package graph

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-openapi/inflect"
)

// TypeDef describes a type to be added to the graph.
type TypeDef struct {
	// Name of the type. Required.
	Name string `yaml:"name"`
	// Table defaults to the pluralized snake-case name.
	Table string `yaml:"table,omitempty"`
	// PrimaryKey holds the key field names. Defaults to ["id"].
	PrimaryKey []string `yaml:"primary_key,omitempty"`
	// Fields holds the field names. Key and foreign-key fields are added when missing.
	Fields []FieldDef `yaml:"fields,omitempty"`
	// Edges holds the principal edges of the type.
	Edges []EdgeDef `yaml:"edges,omitempty"`
}

// FieldDef describes a field. Column defaults to Name.
type FieldDef struct {
	Name   string `yaml:"name"`
	Column string `yaml:"column,omitempty"`
}

// EdgeDef describes a principal edge.
type EdgeDef struct {
	// Name of the relationship property. Required.
	Name string `yaml:"name"`
	// Type is the name of the referenced type. Required.
	Type string `yaml:"type"`
	// Columns are the foreign-key columns. Defaults to ["<name>_id"].
	Columns []string `yaml:"columns,omitempty"`
	// RefColumns are the referenced columns. Defaults to the primary key of Type.
	RefColumns []string `yaml:"ref_columns,omitempty"`
	// Optional marks the foreign key as nullable.
	Optional bool `yaml:"optional,omitempty"`
}

// Option configures the Builder.
type Option func(*Builder)

// WithLogger sets the logger used to report schema warnings.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		b.log = l
	}
}

// Builder constructs an immutable Graph from type definitions.
//
//	g, err := graph.NewBuilder().
//		Add(graph.TypeDef{Name: "Car", Edges: []graph.EdgeDef{{Name: "garage", Type: "Garage"}}}).
//		Add(graph.TypeDef{Name: "Garage"}).
//		Build()
type Builder struct {
	defs []TypeDef
	log  *slog.Logger
}

// NewBuilder returns a new graph builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{log: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add appends type definitions to the builder.
func (b *Builder) Add(defs ...TypeDef) *Builder {
	b.defs = append(b.defs, defs...)
	return b
}

// Build validates the definitions and returns the graph. All validation
// errors are reported together.
func (b *Builder) Build() (*Graph, error) {
	g := &Graph{nodes: make(map[string]*Type, len(b.defs))}
	var (
		errs  []error
		edges = make(map[*Type][]EdgeDef, len(b.defs))
	)
	for _, d := range b.defs {
		t, err := newType(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := g.nodes[t.Name]; ok {
			errs = append(errs, fmt.Errorf("graph: duplicate type %q", t.Name))
			continue
		}
		t.id = int64(len(g.Types))
		g.Types = append(g.Types, t)
		g.nodes[t.Name] = t
		edges[t] = d.Edges
	}
	// Edges are linked once all types are known, so definitions may reference types declared later.
	for _, t := range g.Types {
		if err := g.link(t, edges[t]); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if cycles := g.Cycles(); len(cycles) > 0 {
		for _, c := range cycles {
			b.log.Warn("graph: foreign-key cycle detected", "types", typeNames(c))
		}
	}
	return g, nil
}

func newType(d TypeDef) (*Type, error) {
	if d.Name == "" {
		return nil, errors.New("graph: missing type name")
	}
	t := &Type{Name: d.Name, Table: d.Table}
	if t.Table == "" {
		t.Table = TableName(d.Name)
	}
	for _, fd := range d.Fields {
		if fd.Name == "" {
			return nil, fmt.Errorf("graph: type %q: missing field name", d.Name)
		}
		if _, ok := t.Field(fd.Name); ok {
			return nil, fmt.Errorf("graph: type %q: duplicate field %q", d.Name, fd.Name)
		}
		column := fd.Column
		if column == "" {
			column = fd.Name
		}
		t.Fields = append(t.Fields, &Field{Name: fd.Name, Column: column})
	}
	pk := d.PrimaryKey
	if len(pk) == 0 {
		pk = []string{"id"}
	}
	keys := make([]*Field, 0, len(pk))
	for _, name := range pk {
		f, ok := t.Field(name)
		if !ok {
			f = &Field{Name: name, Column: name}
		}
		keys = append(keys, f)
	}
	// Primary key first, the remaining fields in declaration order.
	rest := make([]*Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		if !containsField(keys, f) {
			rest = append(rest, f)
		}
	}
	t.PrimaryKey = keys
	t.Fields = append(append([]*Field(nil), keys...), rest...)
	return t, nil
}

func (g *Graph) link(t *Type, defs []EdgeDef) error {
	var errs []error
	for _, d := range defs {
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("graph: type %q: missing edge name", t.Name))
			continue
		}
		if _, ok := t.Edge(d.Name); ok {
			errs = append(errs, fmt.Errorf("graph: type %q: duplicate edge %q", t.Name, d.Name))
			continue
		}
		ref, ok := g.nodes[d.Type]
		if !ok {
			errs = append(errs, fmt.Errorf("graph: edge %s.%s references unknown type %q", t.Name, d.Name, d.Type))
			continue
		}
		columns := d.Columns
		if len(columns) == 0 {
			columns = []string{d.Name + "_id"}
		}
		refColumns := d.RefColumns
		if len(refColumns) == 0 {
			refColumns = ref.KeyColumns()
		}
		if len(columns) != len(refColumns) {
			errs = append(errs, fmt.Errorf("graph: edge %s.%s has %d foreign-key columns but references %d", t.Name, d.Name, len(columns), len(refColumns)))
			continue
		}
		for _, c := range columns {
			if !t.hasColumn(c) {
				t.Fields = append(t.Fields, &Field{Name: c, Column: c})
			}
		}
		t.Edges = append(t.Edges, &Edge{
			Name:       d.Name,
			Owner:      t,
			Ref:        ref,
			Columns:    columns,
			RefColumns: refColumns,
			Optional:   d.Optional,
		})
	}
	return errors.Join(errs...)
}

func (t *Type) hasColumn(column string) bool {
	for _, f := range t.Fields {
		if f.Column == column {
			return true
		}
	}
	return false
}

func containsField(fs []*Field, f *Field) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

func typeNames(ts []*Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return strings.Join(names, " -> ")
}

// TableName returns the default table name of a type: its pluralized snake-case name.
//
//	TableName("TireBrand") // "tire_brands"
func TableName(typ string) string {
	return inflect.Pluralize(inflect.Underscore(typ))
}

// TypeName returns the default type name of a table: its singular camel-case name.
//
//	TypeName("tire_brands") // "TireBrand"
func TypeName(table string) string {
	return inflect.Camelize(inflect.Singularize(table))
}
