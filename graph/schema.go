package graph

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/syssam/ancestry/schema"
)

// NewGraph creates a new Graph from the given schema definitions. The type
// name of each schema is its Go type name.
//
//	g, err := graph.NewGraph(Garage{}, Car{}, Tire{}, Bolt{})
func NewGraph(schemas ...schema.Interface) (*Graph, error) {
	return NewGraphWith(nil, schemas...)
}

// NewGraphWith is like NewGraph with builder options.
func NewGraphWith(opts []Option, schemas ...schema.Interface) (*Graph, error) {
	b := NewBuilder(opts...)
	var errs []error
	for _, s := range schemas {
		d, err := typeDef(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		b.Add(d)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b.Build()
}

func typeDef(s schema.Interface) (TypeDef, error) {
	rt := reflect.TypeOf(s)
	if rt == nil {
		return TypeDef{}, errors.New("graph: nil schema")
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	cfg := s.Config()
	d := TypeDef{
		Name:       rt.Name(),
		Table:      cfg.Table,
		PrimaryKey: cfg.PrimaryKey,
	}
	columns := make(map[string]string)
	for _, f := range s.Fields() {
		fd := f.Descriptor()
		d.Fields = append(d.Fields, FieldDef{Name: fd.Name, Column: fd.Column()})
		columns[fd.Name] = fd.Column()
	}
	for _, e := range s.Edges() {
		ed := e.Descriptor()
		if !ed.Holder() {
			continue
		}
		if ed.Type == "" {
			return TypeDef{}, fmt.Errorf("graph: schema %s: edge %q has no type", d.Name, ed.Name)
		}
		def := EdgeDef{Name: ed.Name, Type: ed.Type, Optional: !ed.Required}
		if ed.Field != "" {
			column, ok := columns[ed.Field]
			if !ok {
				return TypeDef{}, fmt.Errorf("graph: schema %s: edge %q references unknown field %q", d.Name, ed.Name, ed.Field)
			}
			def.Columns = []string{column}
		}
		d.Edges = append(d.Edges, def)
	}
	return d, nil
}
