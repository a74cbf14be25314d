package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML representation of a schema graph.
//
//	types:
//	  - name: Bolt
//	    fields: [id, size]
//	    edges:
//	      - name: tire
//	        type: Tire
//	  - name: Tire
//	    fields: [id, brand]
type File struct {
	Types []TypeDef `yaml:"types"`
}

// UnmarshalYAML allows a field to be given as a plain string.
func (f *FieldDef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.Name = value.Value
		return nil
	}
	type plain FieldDef
	return value.Decode((*plain)(f))
}

// Decode reads a YAML schema from r and builds its graph.
func Decode(r io.Reader, opts ...Option) (*Graph, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("graph: decode yaml: %w", err)
	}
	return NewBuilder(opts...).Add(f.Types...).Build()
}

// LoadFile reads a YAML schema file and builds its graph.
func LoadFile(path string, opts ...Option) (*Graph, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graph: read schema file: %w", err)
	}
	return Decode(bytes.NewReader(b), opts...)
}

// MarshalYAML encodes the graph in the format accepted by Decode.
func (g *Graph) MarshalYAML() (any, error) {
	f := File{Types: make([]TypeDef, 0, len(g.Types))}
	for _, t := range g.Types {
		d := TypeDef{Name: t.Name, Table: t.Table}
		for _, k := range t.PrimaryKey {
			d.PrimaryKey = append(d.PrimaryKey, k.Name)
		}
		for _, fl := range t.Fields {
			fd := FieldDef{Name: fl.Name}
			if fl.Column != fl.Name {
				fd.Column = fl.Column
			}
			d.Fields = append(d.Fields, fd)
		}
		for _, e := range t.Edges {
			d.Edges = append(d.Edges, EdgeDef{
				Name:       e.Name,
				Type:       e.Ref.Name,
				Columns:    e.Columns,
				RefColumns: e.RefColumns,
				Optional:   e.Optional,
			})
		}
		f.Types = append(f.Types, d)
	}
	return f, nil
}
