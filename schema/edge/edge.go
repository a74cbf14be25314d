package edge

import "reflect"

// Descriptor holds the edge configuration.
type Descriptor struct {
	Name     string // edge name.
	Type     string // referenced type name.
	Ref      string // name of the inverse edge on the referenced type.
	Field    string // foreign-key field holding the edge.
	Inverse  bool   // declared with From.
	Unique   bool   // at most one referenced entity.
	Required bool   // foreign key is not nullable.
	Comment  string // edge comment.
}

// Builder is the builder for edges.
type Builder struct {
	desc *Descriptor
}

// To defines an association edge between two types. To edges do not
// hold the foreign key of the relationship.
//
//	edge.To("bolts", Bolt.Type)
//	edge.To("bolts", Bolt{})
func To(name string, t any) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: typ(t)}}
}

// From represents a reversed-edge between two types that has a back-reference
// to its source edge. A unique From edge is a many-to-one relationship whose
// foreign key resides in the declaring type's table.
//
//	edge.From("tire", Tire.Type).Ref("bolts").Field("tire_id").Unique()
func From(name string, t any) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: typ(t), Inverse: true}}
}

// Unique sets the edge type to be unique.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// Required indicates that this edge is a required field on creation.
func (b *Builder) Required() *Builder {
	b.desc.Required = true
	return b
}

// Ref sets the referenced edge of this inverse edge.
func (b *Builder) Ref(ref string) *Builder {
	b.desc.Ref = ref
	return b
}

// Field is used to bind an edge (with a foreign-key) to a field in the schema.
// It defaults to "<edge>_id".
func (b *Builder) Field(f string) *Builder {
	b.desc.Field = f
	return b
}

// Comment used to put annotations on the schema.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the schema.Edge interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

// Holder reports if the edge holds a foreign key to a single referenced
// entity (an inverse unique edge).
func (d *Descriptor) Holder() bool {
	return d.Inverse && d.Unique
}

// typ returns the type name of a schema value (e.g. Tire{}) or of a schema
// method expression (e.g. Tire.Type).
func typ(t any) string {
	rt := reflect.TypeOf(t)
	switch {
	case rt == nil:
		return ""
	case rt.Kind() == reflect.Func && rt.NumIn() > 0:
		return indirect(rt.In(0)).Name()
	case indirect(rt).Kind() == reflect.Struct:
		return indirect(rt).Name()
	default:
		return ""
	}
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
