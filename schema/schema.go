package schema

import (
	"github.com/syssam/ancestry/schema/edge"
	"github.com/syssam/ancestry/schema/field"
)

type (
	// Interface is implemented by entity schemas.
	Interface interface {
		// Type is a dummy method used to reference the schema in edge builders (e.g. Tire.Type).
		Type()
		// Fields returns the fields of the schema.
		Fields() []Field
		// Edges returns the edges of the schema.
		Edges() []Edge
		// Config returns the storage configuration of the schema.
		Config() Config
	}

	// Field is the interface implemented by field builders.
	Field interface {
		Descriptor() *field.Descriptor
	}

	// Edge is the interface implemented by edge builders.
	Edge interface {
		Descriptor() *edge.Descriptor
	}

	// Config is the storage configuration of a schema.
	Config struct {
		// Table overrides the default table name (the pluralized snake-case type name).
		Table string
		// PrimaryKey lists the key fields. Defaults to "id".
		PrimaryKey []string
	}
)

// Schema is the default implementation of Interface. It is embedded by
// user schemas:
//
//	type Tire struct{ schema.Schema }
type Schema struct{}

// Type is a dummy method used to reference the schema in edge builders.
func (Schema) Type() {}

// Fields of the schema.
func (Schema) Fields() []Field { return nil }

// Edges of the schema.
func (Schema) Edges() []Edge { return nil }

// Config of the schema.
func (Schema) Config() Config { return Config{} }

var _ Interface = (*Schema)(nil)
