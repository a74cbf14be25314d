// Package edge provides fluent builders for declaring entity relationships.
//
// # Edge Types
//
//   - edge.To: the association side (no foreign key)
//   - edge.From: the back-reference; with Unique it holds the foreign key
//
// # Relationship Cardinality
//
//	// One-to-Many: Car has many Tires
//	edge.To("tires", Tire.Type)
//
//	// Many-to-One: Tire belongs to Car
//	edge.From("car", Car.Type).Ref("tires").Unique()
//
// # Edge Fields (Foreign Keys)
//
// The foreign-key column defaults to "<edge>_id" and can be bound to an
// explicit field:
//
//	field.Int("owner_id").Optional()
//	edge.From("owner", Car.Type).Field("owner_id").Unique()
//
// Only many-to-one edges take part in ancestor routing. A non-unique From
// edge (many-to-many) has no single parent and is ignored by the graph.
package edge
