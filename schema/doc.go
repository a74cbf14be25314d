// Package schema provides the building blocks for declaring the entity
// schemas an ancestry graph is built from.
//
//   - [field]: field builders for entity columns
//   - [edge]: edge builders for foreign-key relationships
//
// # Quick Start
//
//	type Tire struct{ schema.Schema }
//
//	func (Tire) Fields() []schema.Field {
//	    return []schema.Field{
//	        field.String("brand"),
//	    }
//	}
//
//	func (Tire) Edges() []schema.Edge {
//	    return []schema.Edge{
//	        edge.From("car", Car.Type).Unique().Required(),
//	        edge.To("bolts", Bolt.Type),
//	    }
//	}
//
// Only unique edge.From edges (many-to-one) hold a foreign key and take
// part in ancestor routing. edge.To declares the inverse side.
//
//	g, err := graph.NewGraph(Garage{}, Car{}, Tire{}, Bolt{})
package schema
