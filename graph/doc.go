// Package graph provides the schema graph ancestor routes are computed over.
//
// Nodes are entity types (one per mapped table) and edges point from the
// type holding a foreign key to the type it references, the principal.
// Only this ancestor direction is represented.
//
// # Graph Structure
//
//	type Graph struct {
//	    Types []*Type  // All entity types in declaration order
//	}
//
//	type Type struct {
//	    Name       string    // Type identity (e.g. "Bolt")
//	    Table      string    // Storage table
//	    Fields     []*Field  // Columns, primary key first
//	    PrimaryKey []*Field  // Key fields in key order
//	    Edges      []*Edge   // Principal edges in declaration order
//	}
//
// # Building
//
// A graph is built from type definitions, from schema package definitions or from
// a YAML file:
//
//	g, err := graph.NewBuilder().Add(defs...).Build()
//	g, err := graph.NewGraph(Garage{}, Car{}, Tire{}, Bolt{})
//	g, err := graph.LoadFile("schema.yaml")
//
// Live databases are inspected by the dialect/sql/schema package.
//
// # Validation
//
// Build reports, joined in one error:
//   - duplicate type, field or edge names
//   - edges referencing unknown types
//   - foreign keys whose column count does not match the referenced key
//
// Foreign-key cycles are legal but logged as warnings.
//
// # Naming Conventions
//
//	graph.TableName("TireBrand")   // "tire_brands"
//	graph.TypeName("tire_brands")  // "TireBrand"
//
// # gonum
//
// *Graph implements gonum's graph.Directed, so gonum's path and topo
// algorithms run over it directly:
//
//	path.DijkstraFrom(bolt, g).To(car.ID())
package graph
