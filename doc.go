// Package ancestry finds, within a relational schema linked by foreign keys,
// the shortest chain of hops from a descendant type to an ancestor type, and
// turns a lazy query over descendant rows into a lazy query over the
// ancestor rows they belong to.
//
// # Usage
//
//	g, err := graph.LoadFile("schema.yaml")
//	if err != nil {
//	    return err
//	}
//	client := ancestry.New(g, ancestry.WithLogger(logger))
//
//	// Bolt -> Tire -> Car
//	bolts, err := sqlgraph.NewQuery(g, "Bolt", sql.FieldEQ("id", 1))
//	if err != nil {
//	    return err
//	}
//	q, err := client.FindParent("Bolt", "Car", bolts)
//	if err != nil {
//	    return err
//	}
//	rows, err := q.(*sqlgraph.Query).All(ctx, drv)
//
// Routes are computed on every call with a uniform-weight Dijkstra search.
// Among routes of equal length the first discovered wins, with principal
// edges explored in declaration order, so results are deterministic.
//
// # Errors
//
// Failures are reported with typed errors, each matching a sentinel through
// errors.Is:
//
//	ancestry.IsNotMapped(err)    // unknown child or parent type
//	ancestry.IsCompositeKey(err) // child has a composite primary key
//	ancestry.IsNoRoute(err)      // parent unreachable from child
//	ancestry.IsNoNavigation(err) // a hop cannot be navigated
//
// Query implementations live in the sqlgraph package (SQL) and the lazy
// package (in-memory rows).
package ancestry
