// Package lazy implements ancestry.Query over in-memory struct rows.
//
// Edges are read from struct fields by reflection:
//
//	type Bolt struct {
//		ID   int
//		Tire *Tire
//	}
//
//	q, err := ancestry.FindParent(g, "Bolt", "Car", lazy.From(bolts...))
//	cars, err := lazy.All[Car](ctx, q)
//
// Every source row yields exactly one result, nil when an edge on the way
// is nil.
package lazy
