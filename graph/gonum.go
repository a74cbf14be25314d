package graph

import (
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/topo"
)

// The graph exposes itself as a gonum directed graph, with types as nodes
// and one edge per referenced type, so gonum's algorithms run over it.
var (
	_ gonum.Directed = (*Graph)(nil)
	_ gonum.Node     = (*Type)(nil)
	_ gonum.Edge     = (*Edge)(nil)
)

// ID implements gonum's graph.Node. IDs follow declaration order.
func (t *Type) ID() int64 { return t.id }

// From implements gonum's graph.Edge.
func (e *Edge) From() gonum.Node { return e.Owner }

// To implements gonum's graph.Edge.
func (e *Edge) To() gonum.Node { return e.Ref }

// ReversedEdge implements gonum's graph.Edge.
func (e *Edge) ReversedEdge() gonum.Edge { return reversed{e} }

type reversed struct{ *Edge }

func (r reversed) From() gonum.Node { return r.Ref }
func (r reversed) To() gonum.Node { return r.Owner }
func (r reversed) ReversedEdge() gonum.Edge { return r.Edge }

// Node implements gonum's graph.Graph.
func (g *Graph) Node(id int64) gonum.Node {
	if t := g.byID(id); t != nil {
		return t
	}
	return nil
}

// Nodes implements gonum's graph.Graph.
func (g *Graph) Nodes() gonum.Nodes {
	if len(g.Types) == 0 {
		return gonum.Empty
	}
	nodes := make([]gonum.Node, len(g.Types))
	for i, t := range g.Types {
		nodes[i] = t
	}
	return iterator.NewOrderedNodes(nodes)
}

// From implements gonum's graph.Graph. It returns the types referenced by
// the type with the given id.
func (g *Graph) From(id int64) gonum.Nodes {
	t := g.byID(id)
	if t == nil {
		return gonum.Empty
	}
	var nodes []gonum.Node
	seen := make(map[*Type]bool)
	for _, e := range t.Edges {
		if !seen[e.Ref] {
			seen[e.Ref] = true
			nodes = append(nodes, e.Ref)
		}
	}
	if len(nodes) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(nodes)
}

// To implements gonum's graph.Directed. It returns the types referencing
// the type with the given id.
func (g *Graph) To(id int64) gonum.Nodes {
	t := g.byID(id)
	if t == nil {
		return gonum.Empty
	}
	var nodes []gonum.Node
	for _, o := range g.Types {
		if _, ok := g.Navigation(o, t); ok {
			nodes = append(nodes, o)
		}
	}
	if len(nodes) == 0 {
		return gonum.Empty
	}
	return iterator.NewOrderedNodes(nodes)
}

// HasEdgeBetween implements gonum's graph.Graph.
func (g *Graph) HasEdgeBetween(xid, yid int64) bool {
	return g.HasEdgeFromTo(xid, yid) || g.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo implements gonum's graph.Directed.
func (g *Graph) HasEdgeFromTo(uid, vid int64) bool {
	_, ok := g.Navigation(g.byID(uid), g.byID(vid))
	return ok
}

// Edge implements gonum's graph.Graph. It returns the first declared edge
// from u to v, or nil.
func (g *Graph) Edge(uid, vid int64) gonum.Edge {
	u, v := g.byID(uid), g.byID(vid)
	if u == nil || v == nil {
		return nil
	}
	for _, e := range u.Edges {
		if e.Ref == v {
			return e
		}
	}
	return nil
}

// Cycles returns the foreign-key cycles of the graph, including
// self-references.
func (g *Graph) Cycles() [][]*Type {
	var cycles [][]*Type
	for _, c := range topo.DirectedCyclesIn(g) {
		ts := make([]*Type, len(c))
		for i, n := range c {
			ts[i] = n.(*Type)
		}
		cycles = append(cycles, ts)
	}
	return cycles
}

func (g *Graph) byID(id int64) *Type {
	if id < 0 || id >= int64(len(g.Types)) {
		return nil
	}
	return g.Types[id]
}
