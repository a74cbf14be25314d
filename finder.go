package ancestry

import (
	"slices"

	"github.com/tidwall/btree"

	"github.com/syssam/ancestry/graph"
)

// visit is the search state of one node.
type visit struct {
	cost     int
	seq      int
	explored bool
	prev     *graph.Type
}

// pending is a frontier entry. Entries are ordered by cost, then by
// discovery order, so that equal-cost ties go to the first discovered node.
type pending struct {
	cost int
	seq  int
	typ  *graph.Type
}

func pendingLess(a, b pending) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.seq < b.seq
}

// findRoute runs a uniform-weight Dijkstra search from child to parent over
// the principal edges of s. The search stops as soon as parent is reached.
func findRoute(s Schema, child, parent *graph.Type) (*Route, error) {
	if child == parent {
		return &Route{steps: []Step{{Type: child}}}, nil
	}
	var (
		seq      = 1
		visits   = map[*graph.Type]*visit{child: {}}
		frontier = btree.NewBTreeG(pendingLess)
	)
	frontier.Set(pending{typ: child})
	for {
		p, ok := frontier.PopMin()
		if !ok {
			return nil, NewNoRouteError(child.Name, parent.Name)
		}
		cur := visits[p.typ]
		cur.explored = true
		for _, e := range s.Principals(p.typ) {
			next, cost := e.Ref, cur.cost+1
			v, seen := visits[next]
			switch {
			case !seen:
				v = &visit{cost: cost, seq: seq, prev: p.typ}
				visits[next] = v
				seq++
				frontier.Set(pending{cost: v.cost, seq: v.seq, typ: next})
			case !v.explored && cost < v.cost:
				frontier.Delete(pending{cost: v.cost, seq: v.seq, typ: next})
				v.cost, v.prev = cost, p.typ
				frontier.Set(pending{cost: v.cost, seq: v.seq, typ: next})
			}
			if next == parent {
				return reconstruct(s, visits, child, parent)
			}
		}
	}
}

// reconstruct walks the prev links back from parent and resolves the edge
// name of every hop.
func reconstruct(s Schema, visits map[*graph.Type]*visit, child, parent *graph.Type) (*Route, error) {
	var steps []Step
	for t := parent; t != child; t = visits[t].prev {
		steps = append(steps, Step{Type: t})
	}
	steps = append(steps, Step{Type: child})
	slices.Reverse(steps)
	if err := navigate(s, steps); err != nil {
		return nil, err
	}
	return &Route{steps: steps}, nil
}
