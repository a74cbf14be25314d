package graph_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/syssam/ancestry/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/topo"
	"gopkg.in/yaml.v3"
)

// garage returns the Garage 1-* Car 1-* Tire 1-* Bolt graph.
func garage(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.NewBuilder().
		Add(
			graph.TypeDef{
				Name:   "Bolt",
				Fields: []graph.FieldDef{{Name: "size"}},
				Edges:  []graph.EdgeDef{{Name: "tire", Type: "Tire"}},
			},
			graph.TypeDef{
				Name:   "Tire",
				Fields: []graph.FieldDef{{Name: "brand"}},
				Edges:  []graph.EdgeDef{{Name: "car", Type: "Car"}},
			},
			graph.TypeDef{
				Name:   "Car",
				Fields: []graph.FieldDef{{Name: "model"}},
				Edges:  []graph.EdgeDef{{Name: "garage", Type: "Garage", Optional: true}},
			},
			graph.TypeDef{Name: "Garage", Fields: []graph.FieldDef{{Name: "name"}}},
		).
		Build()
	require.NoError(t, err)
	return g
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	g := garage(t)
	require.Len(t, g.Types, 4)

	bolt, ok := g.Lookup("Bolt")
	require.True(t, ok)
	assert.Equal(t, "bolts", bolt.Table)
	assert.Equal(t, []string{"id", "size", "tire_id"}, bolt.Columns())
	assert.Equal(t, []string{"id"}, bolt.KeyColumns())
	assert.False(t, bolt.CompositeKey())

	tire, ok := g.Lookup("Tire")
	require.True(t, ok)
	edges := g.Principals(bolt)
	require.Len(t, edges, 1)
	assert.Equal(t, "tire", edges[0].Name)
	assert.Equal(t, bolt, edges[0].Owner)
	assert.Equal(t, tire, edges[0].Ref)
	assert.Equal(t, []string{"tire_id"}, edges[0].Columns)
	assert.Equal(t, []string{"id"}, edges[0].RefColumns)
	assert.Equal(t, "Bolt.tire(tire_id) -> Tire", edges[0].String())

	name, ok := g.Navigation(bolt, tire)
	require.True(t, ok)
	assert.Equal(t, "tire", name)
	_, ok = g.Navigation(tire, bolt)
	assert.False(t, ok, "edges only point to principals")

	car, _ := g.Lookup("Car")
	e, ok := car.Edge("garage")
	require.True(t, ok)
	assert.True(t, e.Optional)

	_, ok = g.Lookup("Wheel")
	assert.False(t, ok)
	assert.Empty(t, g.Principals(nil))
}

func TestBuilder_Navigation(t *testing.T) {
	t.Parallel()

	g, err := graph.NewBuilder().
		Add(
			graph.TypeDef{Name: "Address"},
			graph.TypeDef{
				Name: "Order",
				Edges: []graph.EdgeDef{
					{Name: "billing", Type: "Address"},
					{Name: "shipping", Type: "Address"},
				},
			},
		).
		Build()
	require.NoError(t, err)
	order, _ := g.Lookup("Order")
	address, _ := g.Lookup("Address")
	name, ok := g.Navigation(order, address)
	require.True(t, ok)
	assert.Equal(t, "billing", name, "first declared edge wins")
}

func TestBuilder_CompositeKey(t *testing.T) {
	t.Parallel()

	g, err := graph.NewBuilder().
		Add(
			graph.TypeDef{Name: "Car"},
			graph.TypeDef{
				Name:       "Axle",
				PrimaryKey: []string{"car_id", "position"},
				Fields:     []graph.FieldDef{{Name: "position"}, {Name: "car_id"}, {Name: "load"}},
				Edges:      []graph.EdgeDef{{Name: "car", Type: "Car"}},
			},
			graph.TypeDef{
				Name: "Wheel",
				Edges: []graph.EdgeDef{{
					Name:    "axle",
					Type:    "Axle",
					Columns: []string{"axle_car_id", "axle_position"},
				}},
			},
		).
		Build()
	require.NoError(t, err)
	axle, _ := g.Lookup("Axle")
	assert.True(t, axle.CompositeKey())
	assert.Equal(t, []string{"car_id", "position", "load"}, axle.Columns())

	wheel, _ := g.Lookup("Wheel")
	e, ok := wheel.Edge("axle")
	require.True(t, ok)
	assert.Equal(t, []string{"car_id", "position"}, e.RefColumns)
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	_, err := graph.NewBuilder().
		Add(
			graph.TypeDef{Name: "Car"},
			graph.TypeDef{Name: "Car"},
			graph.TypeDef{},
			graph.TypeDef{Name: "Tire", Fields: []graph.FieldDef{{Name: "brand"}, {Name: "brand"}}},
			graph.TypeDef{
				Name: "Bolt",
				Edges: []graph.EdgeDef{
					{Name: "tire", Type: "Wheel"},
					{Name: "car", Type: "Car", Columns: []string{"a", "b"}},
					{Name: "car", Type: "Car"},
					{Name: "car", Type: "Car"},
					{Type: "Car"},
				},
			},
		).
		Build()
	require.Error(t, err)
	for _, msg := range []string{
		`graph: duplicate type "Car"`,
		"graph: missing type name",
		`graph: type "Tire": duplicate field "brand"`,
		`graph: edge Bolt.tire references unknown type "Wheel"`,
		"graph: edge Bolt.car has 2 foreign-key columns but references 1",
		`graph: type "Bolt": duplicate edge "car"`,
		`graph: type "Bolt": missing edge name`,
	} {
		assert.Contains(t, err.Error(), msg)
	}
}

func TestBuilder_CycleWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	g, err := graph.NewBuilder(graph.WithLogger(logger)).
		Add(
			graph.TypeDef{Name: "Employee", Edges: []graph.EdgeDef{{Name: "department", Type: "Department"}}},
			graph.TypeDef{Name: "Department", Edges: []graph.EdgeDef{{Name: "head", Type: "Employee", Optional: true}}},
		).
		Build()
	require.NoError(t, err)
	require.Len(t, g.Cycles(), 1)
	assert.Contains(t, buf.String(), "foreign-key cycle detected")
	assert.Contains(t, buf.String(), "Employee")

	buf.Reset()
	_, err = graph.NewBuilder(graph.WithLogger(logger)).Add(graph.TypeDef{Name: "Car"}).Build()
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestNaming(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tire_brands", graph.TableName("TireBrand"))
	assert.Equal(t, "cars", graph.TableName("Car"))
	assert.Equal(t, "TireBrand", graph.TypeName("tire_brands"))
	assert.Equal(t, "Bolt", graph.TypeName("bolts"))
}

func TestGonum(t *testing.T) {
	t.Parallel()

	g := garage(t)
	bolt, _ := g.Lookup("Bolt")
	tire, _ := g.Lookup("Tire")
	car, _ := g.Lookup("Car")
	gar, _ := g.Lookup("Garage")

	assert.Equal(t, 4, g.Nodes().Len())
	assert.Equal(t, bolt, g.Node(bolt.ID()))
	assert.Nil(t, g.Node(42))
	assert.True(t, g.HasEdgeFromTo(bolt.ID(), tire.ID()))
	assert.False(t, g.HasEdgeFromTo(tire.ID(), bolt.ID()))
	assert.True(t, g.HasEdgeBetween(tire.ID(), bolt.ID()))
	assert.Nil(t, g.Edge(tire.ID(), bolt.ID()))

	e := g.Edge(bolt.ID(), tire.ID())
	require.NotNil(t, e)
	assert.Equal(t, bolt, e.From())
	assert.Equal(t, tire, e.To())
	assert.Equal(t, tire, e.ReversedEdge().From())
	assert.Equal(t, e, e.ReversedEdge().ReversedEdge())

	assert.Equal(t, []gonum.Node{tire}, nodes(g.From(bolt.ID())))
	assert.Equal(t, []gonum.Node{car}, nodes(g.To(gar.ID())))
	assert.Equal(t, 0, g.From(gar.ID()).Len())

	p, weight := path.DijkstraFrom(bolt, g).To(gar.ID())
	assert.Equal(t, []gonum.Node{bolt, tire, car, gar}, p)
	assert.Equal(t, 3.0, weight)

	sorted, err := topo.Sort(g)
	require.NoError(t, err)
	assert.Equal(t, []gonum.Node{bolt, tire, car, gar}, sorted)
	assert.Empty(t, g.Cycles())
}

func TestYAML(t *testing.T) {
	t.Parallel()

	const file = `
types:
  - name: Bolt
    fields: [id, size]
    edges:
      - name: tire
        type: Tire
  - name: Tire
    table: tyres
    fields:
      - brand
      - name: car_id
        column: car_fk
    edges:
      - name: car
        type: Car
        columns: [car_fk]
  - name: Car
`
	g, err := graph.Decode(strings.NewReader(file))
	require.NoError(t, err)
	tire, ok := g.Lookup("Tire")
	require.True(t, ok)
	assert.Equal(t, "tyres", tire.Table)
	assert.Equal(t, []string{"id", "brand", "car_fk"}, tire.Columns())
	e, ok := tire.Edge("car")
	require.True(t, ok)
	assert.Equal(t, []string{"car_fk"}, e.Columns)

	_, err = graph.Decode(strings.NewReader("types:\n  - name: Car\n    tabel: cars\n"))
	require.Error(t, err, "unknown keys are rejected")

	// Encoding round-trips through Decode.
	var buf bytes.Buffer
	require.NoError(t, yaml.NewEncoder(&buf).Encode(g))
	g2, err := graph.Decode(&buf)
	require.NoError(t, err)
	require.Len(t, g2.Types, len(g.Types))
	for i, typ := range g.Types {
		assert.Equal(t, typ.Name, g2.Types[i].Name)
		assert.Equal(t, typ.Columns(), g2.Types[i].Columns())
	}
}

func nodes(it gonum.Nodes) []gonum.Node {
	var ns []gonum.Node
	for it.Next() {
		ns = append(ns, it.Node())
	}
	return ns
}
