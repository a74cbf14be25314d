package lazy_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ancestry"
	"github.com/syssam/ancestry/graph"
	"github.com/syssam/ancestry/lazy"
)

type (
	Garage struct {
		ID   int
		Name string
	}
	Car struct {
		ID     int
		Model  string
		Garage *Garage
	}
	Tire struct {
		ID    int
		Brand string
		Edges TireEdges
	}
	TireEdges struct {
		Car *Car
	}
	Bolt struct {
		ID    int
		Size  int
		Owner *Tire `ancestry:"tire"`
	}
)

func schema(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.NewBuilder().
		Add(
			graph.TypeDef{Name: "Garage"},
			graph.TypeDef{Name: "Car", Edges: []graph.EdgeDef{{Name: "garage", Type: "Garage", Optional: true}}},
			graph.TypeDef{Name: "Tire", Edges: []graph.EdgeDef{{Name: "car", Type: "Car"}}},
			graph.TypeDef{Name: "Bolt", Edges: []graph.EdgeDef{{Name: "tire", Type: "Tire"}}},
		).
		Build()
	require.NoError(t, err)
	return g
}

func fixture() []*Bolt {
	home := &Garage{ID: 1, Name: "Main"}
	roadster := &Car{ID: 1, Model: "Roadster", Garage: home}
	coupe := &Car{ID: 2, Model: "Coupe"}
	acme := &Tire{ID: 1, Brand: "Acme", Edges: TireEdges{Car: roadster}}
	zed := &Tire{ID: 2, Brand: "Zed", Edges: TireEdges{Car: coupe}}
	return []*Bolt{
		{ID: 1, Size: 8, Owner: acme},
		{ID: 2, Size: 8, Owner: acme},
		{ID: 3, Size: 10, Owner: acme},
		{ID: 4, Size: 12, Owner: zed},
	}
}

func TestFindParent(t *testing.T) {
	t.Parallel()

	g := schema(t)
	bolts := fixture()
	ctx := context.Background()

	t.Run("Tire", func(t *testing.T) {
		q, err := ancestry.FindParent(g, "Bolt", "Tire", lazy.From(bolts[0]))
		require.NoError(t, err)
		tires, err := lazy.All[Tire](ctx, q)
		require.NoError(t, err)
		require.Len(t, tires, 1)
		assert.Equal(t, "Acme", tires[0].Brand)
	})

	t.Run("SharedAncestor", func(t *testing.T) {
		q, err := ancestry.FindParent(g, "Bolt", "Car", lazy.From(bolts[:3]...))
		require.NoError(t, err)
		assert.Equal(t, 2, q.(*lazy.Query).Hops())
		cars, err := lazy.All[Car](ctx, q)
		require.NoError(t, err)
		require.Len(t, cars, 3)
		assert.Same(t, cars[0], cars[1])
		assert.Same(t, cars[1], cars[2])
		assert.Equal(t, "Roadster", cars[0].Model)
	})

	t.Run("NilEdge", func(t *testing.T) {
		q, err := ancestry.FindParent(g, "Bolt", "Garage", lazy.From(bolts[0], bolts[3], nil))
		require.NoError(t, err)
		garages, err := lazy.All[Garage](ctx, q)
		require.NoError(t, err)
		require.Len(t, garages, 3)
		assert.Equal(t, "Main", garages[0].Name)
		assert.Nil(t, garages[1])
		assert.Nil(t, garages[2])
	})

	t.Run("Identity", func(t *testing.T) {
		in := lazy.From(bolts...)
		q, err := ancestry.FindParent(g, "Bolt", "Bolt", in)
		require.NoError(t, err)
		assert.Same(t, in, q)
	})
}

func TestFromFunc(t *testing.T) {
	t.Parallel()

	var loads int
	q := lazy.FromFunc(func(context.Context) ([]*Bolt, error) {
		loads++
		return fixture(), nil
	})
	tires, err := q.Join("tire")
	require.NoError(t, err)
	assert.Equal(t, 0, loads, "projections do not load rows")
	rows, err := lazy.All[Tire](context.Background(), tires)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, 1, loads)

	failing := lazy.FromFunc(func(context.Context) ([]*Bolt, error) {
		return nil, errors.New("unavailable")
	})
	_, err = lazy.All[Bolt](context.Background(), failing)
	assert.EqualError(t, err, "lazy: load Bolt: unavailable")
}

func TestAll_Errors(t *testing.T) {
	t.Parallel()

	q := lazy.From(fixture()...)
	_, err := lazy.All[Tire](context.Background(), q)
	assert.ErrorContains(t, err, "query yields lazy_test.Bolt, not lazy_test.Tire")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = lazy.All[Bolt](ctx, q)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAccessor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ     reflect.Type
		edge    string
		want    reflect.Type
		wantErr string
	}{
		{typ: reflect.TypeFor[Bolt](), edge: "tire", want: reflect.TypeFor[Tire]()},
		{typ: reflect.TypeFor[Tire](), edge: "car", want: reflect.TypeFor[Car]()},
		{typ: reflect.TypeFor[Car](), edge: "garage", want: reflect.TypeFor[Garage]()},
		{typ: reflect.TypeFor[Car](), edge: "model", wantErr: "lazy: edge Car.model has type string, expect a struct pointer"},
		{typ: reflect.TypeFor[Bolt](), edge: "nut", wantErr: `lazy: type Bolt has no edge "nut"`},
		{typ: reflect.TypeFor[int](), edge: "nut", wantErr: "lazy: int is not a struct"},
	}
	for _, tt := range tests {
		get, err := lazy.Accessor(tt.typ, tt.edge)
		if tt.wantErr != "" {
			assert.EqualError(t, err, tt.wantErr)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, get.Type)
	}

	get, err := lazy.Accessor(reflect.TypeFor[Tire](), "car")
	require.NoError(t, err)
	v := get.Get(reflect.ValueOf((*Tire)(nil)))
	assert.True(t, v.IsNil())
}

func TestProject_UnknownEdge(t *testing.T) {
	t.Parallel()

	_, err := ancestry.FindParent(schema(t), "Bolt", "Tire", lazy.From[Car]())
	assert.ErrorIs(t, err, ancestry.ErrQueryType)

	g, err := graph.NewBuilder().
		Add(
			graph.TypeDef{Name: "Garage"},
			graph.TypeDef{Name: "Car", Edges: []graph.EdgeDef{{Name: "owner", Type: "Garage"}}},
		).
		Build()
	require.NoError(t, err)
	_, err = ancestry.FindParent(g, "Car", "Garage", lazy.From[Car]())
	assert.True(t, ancestry.IsNoNavigation(err))
}
