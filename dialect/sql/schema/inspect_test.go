package schema

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/ancestry"
	"github.com/syssam/ancestry/dialect"
	"github.com/syssam/ancestry/dialect/sql"
)

func openDB(t *testing.T) *sql.Driver {
	t.Helper()
	drv, err := sql.Open(dialect.SQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name()))
	require.NoError(t, err)
	drv.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { drv.Close() })
	for _, stmt := range []string{
		"CREATE TABLE garages (id INTEGER PRIMARY KEY, name TEXT NOT NULL)",
		"CREATE TABLE cars (id INTEGER PRIMARY KEY, model TEXT NOT NULL, garage_id INTEGER NULL REFERENCES garages(id))",
		"CREATE TABLE tires (id INTEGER PRIMARY KEY, brand TEXT NOT NULL, car_id INTEGER NOT NULL REFERENCES cars(id))",
		"CREATE TABLE axles (car_id INTEGER NOT NULL REFERENCES cars(id), position INTEGER NOT NULL, PRIMARY KEY (car_id, position))",
		"CREATE TABLE wheels (id INTEGER PRIMARY KEY, axle_car INTEGER NOT NULL, axle_pos INTEGER NOT NULL, FOREIGN KEY (axle_car, axle_pos) REFERENCES axles(car_id, position))",
		"CREATE TABLE logs (message TEXT)",
	} {
		require.NoError(t, drv.Exec(context.Background(), stmt, []any{}, nil), stmt)
	}
	return drv
}

func TestInspect(t *testing.T) {
	drv := openDB(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	g, err := Inspect(context.Background(), drv, WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, g.Types, 5)
	_, ok := g.Lookup("Log")
	assert.False(t, ok, "tables without a primary key are skipped")
	assert.Contains(t, buf.String(), "table=logs")

	car, ok := g.Lookup("Car")
	require.True(t, ok)
	assert.Equal(t, "cars", car.Table)
	assert.Equal(t, []string{"id", "model", "garage_id"}, car.Columns())
	e, ok := car.Edge("garage")
	require.True(t, ok)
	assert.Equal(t, "Garage", e.Ref.Name)
	assert.True(t, e.Optional)

	tire, ok := g.Lookup("Tire")
	require.True(t, ok)
	e, ok = tire.Edge("car")
	require.True(t, ok)
	assert.False(t, e.Optional)

	axle, ok := g.Lookup("Axle")
	require.True(t, ok)
	assert.True(t, axle.CompositeKey())
	assert.Equal(t, []string{"car_id", "position"}, axle.KeyColumns())
	assert.Contains(t, buf.String(), "composite primary key")

	wheel, ok := g.Lookup("Wheel")
	require.True(t, ok)
	e, ok = wheel.Edge("axle")
	require.True(t, ok, "multi-column keys are named after the referenced table")
	assert.Equal(t, []string{"axle_car", "axle_pos"}, e.Columns)
	assert.Equal(t, []string{"car_id", "position"}, e.RefColumns)

	r, err := ancestry.New(g).Route("Wheel", "Garage")
	require.NoError(t, err)
	assert.Equal(t, []string{"Wheel", "Axle", "Car", "Garage"}, r.Types())

	_, err = ancestry.New(g).Route("Axle", "Car")
	assert.True(t, ancestry.IsCompositeKey(err))
}

func TestInspect_Options(t *testing.T) {
	drv := openDB(t)
	g, err := Inspect(context.Background(), drv,
		WithLogger(slog.New(slog.DiscardHandler)),
		WithExcludeTables("garages", "logs"),
		WithTypeNamer(strings.ToUpper),
	)
	require.NoError(t, err)
	require.Len(t, g.Types, 4)
	car, ok := g.Lookup("CARS")
	require.True(t, ok)
	assert.Empty(t, car.Edges, "foreign keys to excluded tables are dropped")
}

func TestInspect_Dialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	_, err = Inspect(context.Background(), sql.OpenDB("oracle", db))
	require.EqualError(t, err, `dialect/sql/schema: unsupported dialect "oracle"`)
}
