package sql

import (
	"testing"

	"github.com/syssam/ancestry/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input     Querier
		wantQuery string
		wantArgs  []any
	}{
		{
			input:     Select("id", "name").From(Table("cars")),
			wantQuery: "SELECT `id`, `name` FROM `cars`",
		},
		{
			input:     postgres(Select("id", "name").From(Table("cars"))),
			wantQuery: `SELECT "id", "name" FROM "cars"`,
		},
		{
			input:     Select().From(Table("cars")),
			wantQuery: "SELECT * FROM `cars`",
		},
		{
			input: func() Querier {
				t0 := Table("tires").As("t0")
				t1 := Table("cars").As("t1")
				return Select(t1.Columns("id", "model")...).
					From(t0).
					LeftJoin(t1).On(t0.C("car_id"), t1.C("id")).
					Where(EQ(t0.C("brand"), "Acme"))
			}(),
			wantQuery: "SELECT `t1`.`id`, `t1`.`model` FROM `tires` AS `t0` LEFT JOIN `cars` AS `t1` ON `t0`.`car_id` = `t1`.`id` WHERE `t0`.`brand` = ?",
			wantArgs:  []any{"Acme"},
		},
		{
			input: func() Querier {
				t0 := Table("bolts").As("t0")
				t1 := Table("tires").As("t1")
				return postgres(Select(t1.C("*")).
					From(t0).
					Join(t1).On(t0.C("tire_id"), t1.C("id")).
					Where(And(EQ(t0.C("id"), 1), In(t1.C("brand"), "Acme", "Zed"))))
			}(),
			wantQuery: `SELECT "t1".* FROM "bolts" AS "t0" JOIN "tires" AS "t1" ON "t0"."tire_id" = "t1"."id" WHERE ("t0"."id" = $1) AND ("t1"."brand" IN ($2, $3))`,
			wantArgs:  []any{1, "Acme", "Zed"},
		},
		{
			input: Select("id").From(Table("cars")).
				Where(Or(IsNull("garage_id"), Not(GT("id", 10)))).
				OrderBy("id").
				Limit(5),
			wantQuery: "SELECT `id` FROM `cars` WHERE (`garage_id` IS NULL) OR (NOT (`id` > ?)) ORDER BY `id` LIMIT 5",
			wantArgs:  []any{10},
		},
		{
			input:     Select("id").Distinct().From(Table("cars").Schema("public")).Where(In("id")),
			wantQuery: "SELECT DISTINCT `id` FROM `public`.`cars` WHERE FALSE",
		},
		{
			input:     Select("COUNT(*)").From(Table("cars")).Where(NotNull("garage_id")),
			wantQuery: "SELECT COUNT(*) FROM `cars` WHERE `garage_id` IS NOT NULL",
		},
	}
	for _, tt := range tests {
		query, args := tt.input.Query()
		assert.Equal(t, tt.wantQuery, query)
		assert.Equal(t, tt.wantArgs, args)
	}
}

func postgres(s *Selector) *Selector {
	s.SetDialect(dialect.Postgres)
	return s
}

func TestSelector_Where(t *testing.T) {
	t.Parallel()

	s := Select("id").From(Table("bolts").As("t0"))
	FieldEQ("id", 1)(s)
	FieldIn("tire_id", 2, 3)(s)
	query, args := s.Query()
	assert.Equal(t, "SELECT `id` FROM `bolts` AS `t0` WHERE (`t0`.`id` = ?) AND (`t0`.`tire_id` IN (?, ?))", query)
	assert.Equal(t, []any{1, 2, 3}, args)
}

func TestSelector_Resolve(t *testing.T) {
	t.Parallel()

	columns := map[string]string{"size": "size_mm"}
	s := Select().From(Table("bolts").As("t0")).Resolve(func(name string) string {
		if c, ok := columns[name]; ok {
			return c
		}
		return name
	})
	FieldGT("size", 8)(s)
	FieldNotNull("tire_id")(s)
	query, args := s.Query()
	assert.Equal(t, "SELECT * FROM `bolts` AS `t0` WHERE (`t0`.`size_mm` > ?) AND (`t0`.`tire_id` IS NOT NULL)", query)
	assert.Equal(t, []any{8}, args)
}

func TestSelector_Clone(t *testing.T) {
	t.Parallel()

	t0 := Table("bolts").As("t0")
	s := Select(t0.C("id")).From(t0).Where(EQ(t0.C("id"), 1))
	c := s.Clone()
	t1 := Table("tires").As("t1")
	c.LeftJoin(t1).On(t0.C("tire_id"), t1.C("id")).Select(t1.C("id"))

	query, _ := s.Query()
	assert.Equal(t, "SELECT `t0`.`id` FROM `bolts` AS `t0` WHERE `t0`.`id` = ?", query)
	assert.Equal(t, 0, s.Joins())
	assert.Equal(t, 1, c.Joins())
	query, _ = c.Query()
	assert.Equal(t, "SELECT `t1`.`id` FROM `bolts` AS `t0` LEFT JOIN `tires` AS `t1` ON `t0`.`tire_id` = `t1`.`id` WHERE `t0`.`id` = ?", query)
}

func TestSelector_OnP(t *testing.T) {
	t.Parallel()

	t0 := Table("wheels").As("t0")
	t1 := Table("axles").As("t1")
	s := Select(t1.C("*")).From(t0).
		LeftJoin(t1).
		OnP(ColumnsEQ(t0.C("axle_car"), t1.C("car"))).
		OnP(ColumnsEQ(t0.C("axle_pos"), t1.C("pos")))
	query, args := s.Query()
	require.Empty(t, args)
	assert.Equal(t, "SELECT `t1`.* FROM `wheels` AS `t0` LEFT JOIN `axles` AS `t1` ON (`t0`.`axle_car` = `t1`.`car`) AND (`t0`.`axle_pos` = `t1`.`pos`)", query)
}

func TestFieldTypes(t *testing.T) {
	t.Parallel()

	type predicate func(*Selector)
	var (
		brand = StringField[predicate]("brand")
		id    = IntField[predicate]("id")
	)
	assert.Equal(t, "brand", brand.Name())

	s := Select("id").From(Table("tires"))
	brand.EQ("Acme")(s)
	id.In(1, 2)(s)
	id.GT(0)(s)
	query, args := s.Query()
	assert.Equal(t, "SELECT `id` FROM `tires` WHERE ((`tires`.`brand` = ?) AND (`tires`.`id` IN (?, ?))) AND (`tires`.`id` > ?)", query)
	assert.Equal(t, []any{"Acme", 1, 2, 0}, args)
}
