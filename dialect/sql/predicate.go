package sql

// FieldEQ returns a selector predicate that checks if the root-table field equals v.
func FieldEQ(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(EQ(s.C(name), v))
	}
}

// FieldNEQ returns a selector predicate that checks if the root-table field does not equal v.
func FieldNEQ(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(NEQ(s.C(name), v))
	}
}

// FieldGT returns a selector predicate that checks if the root-table field is greater than v.
func FieldGT(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(GT(s.C(name), v))
	}
}

// FieldLT returns a selector predicate that checks if the root-table field is less than v.
func FieldLT(name string, v any) func(*Selector) {
	return func(s *Selector) {
		s.Where(LT(s.C(name), v))
	}
}

// FieldIn returns a selector predicate that checks if the root-table field is in vs.
func FieldIn[T any](name string, vs ...T) func(*Selector) {
	args := make([]any, len(vs))
	for i := range vs {
		args[i] = vs[i]
	}
	return func(s *Selector) {
		s.Where(In(s.C(name), args...))
	}
}

// FieldIsNull returns a selector predicate that checks if the root-table field is NULL.
func FieldIsNull(name string) func(*Selector) {
	return func(s *Selector) {
		s.Where(IsNull(s.C(name)))
	}
}

// FieldNotNull returns a selector predicate that checks if the root-table field is not NULL.
func FieldNotNull(name string) func(*Selector) {
	return func(s *Selector) {
		s.Where(NotNull(s.C(name)))
	}
}

// PredicateFunc is a constraint type for predicate functions.
// It allows generic field types to work with any predicate type that is
// based on func(*Selector).
type PredicateFunc interface {
	~func(*Selector)
}

// StringField is a generic string field that provides type-safe predicate methods.
//
// Usage:
//
//	var Brand = sql.StringField[func(*sql.Selector)]("brand")
//	q, err := sqlgraph.NewQuery(g, "Tire", Brand.EQ("Acme"))
type StringField[P PredicateFunc] string

// Name returns the field name.
func (f StringField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f StringField[P]) EQ(v string) P {
	return P(FieldEQ(string(f), v))
}

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f StringField[P]) NEQ(v string) P {
	return P(FieldNEQ(string(f), v))
}

// In returns a predicate that checks if the field value is in the given list.
func (f StringField[P]) In(vs ...string) P {
	return P(FieldIn(string(f), vs...))
}

// IsNull returns a predicate that checks if the field is NULL.
func (f StringField[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}

// NotNull returns a predicate that checks if the field is not NULL.
func (f StringField[P]) NotNull() P {
	return P(FieldNotNull(string(f)))
}

// IntField is a generic integer field that provides type-safe predicate methods.
type IntField[P PredicateFunc] string

// Name returns the field name.
func (f IntField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f IntField[P]) EQ(v int) P {
	return P(FieldEQ(string(f), v))
}

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f IntField[P]) NEQ(v int) P {
	return P(FieldNEQ(string(f), v))
}

// In returns a predicate that checks if the field value is in the given list.
func (f IntField[P]) In(vs ...int) P {
	return P(FieldIn(string(f), vs...))
}

// GT returns a predicate that checks if the field is greater than the given value.
func (f IntField[P]) GT(v int) P {
	return P(FieldGT(string(f), v))
}

// LT returns a predicate that checks if the field is less than the given value.
func (f IntField[P]) LT(v int) P {
	return P(FieldLT(string(f), v))
}

// IsNull returns a predicate that checks if the field is NULL.
func (f IntField[P]) IsNull() P {
	return P(FieldIsNull(string(f)))
}
