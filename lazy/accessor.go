package lazy

import (
	"fmt"
	"reflect"

	"github.com/go-openapi/inflect"
)

// TagName is the struct tag naming the edge a field holds.
//
//	type Bolt struct {
//		ID   int
//		Part *Tire `ancestry:"tire"`
//	}
const TagName = "ancestry"

// Getter reads one edge of a struct pointer.
type Getter struct {
	// Type is the struct type the edge yields.
	Type  reflect.Type
	index []int
}

// Get returns the edge of v, a pointer to the owner struct. A nil owner,
// or a nil pointer on the way to the edge, yields a nil pointer of Type.
func (g Getter) Get(v reflect.Value) reflect.Value {
	if v.IsNil() {
		return reflect.Zero(reflect.PointerTo(g.Type))
	}
	f, err := v.Elem().FieldByIndexErr(g.index)
	if err != nil {
		return reflect.Zero(reflect.PointerTo(g.Type))
	}
	return f
}

// Accessor resolves the field holding the named edge of struct type t. The
// field is, in order of precedence, the one tagged `ancestry:"name"`, the
// one named after the camel-cased edge name, or either of these inside an
// Edges struct. The field must be a pointer to a struct.
func Accessor(t reflect.Type, name string) (Getter, error) {
	if t.Kind() != reflect.Struct {
		return Getter{}, fmt.Errorf("lazy: %s is not a struct", t)
	}
	index, ok := lookup(t, name)
	if !ok {
		if edges, found := t.FieldByName("Edges"); found && len(edges.Index) == 1 {
			et := edges.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if sub, ok2 := lookup(et, name); ok2 {
					index, ok = append(append([]int(nil), edges.Index...), sub...), true
				}
			}
		}
	}
	if !ok {
		return Getter{}, fmt.Errorf("lazy: type %s has no edge %q", t.Name(), name)
	}
	f := t.FieldByIndex(index)
	if f.Type.Kind() != reflect.Pointer || f.Type.Elem().Kind() != reflect.Struct {
		return Getter{}, fmt.Errorf("lazy: edge %s.%s has type %s, expect a struct pointer", t.Name(), name, f.Type)
	}
	return Getter{Type: f.Type.Elem(), index: index}, nil
}

func lookup(t reflect.Type, name string) ([]int, bool) {
	for i := range t.NumField() {
		if f := t.Field(i); f.IsExported() && f.Tag.Get(TagName) == name {
			return f.Index, true
		}
	}
	if f, ok := t.FieldByName(inflect.Camelize(name)); ok && f.IsExported() && len(f.Index) == 1 {
		return f.Index, true
	}
	return nil, false
}
