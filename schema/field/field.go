package field

// Type is the kind of a field.
type Type uint8

// Field kinds.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeInt64
	TypeFloat64
	TypeString
	TypeTime
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeFloat64: "float64",
	TypeString:  "string",
	TypeTime:    "time.Time",
}

// String returns the Go type name of the field kind.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Descriptor for field configuration.
type Descriptor struct {
	Name       string // field name.
	Type       Type   // field kind.
	StorageKey string // column name, defaults to Name.
	Optional   bool   // nullable field.
	Comment    string // field comment.
}

// Column returns the storage column of the field.
func (d *Descriptor) Column() string {
	if d.StorageKey != "" {
		return d.StorageKey
	}
	return d.Name
}

// Builder is the builder for all field kinds.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t}}
}

// Bool returns a new Builder with type bool.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Int returns a new Builder with type int.
func Int(name string) *Builder { return newBuilder(name, TypeInt) }

// Int64 returns a new Builder with type int64.
func Int64(name string) *Builder { return newBuilder(name, TypeInt64) }

// Float returns a new Builder with type float64.
func Float(name string) *Builder { return newBuilder(name, TypeFloat64) }

// String returns a new Builder with type string.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Time returns a new Builder with type time.Time.
func Time(name string) *Builder { return newBuilder(name, TypeTime) }

// Optional indicates that this field is nullable.
func (b *Builder) Optional() *Builder {
	b.desc.Optional = true
	return b
}

// StorageKey sets the storage column of the field.
//
//	field.Int("tire_id").StorageKey("tire_fk")
func (b *Builder) StorageKey(key string) *Builder {
	b.desc.StorageKey = key
	return b
}

// Comment sets the comment of the field.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the schema.Field interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
