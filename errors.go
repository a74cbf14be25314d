package ancestry

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds of FindParent.
var (
	// ErrCompositeKey is returned when the child type has a composite primary key.
	ErrCompositeKey = errors.New("ancestry: composite primary key not supported")

	// ErrNotMapped is returned when a type is not known to the schema.
	ErrNotMapped = errors.New("ancestry: type not mapped")

	// ErrNoRoute is returned when no chain of foreign keys connects the child to the parent.
	ErrNoRoute = errors.New("ancestry: no route found")

	// ErrNoNavigation is returned when an edge of a route cannot be navigated.
	ErrNoNavigation = errors.New("ancestry: no navigation found")

	// ErrQueryType is returned when a query does not start at the route start type.
	ErrQueryType = errors.New("ancestry: query type does not match route")
)

// CompositeKeyError is returned when the child type has a composite primary key.
type CompositeKeyError struct {
	typ  string
	keys []string
}

// Error returns the error string.
func (e *CompositeKeyError) Error() string {
	return fmt.Sprintf("ancestry: type %s has a composite primary key %v", e.typ, e.keys)
}

// Is reports whether the target error matches CompositeKeyError.
func (e *CompositeKeyError) Is(err error) bool {
	return err == ErrCompositeKey
}

// Type returns the rejected type name.
func (e *CompositeKeyError) Type() string {
	return e.typ
}

// Keys returns the primary-key columns of the type.
func (e *CompositeKeyError) Keys() []string {
	return e.keys
}

// NewCompositeKeyError returns a new CompositeKeyError.
func NewCompositeKeyError(typ string, keys []string) *CompositeKeyError {
	return &CompositeKeyError{typ: typ, keys: keys}
}

// IsCompositeKey returns true if the error is a CompositeKeyError.
func IsCompositeKey(err error) bool {
	if err == nil {
		return false
	}
	var e *CompositeKeyError
	return errors.As(err, &e) || errors.Is(err, ErrCompositeKey)
}

// NotMappedError is returned when a type is not known to the schema.
type NotMappedError struct {
	typ string
}

// Error returns the error string.
func (e *NotMappedError) Error() string {
	return fmt.Sprintf("ancestry: type %q is not mapped", e.typ)
}

// Is reports whether the target error matches NotMappedError.
func (e *NotMappedError) Is(err error) bool {
	return err == ErrNotMapped
}

// Type returns the unknown type name.
func (e *NotMappedError) Type() string {
	return e.typ
}

// NewNotMappedError returns a new NotMappedError.
func NewNotMappedError(typ string) *NotMappedError {
	return &NotMappedError{typ: typ}
}

// IsNotMapped returns true if the error is a NotMappedError.
func IsNotMapped(err error) bool {
	if err == nil {
		return false
	}
	var e *NotMappedError
	return errors.As(err, &e) || errors.Is(err, ErrNotMapped)
}

// NoRouteError is returned when the parent is not reachable from the child.
type NoRouteError struct {
	from, to string
}

// Error returns the error string.
func (e *NoRouteError) Error() string {
	return fmt.Sprintf("ancestry: no route from %s to %s", e.from, e.to)
}

// Is reports whether the target error matches NoRouteError.
func (e *NoRouteError) Is(err error) bool {
	return err == ErrNoRoute
}

// From returns the child type name.
func (e *NoRouteError) From() string {
	return e.from
}

// To returns the parent type name.
func (e *NoRouteError) To() string {
	return e.to
}

// NewNoRouteError returns a new NoRouteError.
func NewNoRouteError(from, to string) *NoRouteError {
	return &NoRouteError{from: from, to: to}
}

// IsNoRoute returns true if the error is a NoRouteError.
func IsNoRoute(err error) bool {
	if err == nil {
		return false
	}
	var e *NoRouteError
	return errors.As(err, &e) || errors.Is(err, ErrNoRoute)
}

// NoNavigationError is returned when no relationship property connects
// two adjacent types of a route, or a query cannot project through it.
type NoNavigationError struct {
	from, to string
	err      error
}

// Error returns the error string.
func (e *NoNavigationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("ancestry: no navigation from %s to %s: %v", e.from, e.to, e.err)
	}
	return fmt.Sprintf("ancestry: no navigation from %s to %s", e.from, e.to)
}

// Is reports whether the target error matches NoNavigationError.
func (e *NoNavigationError) Is(err error) bool {
	return err == ErrNoNavigation
}

// Unwrap returns the underlying error, if any.
func (e *NoNavigationError) Unwrap() error {
	return e.err
}

// From returns the source type name of the hop.
func (e *NoNavigationError) From() string {
	return e.from
}

// To returns the target type name of the hop.
func (e *NoNavigationError) To() string {
	return e.to
}

// NewNoNavigationError returns a new NoNavigationError. err may be nil.
func NewNoNavigationError(from, to string, err error) *NoNavigationError {
	return &NoNavigationError{from: from, to: to, err: err}
}

// IsNoNavigation returns true if the error is a NoNavigationError.
func IsNoNavigation(err error) bool {
	if err == nil {
		return false
	}
	var e *NoNavigationError
	return errors.As(err, &e) || errors.Is(err, ErrNoNavigation)
}
