package router

import (
	"errors"
	"fmt"
)

// ErrInvalidRoute reports a malformed route definition.
var ErrInvalidRoute = errors.New("invalid route")

// Route fields checked for uniqueness.
const (
	FieldName = "name"
	FieldPath = "path"
)

// DuplicateRouteError reports two table entries sharing a name or a path.
type DuplicateRouteError struct {
	// Field is FieldName or FieldPath.
	Field string

	// Value is the shared name or path.
	Value string

	// First and Second are the table indices of the clashing entries.
	First  int
	Second int
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("duplicate route %s %q (entries %d and %d)", e.Field, e.Value, e.First, e.Second)
}

// RouteNotFoundError reports a target that matches no route.
// Exactly one of Path and Name is set.
type RouteNotFoundError struct {
	Path string
	Name string
}

func (e *RouteNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("no route named %q", e.Name)
	}
	return fmt.Sprintf("no route matches path %q", e.Path)
}

// IsNotFound reports whether err is a resolution miss.
func IsNotFound(err error) bool {
	var nf *RouteNotFoundError
	return errors.As(err, &nf)
}

// IsDuplicate reports whether err contains a duplicate route error.
func IsDuplicate(err error) bool {
	var dup *DuplicateRouteError
	return errors.As(err, &dup)
}
