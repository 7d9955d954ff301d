package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notekeeper/notesweb/pkg/routepath"
)

// validateRoutes checks every definition and the uniqueness of names and
// paths. All problems are reported together.
func validateRoutes(routes []Route) error {
	var errs []error
	names := make(map[string]int, len(routes))
	paths := make(map[string]int, len(routes))

	for i, route := range routes {
		if err := route.validate(); err != nil {
			errs = append(errs, fmt.Errorf("route %d: %w", i, err))
			continue
		}

		if first, ok := names[route.Name]; ok {
			errs = append(errs, &DuplicateRouteError{Field: FieldName, Value: route.Name, First: first, Second: i})
		} else {
			names[route.Name] = i
		}

		if first, ok := paths[route.Path]; ok {
			errs = append(errs, &DuplicateRouteError{Field: FieldPath, Value: route.Path, First: first, Second: i})
		} else {
			paths[route.Path] = i
		}
	}

	return errors.Join(errs...)
}

// validate checks a single definition.
// Paths must be literal and already canonical, otherwise no request could
// ever match them.
func (r Route) validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidRoute)
	}
	if r.View == "" {
		return fmt.Errorf("%w: route %q has no view", ErrInvalidRoute, r.Name)
	}
	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("%w: path %q of route %q must start with /", ErrInvalidRoute, r.Path, r.Name)
	}
	if strings.ContainsAny(r.Path, "?#") {
		return fmt.Errorf("%w: path %q of route %q has a query or fragment", ErrInvalidRoute, r.Path, r.Name)
	}
	for _, seg := range strings.Split(r.Path, "/") {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			return fmt.Errorf("%w: path %q of route %q has a dynamic segment", ErrInvalidRoute, r.Path, r.Name)
		}
	}
	canon, err := routepath.CanonicalizePath(r.Path)
	if err != nil {
		return fmt.Errorf("%w: path %q of route %q: %v", ErrInvalidRoute, r.Path, r.Name, err)
	}
	if canon.Changed {
		return fmt.Errorf("%w: path %q of route %q is not canonical (want %q)", ErrInvalidRoute, r.Path, r.Name, canon.Path)
	}
	return nil
}
