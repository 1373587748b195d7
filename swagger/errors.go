package swagger

import (
	"errors"
	"fmt"
)

// Generation errors.
var (
	// ErrUnknownAPIVersion is returned when the requested API version is
	// not present in Config.Versions.
	ErrUnknownAPIVersion = errors.New("swagger: unknown api version")

	// ErrNoConflictResolver is returned when two or more endpoints map to
	// the same path and method and Config.ConflictingActionsResolver is nil.
	ErrNoConflictResolver = errors.New("swagger: conflicting actions and no conflict resolver configured")

	// ErrInvalidRootURL is returned when the root URL cannot be parsed or
	// lacks a scheme or host.
	ErrInvalidRootURL = errors.New("swagger: invalid root url")

	// ErrNilProvider is returned when the generator has no Provider.
	ErrNilProvider = errors.New("swagger: endpoint provider must not be nil")
)

// UnknownAPIVersionError reports the requested version that has no Info.
// It matches ErrUnknownAPIVersion with errors.Is.
type UnknownAPIVersionError struct {
	Version string
}

func (e *UnknownAPIVersionError) Error() string {
	return fmt.Sprintf("swagger: unknown api version %q", e.Version)
}

// Is reports whether target is ErrUnknownAPIVersion.
func (e *UnknownAPIVersionError) Is(target error) bool {
	return target == ErrUnknownAPIVersion
}

// ConflictError reports a path and method claimed by more than one
// endpoint with no resolver to choose between them. It matches
// ErrNoConflictResolver with errors.Is.
type ConflictError struct {
	Path   string
	Method string
	Count  int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("swagger: %d actions for %s %s and no conflict resolver configured", e.Count, e.Method, e.Path)
}

// Is reports whether target is ErrNoConflictResolver.
func (e *ConflictError) Is(target error) bool {
	return target == ErrNoConflictResolver
}
