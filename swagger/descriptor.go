package swagger

import (
	"reflect"
	"strings"
)

// ParameterSource tells where the host framework binds a parameter from.
type ParameterSource int

const (
	// SourceQuery binds from the query string. It is the zero value.
	SourceQuery ParameterSource = iota
	// SourcePath binds from a path template placeholder.
	SourcePath
	// SourceBody binds from the request body.
	SourceBody
)

// String returns the lower-case name of the source.
func (s ParameterSource) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourceBody:
		return "body"
	default:
		return "query"
	}
}

// Void marks an endpoint that returns no value. A nil ResponseType means
// the same thing.
type Void struct{}

var voidType = reflect.TypeFor[Void]()

// ParameterDescriptor is the metadata of one action parameter as discovered
// by a Provider.
type ParameterDescriptor struct {
	Name     string
	Source   ParameterSource
	Optional bool

	// Type is the declared host type. A nil Type means the parameter has no
	// resolvable type (for example, an untyped route value).
	Type reflect.Type

	// Default is attached to the generated parameter when non-nil.
	Default any

	// Pattern is a regular expression constraint already resolved from
	// validation metadata.
	Pattern string

	Description string
}

// EndpointDescriptor is the metadata of one HTTP action as discovered by a
// Provider. Descriptors are treated as immutable by the generator.
type EndpointDescriptor struct {
	Method string

	// RelativePath is the path template relative to the API root, with
	// {name} placeholders. It may carry a query string, which is ignored
	// when grouping.
	RelativePath string

	Parameters []ParameterDescriptor

	// ResponseType is the type of the success payload. Nil or Void produce
	// a "204 No Content" response.
	ResponseType reflect.Type

	Obsolete bool

	// Group is the owning controller identity. It is the default grouping
	// key and the qualifier of secondary operation ids.
	Group string

	// Action is the handler name inside Group.
	Action string

	Summary     string
	Description string

	Produces []string
	Consumes []string
}

// Path returns the relative path with any query string removed and a
// leading slash added.
func (d EndpointDescriptor) Path() string {
	return normalizePath(d.RelativePath)
}

// returnsValue reports whether the endpoint declares a response payload.
func (d EndpointDescriptor) returnsValue() bool {
	return d.ResponseType != nil && d.ResponseType != voidType
}

// Provider exposes the endpoints of a host API. Generate queries it once
// per call.
type Provider interface {
	Endpoints() []EndpointDescriptor
}

// Endpoints is a static Provider.
type Endpoints []EndpointDescriptor

// Endpoints implements Provider.
func (e Endpoints) Endpoints() []EndpointDescriptor {
	return e
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() []EndpointDescriptor

// Endpoints implements Provider.
func (f ProviderFunc) Endpoints() []EndpointDescriptor {
	return f()
}

func normalizePath(relative string) string {
	if idx := strings.IndexByte(relative, '?'); idx >= 0 {
		relative = relative[:idx]
	}
	return "/" + strings.TrimLeft(relative, "/")
}
