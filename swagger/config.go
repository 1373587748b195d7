package swagger

import "strings"

// GroupingKeySelector returns the grouping key of an endpoint. The key is
// the operation tag and the primary ordering of paths.
type GroupingKeySelector func(EndpointDescriptor) string

// GroupingKeyComparer orders grouping keys. It returns a negative number
// when a sorts before b, zero when equal and a positive number otherwise.
type GroupingKeyComparer func(a, b string) int

// ConflictResolver reduces endpoints sharing a path and method to the one
// that is documented. It is called with two or more endpoints.
type ConflictResolver func([]EndpointDescriptor) EndpointDescriptor

// VersionSupportResolver reports whether an endpoint belongs to an API
// version.
type VersionSupportResolver func(endpoint EndpointDescriptor, version string) bool

// Config configures a Generator. Zero values take the defaults documented
// on each field.
type Config struct {
	// Versions maps an API version to its Info. Generate fails with
	// ErrUnknownAPIVersion for versions missing here.
	Versions map[string]Info

	// IgnoreObsoleteActions drops endpoints flagged obsolete.
	IgnoreObsoleteActions bool

	// GroupingKeySelector defaults to the endpoint Group.
	GroupingKeySelector GroupingKeySelector

	// GroupingKeyComparer defaults to strings.Compare.
	GroupingKeyComparer GroupingKeyComparer

	// ConflictingActionsResolver has no default: a path and method claimed
	// by several endpoints is an error unless it is set.
	ConflictingActionsResolver ConflictResolver

	// VersionSupportResolver filters endpoints per version. Nil keeps all
	// endpoints.
	VersionSupportResolver VersionSupportResolver

	// Schemes overrides the scheme parsed from the root URL.
	Schemes []string

	SecurityDefinitions map[string]*SecurityScheme

	ModelFilters     []ModelFilter
	OperationFilters []OperationFilter
	DocumentFilters  []DocumentFilter

	// NewSchemaRegistry creates the registry of one Generate call.
	// Defaults to NewSchemaGenerator.
	NewSchemaRegistry func() SchemaRegistry
}

func (cfg Config) groupingKey(d EndpointDescriptor) string {
	if cfg.GroupingKeySelector == nil {
		return d.Group
	}
	return cfg.GroupingKeySelector(d)
}

func (cfg Config) compareKeys(a, b string) int {
	if cfg.GroupingKeyComparer == nil {
		return strings.Compare(a, b)
	}
	return cfg.GroupingKeyComparer(a, b)
}

func (cfg Config) schemaRegistry() SchemaRegistry {
	if cfg.NewSchemaRegistry == nil {
		return NewSchemaGenerator()
	}
	return cfg.NewSchemaRegistry()
}

// FirstAction is a ConflictResolver documenting the first endpoint of the
// conflicting group, in provider order.
func FirstAction(endpoints []EndpointDescriptor) EndpointDescriptor {
	return endpoints[0]
}

// PreferNonObsolete returns a ConflictResolver that discards obsolete
// endpoints before delegating to next. When every endpoint is obsolete,
// next sees them all.
func PreferNonObsolete(next ConflictResolver) ConflictResolver {
	return func(endpoints []EndpointDescriptor) EndpointDescriptor {
		var current []EndpointDescriptor
		for _, e := range endpoints {
			if !e.Obsolete {
				current = append(current, e)
			}
		}
		switch len(current) {
		case 0:
			return next(endpoints)
		case 1:
			return current[0]
		default:
			return next(current)
		}
	}
}
