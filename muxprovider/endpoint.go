package muxprovider

import (
	"reflect"
	"slices"

	"github.com/vitalvas/swagger/swagger"
)

// endpointMeta stores the metadata collected through the fluent builder
// before the router is walked.
type endpointMeta struct {
	group       string
	action      string
	summary     string
	description string
	obsolete    bool
	response    reflect.Type
	parameters  []swagger.ParameterDescriptor
	produces    []string
	consumes    []string
}

// EndpointBuilder provides a fluent API for attaching descriptor metadata
// to a route.
type EndpointBuilder struct {
	meta *endpointMeta
}

func newEndpointBuilder() *EndpointBuilder {
	return &EndpointBuilder{meta: &endpointMeta{}}
}

// Group sets the owning controller identity, the default grouping key.
func (b *EndpointBuilder) Group(name string) *EndpointBuilder {
	b.meta.group = name
	return b
}

// Action sets the handler name used for qualified operation ids. It
// defaults to the route name.
func (b *EndpointBuilder) Action(name string) *EndpointBuilder {
	b.meta.action = name
	return b
}

// Summary sets the operation summary.
func (b *EndpointBuilder) Summary(s string) *EndpointBuilder {
	b.meta.summary = s
	return b
}

// Description sets the operation description.
func (b *EndpointBuilder) Description(d string) *EndpointBuilder {
	b.meta.description = d
	return b
}

// Obsolete flags the endpoint as obsolete.
func (b *EndpointBuilder) Obsolete() *EndpointBuilder {
	b.meta.obsolete = true
	return b
}

// Returns sets the response payload type from a sample value. A nil value
// documents an endpoint without payload.
func (b *EndpointBuilder) Returns(v any) *EndpointBuilder {
	b.meta.response = typeOf(v)
	return b
}

// Param adds a parameter descriptor. A parameter named like a path
// variable replaces the generated one.
func (b *EndpointBuilder) Param(p swagger.ParameterDescriptor) *EndpointBuilder {
	b.meta.parameters = append(b.meta.parameters, p)
	return b
}

// PathParam declares the type of a path variable from a sample value.
func (b *EndpointBuilder) PathParam(name string, v any, description string) *EndpointBuilder {
	return b.Param(swagger.ParameterDescriptor{
		Name:        name,
		Source:      swagger.SourcePath,
		Type:        typeOf(v),
		Description: description,
	})
}

// QueryParam adds an optional query parameter typed from a sample value.
func (b *EndpointBuilder) QueryParam(name string, v any, description string) *EndpointBuilder {
	return b.Param(swagger.ParameterDescriptor{
		Name:        name,
		Source:      swagger.SourceQuery,
		Optional:    true,
		Type:        typeOf(v),
		Description: description,
	})
}

// Body adds a required request body parameter typed from a sample value.
func (b *EndpointBuilder) Body(name string, v any) *EndpointBuilder {
	return b.Param(swagger.ParameterDescriptor{
		Name:   name,
		Source: swagger.SourceBody,
		Type:   typeOf(v),
	})
}

// Produces appends response media types.
func (b *EndpointBuilder) Produces(mediaTypes ...string) *EndpointBuilder {
	b.meta.produces = append(b.meta.produces, mediaTypes...)
	return b
}

// Consumes appends request media types.
func (b *EndpointBuilder) Consumes(mediaTypes ...string) *EndpointBuilder {
	b.meta.consumes = append(b.meta.consumes, mediaTypes...)
	return b
}

// describe builds the descriptor of one method of a route. Path variables
// without a declared parameter become string path parameters constrained
// by their route pattern.
func (b *EndpointBuilder) describe(method, routeName string, tpl routeTemplate) swagger.EndpointDescriptor {
	action := b.meta.action
	if action == "" {
		action = routeName
	}

	return swagger.EndpointDescriptor{
		Method:       method,
		RelativePath: tpl.path,
		Parameters:   mergeParameters(tpl.params, b.meta.parameters),
		ResponseType: b.meta.response,
		Obsolete:     b.meta.obsolete,
		Group:        b.meta.group,
		Action:       action,
		Summary:      b.meta.summary,
		Description:  b.meta.description,
		Produces:     slices.Clone(b.meta.produces),
		Consumes:     slices.Clone(b.meta.consumes),
	}
}

// mergeParameters combines route-derived parameters with declared ones.
// A declared parameter with the same name replaces the route-derived one
// but inherits its pattern when it has none.
func mergeParameters(route, declared []swagger.ParameterDescriptor) []swagger.ParameterDescriptor {
	if len(route) == 0 && len(declared) == 0 {
		return nil
	}

	patterns := make(map[string]string, len(route))
	for _, p := range route {
		patterns[p.Name] = p.Pattern
	}

	overrides := make(map[string]struct{}, len(declared))
	merged := make([]swagger.ParameterDescriptor, 0, len(route)+len(declared))
	for _, p := range declared {
		if p.Pattern == "" {
			p.Pattern = patterns[p.Name]
		}
		overrides[p.Name] = struct{}{}
		merged = append(merged, p)
	}

	var result []swagger.ParameterDescriptor
	for _, p := range route {
		if _, ok := overrides[p.Name]; !ok {
			result = append(result, p)
		}
	}

	return append(result, merged...)
}

func typeOf(v any) reflect.Type {
	if v == nil {
		return nil
	}
	if t, ok := v.(reflect.Type); ok {
		return t
	}
	return reflect.TypeOf(v)
}
