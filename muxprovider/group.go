package muxprovider

import (
	"github.com/gorilla/mux"

	"github.com/vitalvas/swagger/swagger"
)

// groupDefaults holds the metadata a RouteGroup applies to every builder
// it creates.
type groupDefaults struct {
	group      string
	obsolete   bool
	parameters []swagger.ParameterDescriptor
	produces   []string
	consumes   []string
}

// RouteGroup provides shared descriptor defaults for the routes of one
// controller. Builders it creates are registered in the parent Provider.
type RouteGroup struct {
	provider *Provider
	defaults groupDefaults
}

// Obsolete marks all endpoints of the group obsolete. Endpoints cannot
// undo it.
func (g *RouteGroup) Obsolete() *RouteGroup {
	g.defaults.obsolete = true
	return g
}

// Param adds a parameter shared by every endpoint of the group.
func (g *RouteGroup) Param(p swagger.ParameterDescriptor) *RouteGroup {
	g.defaults.parameters = append(g.defaults.parameters, p)
	return g
}

// Produces appends response media types to the group defaults.
func (g *RouteGroup) Produces(mediaTypes ...string) *RouteGroup {
	g.defaults.produces = append(g.defaults.produces, mediaTypes...)
	return g
}

// Consumes appends request media types to the group defaults.
func (g *RouteGroup) Consumes(mediaTypes ...string) *RouteGroup {
	g.defaults.consumes = append(g.defaults.consumes, mediaTypes...)
	return g
}

// Route attaches a builder pre-populated with the group defaults to an
// existing mux route.
func (g *RouteGroup) Route(route *mux.Route) *EndpointBuilder {
	b := g.newBuilderWithDefaults()
	g.provider.routeOps[route] = b
	return b
}

// Op returns a builder for the named route pre-populated with the group
// defaults. An already registered name returns the existing builder
// unchanged.
func (g *RouteGroup) Op(routeName string) *EndpointBuilder {
	if b, ok := g.provider.operations[routeName]; ok {
		return b
	}
	b := g.newBuilderWithDefaults()
	g.provider.operations[routeName] = b
	return b
}

func (g *RouteGroup) newBuilderWithDefaults() *EndpointBuilder {
	b := newEndpointBuilder()
	b.meta.group = g.defaults.group
	b.meta.obsolete = g.defaults.obsolete

	if len(g.defaults.parameters) > 0 {
		b.meta.parameters = append(b.meta.parameters, g.defaults.parameters...)
	}
	if len(g.defaults.produces) > 0 {
		b.meta.produces = append(b.meta.produces, g.defaults.produces...)
	}
	if len(g.defaults.consumes) > 0 {
		b.meta.consumes = append(b.meta.consumes, g.defaults.consumes...)
	}

	return b
}
