package muxprovider

import (
	"strings"

	"github.com/gorilla/mux"

	"github.com/vitalvas/swagger/swagger"
)

// Provider collects descriptor metadata for the routes of a mux router and
// reports them as swagger endpoints.
type Provider struct {
	router     *mux.Router
	operations map[string]*EndpointBuilder     // keyed by route name (Op)
	routeOps   map[*mux.Route]*EndpointBuilder // keyed by route pointer (Route)
	includeAll bool
	prefix     string
}

var _ swagger.Provider = (*Provider)(nil)

// New creates a provider for the given router.
func New(r *mux.Router) *Provider {
	return &Provider{
		router:     r,
		operations: make(map[string]*EndpointBuilder),
		routeOps:   make(map[*mux.Route]*EndpointBuilder),
	}
}

// IncludeAll reports routes without attached metadata as well. They get an
// empty group and their route name as action.
func (p *Provider) IncludeAll() *Provider {
	p.includeAll = true
	return p
}

// StripPrefix removes a path prefix from route templates, for routers
// mounted below the base path of the root URL.
func (p *Provider) StripPrefix(prefix string) *Provider {
	p.prefix = strings.TrimRight(prefix, "/")
	return p
}

// Op returns the builder for the named route, creating it on first use.
func (p *Provider) Op(routeName string) *EndpointBuilder {
	if b, ok := p.operations[routeName]; ok {
		return b
	}
	b := newEndpointBuilder()
	p.operations[routeName] = b
	return b
}

// Route attaches a builder to an existing mux route.
func (p *Provider) Route(route *mux.Route) *EndpointBuilder {
	b := newEndpointBuilder()
	p.routeOps[route] = b
	return b
}

// Group returns a route group whose builders default to the given group
// name.
func (p *Provider) Group(name string) *RouteGroup {
	return &RouteGroup{provider: p, defaults: groupDefaults{group: name}}
}

// Endpoints walks the router in registration order and returns one
// descriptor per route and method. Routes without a path template or
// method matcher are skipped.
func (p *Provider) Endpoints() []swagger.EndpointDescriptor {
	var endpoints []swagger.EndpointDescriptor

	_ = p.router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}

		builder := p.lookup(route)
		if builder == nil {
			return nil
		}

		tpl := parseTemplate(p.stripPrefix(pathTpl))
		if queries, err := route.GetQueriesTemplates(); err == nil {
			tpl.params = append(tpl.params, queryParameters(queries)...)
		}

		for _, method := range methods {
			endpoints = append(endpoints, builder.describe(method, route.GetName(), tpl))
		}

		return nil
	})

	return endpoints
}

func (p *Provider) stripPrefix(path string) string {
	if p.prefix == "" {
		return path
	}
	rest, ok := strings.CutPrefix(path, p.prefix)
	if !ok || (rest != "" && rest[0] != '/') {
		return path
	}
	return rest
}

// lookup finds the builder of a route, first by route pointer, then by
// route name.
func (p *Provider) lookup(route *mux.Route) *EndpointBuilder {
	if b, ok := p.routeOps[route]; ok {
		return b
	}
	if name := route.GetName(); name != "" {
		if b, ok := p.operations[name]; ok {
			return b
		}
	}
	if p.includeAll {
		return newEndpointBuilder()
	}
	return nil
}
