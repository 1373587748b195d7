package swagger

import (
	"fmt"
	"maps"
	"net"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/idna"
)

// Generator assembles Swagger 2.0 documents from the endpoints of a
// Provider. A Generator holds no per-call state and is safe for concurrent
// use as long as its Provider and filters are.
type Generator struct {
	provider Provider
	cfg      Config
}

// NewGenerator creates a generator documenting the endpoints of provider.
func NewGenerator(provider Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Generate builds the document of apiVersion for an API served at rootURL.
// Any error aborts generation and no document is returned.
func (g *Generator) Generate(rootURL, apiVersion string) (*Document, error) {
	info, ok := g.cfg.Versions[apiVersion]
	if !ok {
		return nil, &UnknownAPIVersionError{Version: apiVersion}
	}
	if g.provider == nil {
		return nil, ErrNilProvider
	}

	root, err := parseRootURL(rootURL)
	if err != nil {
		return nil, err
	}

	a := &assembler{
		cfg:      g.cfg,
		registry: g.cfg.schemaRegistry(),
		names:    NewOperationNames(),
	}

	endpoints := g.endpoints(apiVersion)

	doc := &Document{
		Swagger:             Version,
		Info:                cloneInfo(info),
		Host:                root.host,
		BasePath:            root.basePath,
		Schemes:             g.schemes(root.scheme),
		Paths:               make(map[string]*PathItem),
		SecurityDefinitions: cloneSecurityDefinitions(g.cfg.SecurityDefinitions),
	}

	for _, pg := range groupBy(endpoints, EndpointDescriptor.Path) {
		item, err := a.buildPathItem(pg.key, pg.endpoints)
		if err != nil {
			return nil, err
		}
		doc.Paths[pg.key] = item
	}

	if doc.Tags, err = a.collectTags(endpoints); err != nil {
		return nil, err
	}

	// Shared with the registry so document filters may still register types.
	doc.Definitions = a.registry.Definitions()

	for _, filter := range g.cfg.DocumentFilters {
		if err := filter.ApplyDocument(doc, a.registry, g.provider); err != nil {
			return nil, err
		}
	}

	if len(doc.Definitions) == 0 {
		doc.Definitions = nil
	}

	return doc, nil
}

// endpoints returns the documented endpoints of apiVersion ordered by
// grouping key. The sort is stable, so provider order breaks ties.
func (g *Generator) endpoints(apiVersion string) []EndpointDescriptor {
	all := g.provider.Endpoints()
	endpoints := make([]EndpointDescriptor, 0, len(all))

	for _, e := range all {
		if g.cfg.VersionSupportResolver != nil && !g.cfg.VersionSupportResolver(e, apiVersion) {
			continue
		}
		if g.cfg.IgnoreObsoleteActions && e.Obsolete {
			continue
		}
		endpoints = append(endpoints, e)
	}

	slices.SortStableFunc(endpoints, func(a, b EndpointDescriptor) int {
		return g.cfg.compareKeys(g.cfg.groupingKey(a), g.cfg.groupingKey(b))
	})

	return endpoints
}

// cloneInfo copies the pointer fields of info so that document filters
// cannot reach the configured version map.
func cloneInfo(info Info) Info {
	if info.Contact != nil {
		contact := *info.Contact
		info.Contact = &contact
	}
	if info.License != nil {
		license := *info.License
		info.License = &license
	}
	return info
}

func cloneSecurityDefinitions(defs map[string]*SecurityScheme) map[string]*SecurityScheme {
	if defs == nil {
		return nil
	}
	out := make(map[string]*SecurityScheme, len(defs))
	for name, scheme := range defs {
		if scheme == nil {
			out[name] = nil
			continue
		}
		c := *scheme
		c.Scopes = maps.Clone(scheme.Scopes)
		out[name] = &c
	}
	return out
}

func (g *Generator) schemes(parsed string) []string {
	if len(g.cfg.Schemes) > 0 {
		return slices.Clone(g.cfg.Schemes)
	}
	return []string{parsed}
}

type rootInfo struct {
	scheme   string
	host     string
	basePath string
}

// hostProfile is the lookup profile without STD3 rules, so service names
// such as "my_service" stay valid hosts.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.StrictDomainName(false),
)

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
}

// parseRootURL extracts the scheme, host and base path of the document.
// The host is converted to its ASCII form and keeps its port unless it is
// the default one for the scheme. A root path of "/" has no base path.
//
// See: https://swagger.io/specification/v2/#swagger-object (host, basePath)
func parseRootURL(rootURL string) (rootInfo, error) {
	u, err := url.Parse(rootURL)
	if err != nil {
		return rootInfo{}, fmt.Errorf("%w: %w", ErrInvalidRootURL, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return rootInfo{}, fmt.Errorf("%w: %q", ErrInvalidRootURL, rootURL)
	}

	scheme := strings.ToLower(u.Scheme)

	host := u.Hostname()
	if ip := net.ParseIP(host); ip == nil {
		if host, err = hostProfile.ToASCII(host); err != nil {
			return rootInfo{}, fmt.Errorf("%w: %w", ErrInvalidRootURL, err)
		}
	} else if ip.To4() == nil {
		host = "[" + host + "]"
	}
	if port := u.Port(); port != "" && port != defaultPorts[scheme] {
		host += ":" + port
	}

	basePath := strings.TrimRight(u.Path, "/")

	return rootInfo{scheme: scheme, host: host, basePath: basePath}, nil
}
