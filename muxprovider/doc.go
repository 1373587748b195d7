/*
Package muxprovider describes the routes of a gorilla/mux router as swagger
endpoint descriptors.

Metadata is attached per route, either by route name or by route pointer,
with a fluent builder:

	r := mux.NewRouter()
	r.HandleFunc("/users/{id:[0-9]+}", getUser).Methods(http.MethodGet).Name("getUser")

	p := muxprovider.New(r)
	users := p.Group("Users").Produces("application/json")
	users.Op("getUser").
		Summary("Get a user").
		Returns(User{})

	doc, err := swagger.NewGenerator(p, cfg).Generate("https://api.example.com", "v1")

# Routes

Endpoints walks the router in registration order. Routes without a path
template or without a method matcher are skipped, as are routes without
metadata unless IncludeAll is set. A route matching several methods yields
one descriptor per method.

# Path Variables

Variables such as {id:[0-9]+} are rewritten to {id}. Each variable becomes
a path parameter: well-known numeric and UUID patterns are typed, other
patterns are kept as an anchored pattern on a string parameter. Declaring
a parameter with the same name through the builder replaces the derived
one. Query templates registered with Queries become required query
parameters.
*/
package muxprovider
