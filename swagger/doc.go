// Package swagger assembles Swagger 2.0 documents from endpoint descriptors
// discovered by a host API framework.
//
// See: https://swagger.io/specification/v2/
//
// # Generator
//
// A Provider supplies EndpointDescriptor values; a Generator groups them by
// path and method, derives unique operation ids, classifies parameters and
// runs the configured filters:
//
//	gen := swagger.NewGenerator(provider, swagger.Config{
//	    Versions: map[string]swagger.Info{
//	        "v1": {Title: "Users API", Version: "v1"},
//	    },
//	    ConflictingActionsResolver: swagger.FirstAction,
//	})
//
//	doc, err := gen.Generate("https://api.example.com/api", "v1")
//
// Every call builds its own SchemaRegistry and OperationNames, so one
// Generator may serve concurrent calls.
//
// # Paths and Operations
//
// Endpoints are ordered by grouping key (Config.GroupingKeySelector, the
// endpoint Group by default) and bucketed by path with the query string
// removed. Within a path, endpoints are bucketed by lower-cased method;
// methods without a PathItem field are skipped. Two or more endpoints on
// the same path and method are reduced by Config.ConflictingActionsResolver.
// There is no default resolver: without one, Generate returns a
// *ConflictError.
//
// Each operation is tagged with its grouping key. Endpoints without a
// response type are documented with a single "204 No Content" response;
// every other endpoint gets "200 OK" with the registry schema of the
// response type.
//
// # Operation IDs
//
// Operation ids are unique per document. The first choice is derived from
// method and path ("GetUsersById"). When taken, the group and action names
// are used ("Users_GetById"), then suffixed with "_1", "_2" and so on.
//
// # Parameters
//
// A parameter named like a path placeholder is a path parameter. Otherwise
// a body-sourced parameter is a body parameter unless the method is GET,
// and everything else is a query parameter. Body parameters reference
// their schema; other parameters carry the schema keywords inline.
//
//	type Filter struct {
//	    Role string `json:"role" swagger:"enum=admin|user,description=User role"`
//	}
//
// # Filters
//
// ModelFilter, OperationFilter and DocumentFilter extend the output. They
// run synchronously in configured order and may mutate only what they are
// given. A filter error aborts generation and is returned unchanged.
package swagger
