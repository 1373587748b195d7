/*
Package manifest provides swagger endpoint descriptors read from a YAML
manifest, for services whose routes are not available as Go types.

	versions:
	  v1:
	    title: Users API
	    version: "1.0"
	endpoints:
	  - method: GET
	    path: users/{id}
	    group: Users
	    action: Get
	    response: User
	    versions: [v1]
	    parameters:
	      - name: id
	        in: path
	        type: int64
	models:
	  - name: User
	    description: A registered user
	    properties:
	      - name: id
	        type: int64
	        required: true
	      - name: tags
	        type: "[]string"

Types are scalar names (string, integer, int32, int64, number, float,
double, boolean, byte, uuid, date-time, object, any), model names, or
compositions with the "[]" and "map[string]" prefixes. Each model becomes a
struct type built at runtime; NewSchemaRegistry returns a registry that
documents those types under their model names. Models may reference each
other but not form cycles.

Use the manifest as a Generator provider together with its version
resolver and schema registry:

	m, err := manifest.LoadFile("api.yaml")
	cfg := swagger.Config{
		Versions:               m.Versions(),
		VersionSupportResolver: m.SupportsVersion,
		NewSchemaRegistry:      m.NewSchemaRegistry,
	}
	doc, err := swagger.NewGenerator(m, cfg).Generate(rootURL, "v1")
*/
package manifest
