package swagger

// Version is the value of the "swagger" field of every generated document.
const Version = "2.0"

// Document represents the root of a Swagger 2.0 document.
//
// See: https://swagger.io/specification/v2/#swagger-object
type Document struct {
	Swagger             string                     `json:"swagger"`
	Info                Info                       `json:"info"`
	Host                string                     `json:"host,omitempty"`
	BasePath            string                     `json:"basePath,omitempty"`
	Schemes             []string                   `json:"schemes,omitempty"`
	Consumes            []string                   `json:"consumes,omitempty"`
	Produces            []string                   `json:"produces,omitempty"`
	Paths               map[string]*PathItem       `json:"paths"`
	Definitions         map[string]*Schema         `json:"definitions,omitempty"`
	Parameters          map[string]*Parameter      `json:"parameters,omitempty"`
	Responses           map[string]*Response       `json:"responses,omitempty"`
	SecurityDefinitions map[string]*SecurityScheme `json:"securityDefinitions,omitempty"`
	Security            []SecurityRequirement      `json:"security,omitempty"`
	Tags                []Tag                      `json:"tags,omitempty"`
	ExternalDocs        *ExternalDocs              `json:"externalDocs,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://swagger.io/specification/v2/#info-object
type Info struct {
	Title          string   `json:"title" yaml:"title"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	TermsOfService string   `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License        *License `json:"license,omitempty" yaml:"license,omitempty"`
	Version        string   `json:"version" yaml:"version"`
}

// Contact represents contact information for the API.
//
// See: https://swagger.io/specification/v2/#contact-object
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License represents license information for the API.
//
// See: https://swagger.io/specification/v2/#license-object
type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// PathItem describes the operations available on a single path.
// A path item holds at most one operation per HTTP method.
//
// See: https://swagger.io/specification/v2/#path-item-object
type PathItem struct {
	Ref        string       `json:"$ref,omitempty"`
	Get        *Operation   `json:"get,omitempty"`
	Put        *Operation   `json:"put,omitempty"`
	Post       *Operation   `json:"post,omitempty"`
	Delete     *Operation   `json:"delete,omitempty"`
	Options    *Operation   `json:"options,omitempty"`
	Head       *Operation   `json:"head,omitempty"`
	Patch      *Operation   `json:"patch,omitempty"`
	Parameters []*Parameter `json:"parameters,omitempty"`
}

// Operations returns the operations of the path item keyed by lower-case
// HTTP method. Empty slots are left out.
func (p *PathItem) Operations() map[string]*Operation {
	ops := make(map[string]*Operation, len(operationSlots))
	for _, method := range methodOrder {
		if op := *operationSlots[method](p); op != nil {
			ops[method] = op
		}
	}
	return ops
}

// Operation describes a single API operation on a path.
//
// See: https://swagger.io/specification/v2/#operation-object
type Operation struct {
	Tags         []string              `json:"tags,omitempty"`
	Summary      string                `json:"summary,omitempty"`
	Description  string                `json:"description,omitempty"`
	ExternalDocs *ExternalDocs         `json:"externalDocs,omitempty"`
	OperationID  string                `json:"operationId,omitempty"`
	Consumes     []string              `json:"consumes,omitempty"`
	Produces     []string              `json:"produces,omitempty"`
	Parameters   []*Parameter          `json:"parameters,omitempty"`
	Responses    map[string]*Response  `json:"responses"`
	Schemes      []string              `json:"schemes,omitempty"`
	Deprecated   bool                  `json:"deprecated,omitempty"`
	Security     []SecurityRequirement `json:"security,omitempty"`
}

// Parameter describes a single operation parameter. Body parameters carry
// a schema; every other location carries the primitive fields inline.
//
// See: https://swagger.io/specification/v2/#parameter-object
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required"`
	Schema      *Schema `json:"schema,omitempty"`

	Type             string `json:"type,omitempty"`
	Format           string `json:"format,omitempty"`
	AllowEmptyValue  bool   `json:"allowEmptyValue,omitempty"`
	Items            *Items `json:"items,omitempty"`
	CollectionFormat string `json:"collectionFormat,omitempty"`
	Default          any    `json:"default,omitempty"`

	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMaximum bool     `json:"exclusiveMaximum,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty"`
	ExclusiveMinimum bool     `json:"exclusiveMinimum,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty"`
	MinLength        *int     `json:"minLength,omitempty"`
	Pattern          string   `json:"pattern,omitempty"`
	MaxItems         *int     `json:"maxItems,omitempty"`
	MinItems         *int     `json:"minItems,omitempty"`
	UniqueItems      bool     `json:"uniqueItems,omitempty"`
	Enum             []any    `json:"enum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`
}

// Parameter locations.
//
// See: https://swagger.io/specification/v2/#parameter-object (in)
const (
	InPath     = "path"
	InQuery    = "query"
	InBody     = "body"
	InHeader   = "header"
	InFormData = "formData"
)

// Items describes the type of items in a non-body array parameter.
//
// See: https://swagger.io/specification/v2/#items-object
type Items struct {
	Type             string   `json:"type"`
	Format           string   `json:"format,omitempty"`
	Items            *Items   `json:"items,omitempty"`
	CollectionFormat string   `json:"collectionFormat,omitempty"`
	Default          any      `json:"default,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty"`
	MinLength        *int     `json:"minLength,omitempty"`
	Pattern          string   `json:"pattern,omitempty"`
	Enum             []any    `json:"enum,omitempty"`
}

// Response describes a single response from an API operation.
// The description field is REQUIRED.
//
// See: https://swagger.io/specification/v2/#response-object
type Response struct {
	Description string             `json:"description"`
	Schema      *Schema            `json:"schema,omitempty"`
	Headers     map[string]*Header `json:"headers,omitempty"`
	Examples    map[string]any     `json:"examples,omitempty"`
}

// Header describes a single response header.
//
// See: https://swagger.io/specification/v2/#header-object
type Header struct {
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Format      string `json:"format,omitempty"`
	Items       *Items `json:"items,omitempty"`
}

// Schema represents a Swagger 2.0 Schema Object, a subset of JSON Schema
// Draft 4 extended with a few Swagger-specific keywords.
//
// See: https://swagger.io/specification/v2/#schema-object
type Schema struct {
	Ref string `json:"$ref,omitempty"`

	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Example     any    `json:"example,omitempty"`
	ReadOnly    bool   `json:"readOnly,omitempty"`

	MultipleOf       *float64 `json:"multipleOf,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMaximum bool     `json:"exclusiveMaximum,omitempty"`
	Minimum          *float64 `json:"minimum,omitempty"`
	ExclusiveMinimum bool     `json:"exclusiveMinimum,omitempty"`
	MaxLength        *int     `json:"maxLength,omitempty"`
	MinLength        *int     `json:"minLength,omitempty"`
	Pattern          string   `json:"pattern,omitempty"`

	Items       *Schema `json:"items,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty"`
	MinItems    *int    `json:"minItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`

	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	MaxProperties        *int               `json:"maxProperties,omitempty"`
	MinProperties        *int               `json:"minProperties,omitempty"`

	Enum          []any         `json:"enum,omitempty"`
	AllOf         []*Schema     `json:"allOf,omitempty"`
	Discriminator string        `json:"discriminator,omitempty"`
	ExternalDocs  *ExternalDocs `json:"externalDocs,omitempty"`
	XML           *XML          `json:"xml,omitempty"`
}

// Tag adds metadata to a single tag used by Operation Objects.
//
// See: https://swagger.io/specification/v2/#tag-object
type Tag struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty"`
}

// ExternalDocs allows referencing external documentation.
//
// See: https://swagger.io/specification/v2/#external-documentation-object
type ExternalDocs struct {
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// XML describes XML-specific metadata for properties.
//
// See: https://swagger.io/specification/v2/#xml-object
type XML struct {
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Attribute bool   `json:"attribute,omitempty"`
	Wrapped   bool   `json:"wrapped,omitempty"`
}

// SecurityScheme defines a security scheme used by API operations.
// The "type" field determines the scheme: "basic", "apiKey" or "oauth2".
//
// See: https://swagger.io/specification/v2/#security-scheme-object
type SecurityScheme struct {
	Type             string            `json:"type" yaml:"type"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	Name             string            `json:"name,omitempty" yaml:"name,omitempty"`
	In               string            `json:"in,omitempty" yaml:"in,omitempty"`
	Flow             string            `json:"flow,omitempty" yaml:"flow,omitempty"`
	AuthorizationURL string            `json:"authorizationUrl,omitempty" yaml:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty" yaml:"tokenUrl,omitempty"`
	Scopes           map[string]string `json:"scopes,omitempty" yaml:"scopes,omitempty"`
}

// SecurityRequirement lists required security schemes for an operation.
// Each key maps to a list of scope names (empty for non-oauth2 schemes).
//
// See: https://swagger.io/specification/v2/#security-requirement-object
type SecurityRequirement map[string][]string
