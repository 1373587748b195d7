package swagger

import (
	"path"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
)

// definitionsPrefix is the JSON pointer prefix of every schema reference.
const definitionsPrefix = "#/definitions/"

// SchemaRegistry maps host types to schemas. Named object types are stored
// once in Definitions and referenced by $ref.
type SchemaRegistry interface {
	// GetOrRegister returns the schema for t, registering definitions as
	// a side effect.
	GetOrRegister(t reflect.Type) *Schema

	// Definitions returns the definitions collected so far.
	Definitions() map[string]*Schema
}

// Exampler can be implemented by types to provide an example value for the
// generated definition.
//
//	func (u User) SwaggerExample() any {
//	    return User{ID: "550e8400-e29b-41d4-a716-446655440000", Name: "Alice"}
//	}
type Exampler interface {
	SwaggerExample() any
}

var (
	timeType = reflect.TypeFor[time.Time]()
	uuidType = reflect.TypeFor[uuid.UUID]()
)

// SchemaGenerator is the reflection based SchemaRegistry. It is not safe for
// concurrent use; the Generator creates one per call.
//
// See: https://swagger.io/specification/v2/#schema-object
// See: https://swagger.io/specification/v2/#definitions-object
type SchemaGenerator struct {
	schemas   map[string]*Schema
	visited   map[reflect.Type]bool
	typeNames map[reflect.Type]string // type -> chosen definition name
	nameTypes map[string]reflect.Type // definition name -> type that claimed it
}

// NewSchemaGenerator creates an empty schema generator.
func NewSchemaGenerator() *SchemaGenerator {
	return &SchemaGenerator{
		schemas:   make(map[string]*Schema),
		visited:   make(map[reflect.Type]bool),
		typeNames: make(map[reflect.Type]string),
		nameTypes: make(map[string]reflect.Type),
	}
}

// Definitions returns the collected definitions.
func (g *SchemaGenerator) Definitions() map[string]*Schema {
	return g.schemas
}

// RegisterName assigns a definition name to t. It lets anonymous struct
// types built at runtime be referenced by name like declared types.
// It returns false when name already belongs to another type or t already
// has a name.
func (g *SchemaGenerator) RegisterName(t reflect.Type, name string) bool {
	if existing, ok := g.nameTypes[name]; ok {
		return existing == t
	}
	if _, ok := g.typeNames[t]; ok {
		return false
	}
	g.typeNames[t] = name
	g.nameTypes[name] = t
	return true
}

// GetOrRegister produces the schema for t. Named struct types are stored in
// the definitions and referenced via $ref.
func (g *SchemaGenerator) GetOrRegister(t reflect.Type) *Schema {
	if t == nil {
		return nil
	}
	return g.generateType(t)
}

func (g *SchemaGenerator) generateType(t reflect.Type) *Schema {
	// Swagger 2.0 has no null type; pointers are described by their element.
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() == reflect.Struct && t != timeType {
		if name := g.schemaName(t); name != "" {
			if !g.visited[t] {
				g.visited[t] = true
				schema := g.generateStructSchema(t)

				if ex, ok := reflect.New(t).Interface().(Exampler); ok {
					schema.Example = ex.SwaggerExample()
				}

				g.schemas[name] = schema
			}
			return &Schema{Ref: definitionsPrefix + name}
		}
	}

	return g.generateInlineType(t)
}

// generateInlineType maps Go primitive and composite types to schema types
// and Swagger 2.0 data type formats.
//
// See: https://swagger.io/specification/v2/#data-types
func (g *SchemaGenerator) generateInlineType(t reflect.Type) *Schema {
	switch t {
	case timeType:
		return &Schema{Type: "string", Format: "date-time"}
	case uuidType:
		return &Schema{Type: "string", Format: "uuid"}
	}

	switch t.Kind() {
	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16:
		return &Schema{Type: "integer", Format: "int32"}

	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer", Format: "int64"}

	case reflect.Float32:
		return &Schema{Type: "number", Format: "float"}

	case reflect.Float64:
		return &Schema{Type: "number", Format: "double"}

	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: "string", Format: "byte"}
		}
		return &Schema{
			Type:  "array",
			Items: g.generateType(t.Elem()),
		}

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &Schema{Type: "object"}
		}
		return &Schema{
			Type:                 "object",
			AdditionalProperties: g.generateType(t.Elem()),
		}

	case reflect.Struct:
		return g.generateStructSchema(t)

	case reflect.Interface:
		return &Schema{}
	}

	return nil
}

func (g *SchemaGenerator) generateStructSchema(t reflect.Type) *Schema {
	schema := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema),
	}

	g.collectFields(t, schema, false)

	if len(schema.Properties) == 0 {
		schema.Properties = nil
	}

	return schema
}

// collectFields collects exported struct fields into the schema, inlining
// embedded structs the way encoding/json does. Fields of pointer-embedded
// structs are never required.
func (g *SchemaGenerator) collectFields(t reflect.Type, schema *Schema, allOptional bool) {
	for i := range t.NumField() {
		field := t.Field(i)

		if !field.IsExported() {
			continue
		}

		if field.Anonymous {
			jsonName, _ := parseJSONTag(field.Tag.Get("json"))
			if jsonName == "" {
				ft := field.Type
				isPtr := ft.Kind() == reflect.Pointer
				if isPtr {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					g.collectFields(ft, schema, allOptional || isPtr)
					continue
				}
			}
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name, opts := parseJSONTag(jsonTag)
		if name == "" {
			name = field.Name
		}

		fieldSchema := g.generateType(field.Type)
		if fieldSchema == nil {
			continue
		}

		// Siblings of $ref are ignored by Swagger 2.0 tooling.
		if fieldSchema.Ref == "" {
			applySwaggerTag(fieldSchema, field.Tag.Get("swagger"))

			if opts.stringEncode {
				applyStringEncoding(fieldSchema)
			}
		}

		schema.Properties[name] = fieldSchema

		if !opts.omitempty && !allOptional {
			schema.Required = append(schema.Required, name)
		}
	}
}

type jsonTagOpts struct {
	omitempty    bool
	stringEncode bool
}

func parseJSONTag(tag string) (string, jsonTagOpts) {
	name, rest, _ := strings.Cut(tag, ",")

	var opts jsonTagOpts
	for opt := range strings.SplitSeq(rest, ",") {
		switch opt {
		case "omitempty", "omitzero":
			opts.omitempty = true
		case "string":
			opts.stringEncode = true
		}
	}

	return name, opts
}

// tagKeyword applies one `swagger` tag keyword. Flag keywords ignore value.
type tagKeyword func(schema *Schema, value string)

var tagKeywords = map[string]tagKeyword{
	"description": func(s *Schema, v string) { s.Description = v },
	"title":       func(s *Schema, v string) { s.Title = v },
	"format":      func(s *Schema, v string) { s.Format = v },
	"pattern":     func(s *Schema, v string) { s.Pattern = v },
	"example":     func(s *Schema, v string) { s.Example = parseTagValue(s.Type, v) },
	"default":     func(s *Schema, v string) { s.Default = parseTagValue(s.Type, v) },

	"minimum":    func(s *Schema, v string) { s.Minimum = parseFloat(v) },
	"maximum":    func(s *Schema, v string) { s.Maximum = parseFloat(v) },
	"multipleOf": func(s *Schema, v string) { s.MultipleOf = parseFloat(v) },

	"minLength":     func(s *Schema, v string) { s.MinLength = parseInt(v) },
	"maxLength":     func(s *Schema, v string) { s.MaxLength = parseInt(v) },
	"minItems":      func(s *Schema, v string) { s.MinItems = parseInt(v) },
	"maxItems":      func(s *Schema, v string) { s.MaxItems = parseInt(v) },
	"minProperties": func(s *Schema, v string) { s.MinProperties = parseInt(v) },
	"maxProperties": func(s *Schema, v string) { s.MaxProperties = parseInt(v) },

	// Swagger 2.0 keeps the Draft 4 boolean form of the exclusive bounds.
	"exclusiveMinimum": func(s *Schema, _ string) { s.ExclusiveMinimum = true },
	"exclusiveMaximum": func(s *Schema, _ string) { s.ExclusiveMaximum = true },
	"uniqueItems":      func(s *Schema, _ string) { s.UniqueItems = true },
	"readOnly":         func(s *Schema, _ string) { s.ReadOnly = true },

	"enum": func(s *Schema, v string) {
		for item := range strings.SplitSeq(v, "|") {
			s.Enum = append(s.Enum, parseTagValue(s.Type, item))
		}
	},
}

// applySwaggerTag applies the keywords of a `swagger` struct tag. Enum
// values are separated by "|"; unknown keywords are ignored.
//
//	Name string `json:"name" swagger:"description=Display name,minLength=1,maxLength=64"`
//	Role string `json:"role" swagger:"enum=admin|user"`
func applySwaggerTag(schema *Schema, tag string) {
	for part := range strings.SplitSeq(tag, ",") {
		key, value, _ := strings.Cut(part, "=")
		if apply, ok := tagKeywords[strings.TrimSpace(key)]; ok {
			apply(schema, strings.TrimSpace(value))
		}
	}
}

func parseFloat(value string) *float64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(value string) *int {
	v, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &v
}

// parseTagValue converts a tag value to the Go type matching schemaType.
func parseTagValue(schemaType, value string) any {
	var (
		v   any
		err error
	)
	switch schemaType {
	case "integer":
		v, err = strconv.ParseInt(value, 10, 64)
	case "number":
		v, err = strconv.ParseFloat(value, 64)
	case "boolean":
		v, err = strconv.ParseBool(value)
	default:
		return value
	}
	if err != nil {
		return value
	}
	return v
}

// schemaName returns the definition name of t, claiming one on first use.
// Candidates are tried in order: the simple name, the name prefixed with
// the package ("ApiUser"), then the prefixed name with a counter
// ("ApiUser2"). Anonymous types have no name unless given one with
// RegisterName.
func (g *SchemaGenerator) schemaName(t reflect.Type) string {
	if name, ok := g.typeNames[t]; ok {
		return name
	}

	simple := sanitizeSchemaName(t.Name())
	if simple == "" || t.PkgPath() == "" {
		return ""
	}

	name := simple
	if !g.available(name, t) {
		prefixed := pkgPrefix(t.PkgPath()) + simple
		name = prefixed
		for n := 2; !g.available(name, t); n++ {
			name = prefixed + strconv.Itoa(n)
		}
	}

	g.typeNames[t] = name
	g.nameTypes[name] = t
	return name
}

// available reports whether name is free or already belongs to t.
func (g *SchemaGenerator) available(name string, t reflect.Type) bool {
	owner, taken := g.nameTypes[name]
	return !taken || owner == t
}

// pkgPrefix turns the last package path segment into a definition name
// prefix: "net/http" gives "Http", "gopkg.in/yaml.v3" gives "YamlV3".
func pkgPrefix(pkgPath string) string {
	return strcase.ToCamel(path.Base(pkgPath))
}

// sanitizeSchemaName flattens generic instantiation names into definition
// keys. Type arguments lose their package path and slice arguments get a
// "List" suffix: "Page[[]api.User]" becomes "PageUserList" and
// "Pair[string,int]" becomes "PairStringInt".
func sanitizeSchemaName(name string) string {
	base, args, ok := strings.Cut(name, "[")
	if !ok {
		return name
	}

	var b strings.Builder
	b.WriteString(base)

	for arg := range strings.SplitSeq(strings.TrimSuffix(args, "]"), ",") {
		lists := 0
		for strings.HasPrefix(arg, "[]") {
			arg = arg[2:]
			lists++
		}
		if dot := strings.LastIndexByte(arg, '.'); dot >= 0 {
			arg = arg[dot+1:]
		}
		b.WriteString(strcase.ToCamel(arg))
		b.WriteString(strings.Repeat("List", lists))
	}

	return b.String()
}

// applyStringEncoding matches the encoding/json ",string" option, which
// encodes numbers and booleans as JSON strings.
func applyStringEncoding(schema *Schema) {
	switch schema.Type {
	case "integer", "number", "boolean":
		schema.Type = "string"
		schema.Format = ""
	}
}
