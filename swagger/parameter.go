package swagger

import (
	"net/http"
	"regexp"
	"strings"
)

// pathVarRegexp matches path template variables in the form {name} or
// {name:pattern}.
var pathVarRegexp = regexp.MustCompile(`\{([^}:]+)(?::[^}]*)?\}`)

// pathVariables returns the set of placeholder names of a path template.
func pathVariables(path string) map[string]struct{} {
	matches := pathVarRegexp.FindAllStringSubmatch(path, -1)
	vars := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		vars[strings.TrimSpace(m[1])] = struct{}{}
	}
	return vars
}

// parameterLocation picks where a parameter lives: a matching path
// placeholder wins, then a body source on any method but GET, then query.
func parameterLocation(pathVars map[string]struct{}, method string, p ParameterDescriptor) string {
	if _, ok := pathVars[p.Name]; ok {
		return InPath
	}
	if p.Source == SourceBody && !strings.EqualFold(method, http.MethodGet) {
		return InBody
	}
	return InQuery
}

// ClassifyParameter builds the parameter object for p on an endpoint with
// the given path template and method.
//
// See: https://swagger.io/specification/v2/#parameter-object
func ClassifyParameter(registry SchemaRegistry, path, method string, p ParameterDescriptor) *Parameter {
	return classifyParameter(registry, pathVariables(path), method, p)
}

func classifyParameter(registry SchemaRegistry, pathVars map[string]struct{}, method string, p ParameterDescriptor) *Parameter {
	param := &Parameter{
		Name: p.Name,
		In:   parameterLocation(pathVars, method, p),
	}

	if p.Type == nil {
		param.Type = "string"
		param.Required = true
		return param
	}

	param.Required = param.In == InPath || !p.Optional
	param.Description = p.Description

	schema := registry.GetOrRegister(p.Type)
	if param.In == InBody {
		param.Schema = schema
	} else {
		populateFromSchema(param, resolveRef(registry, schema))
	}

	if p.Pattern != "" {
		param.Pattern = p.Pattern
	}
	if p.Default != nil {
		param.Default = p.Default
	}

	return param
}

// resolveRef returns the definition a $ref schema points to, or schema
// itself.
func resolveRef(registry SchemaRegistry, schema *Schema) *Schema {
	if schema == nil || schema.Ref == "" {
		return schema
	}
	name := strings.TrimPrefix(schema.Ref, definitionsPrefix)
	if def, ok := registry.Definitions()[name]; ok {
		return def
	}
	return schema
}

// populateFromSchema flattens the primitive keywords of schema onto a
// non-body parameter. Objects cannot be expressed outside the body and
// degrade to strings.
func populateFromSchema(param *Parameter, schema *Schema) {
	if schema == nil || schema.Type == "" || schema.Type == "object" {
		param.Type = "string"
		return
	}

	param.Type = schema.Type
	param.Format = schema.Format
	param.Default = schema.Default
	param.Maximum = schema.Maximum
	param.ExclusiveMaximum = schema.ExclusiveMaximum
	param.Minimum = schema.Minimum
	param.ExclusiveMinimum = schema.ExclusiveMinimum
	param.MaxLength = schema.MaxLength
	param.MinLength = schema.MinLength
	param.Pattern = schema.Pattern
	param.MaxItems = schema.MaxItems
	param.MinItems = schema.MinItems
	param.UniqueItems = schema.UniqueItems
	param.Enum = schema.Enum
	param.MultipleOf = schema.MultipleOf

	if schema.Type == "array" {
		param.Items = itemsFromSchema(schema.Items)
		if param.In == InQuery {
			param.CollectionFormat = "multi"
		}
	}
}

// itemsFromSchema converts an array item schema to an Items object.
//
// See: https://swagger.io/specification/v2/#items-object
func itemsFromSchema(schema *Schema) *Items {
	if schema == nil || schema.Type == "" || schema.Type == "object" {
		return &Items{Type: "string"}
	}
	items := &Items{
		Type:      schema.Type,
		Format:    schema.Format,
		Default:   schema.Default,
		Maximum:   schema.Maximum,
		Minimum:   schema.Minimum,
		MaxLength: schema.MaxLength,
		MinLength: schema.MinLength,
		Pattern:   schema.Pattern,
		Enum:      schema.Enum,
	}
	if schema.Type == "array" {
		items.Items = itemsFromSchema(schema.Items)
	}
	return items
}
