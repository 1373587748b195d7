package muxprovider

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/vitalvas/swagger/swagger"
)

const (
	uuidPattern      = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`
	uuidLowerPattern = `[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`
)

// patternTypes maps common route variable patterns to the Go type used to
// document them.
var patternTypes = map[string]reflect.Type{
	`[0-9]+`:         reflect.TypeFor[int64](),
	`\d+`:            reflect.TypeFor[int64](),
	uuidPattern:      reflect.TypeFor[uuid.UUID](),
	uuidLowerPattern: reflect.TypeFor[uuid.UUID](),
}

var stringType = reflect.TypeFor[string]()

type routeTemplate struct {
	path   string
	params []swagger.ParameterDescriptor
}

// parseTemplate rewrites a mux path template to swagger form, replacing
// {name:pattern} with {name}, and derives a path parameter per variable.
// Patterns may contain nested braces such as {code:[a-z]{3}}.
func parseTemplate(tpl string) routeTemplate {
	var (
		b      strings.Builder
		params []swagger.ParameterDescriptor
	)

	for i := 0; i < len(tpl); {
		if tpl[i] != '{' {
			b.WriteByte(tpl[i])
			i++
			continue
		}

		end := closingBrace(tpl, i)
		if end < 0 {
			b.WriteString(tpl[i:])
			break
		}

		name, pattern, _ := strings.Cut(tpl[i+1:end], ":")
		name = strings.TrimSpace(name)
		b.WriteString("{" + name + "}")
		params = append(params, variableParameter(name, pattern, swagger.SourcePath))
		i = end + 1
	}

	return routeTemplate{path: b.String(), params: params}
}

// queryParameters derives required query parameters from mux query
// templates of the form key=value or key={name:pattern}.
func queryParameters(templates []string) []swagger.ParameterDescriptor {
	var params []swagger.ParameterDescriptor
	for _, tpl := range templates {
		key, value, _ := strings.Cut(tpl, "=")
		if key == "" {
			continue
		}

		if strings.HasPrefix(value, "{") && closingBrace(value, 0) == len(value)-1 {
			_, pattern, _ := strings.Cut(value[1:len(value)-1], ":")
			params = append(params, variableParameter(key, pattern, swagger.SourceQuery))
			continue
		}

		p := swagger.ParameterDescriptor{Name: key, Source: swagger.SourceQuery, Type: stringType}
		if value != "" {
			p.Pattern = "^" + regexp.QuoteMeta(value) + "$"
		}
		params = append(params, p)
	}
	return params
}

func variableParameter(name, pattern string, source swagger.ParameterSource) swagger.ParameterDescriptor {
	p := swagger.ParameterDescriptor{Name: name, Source: source, Type: stringType}
	if pattern == "" {
		return p
	}
	if t, ok := patternTypes[pattern]; ok {
		p.Type = t
		return p
	}
	p.Pattern = "^" + pattern + "$"
	return p
}

func closingBrace(s string, start int) int {
	level := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			level++
		case '}':
			level--
			if level == 0 {
				return i
			}
		}
	}
	return -1
}
