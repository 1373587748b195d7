package swagger

import (
	"net/http"
	"slices"
	"strconv"
)

// assembler builds operations for one Generate call. It owns the call's
// schema registry and operation id set.
type assembler struct {
	cfg      Config
	registry SchemaRegistry
	names    *OperationNames
}

// assembleOperation builds the operation documenting d and runs the
// operation filters on it.
//
// See: https://swagger.io/specification/v2/#operation-object
func (a *assembler) assembleOperation(d EndpointDescriptor) (*Operation, error) {
	op := &Operation{
		Summary:     d.Summary,
		Description: d.Description,
		OperationID: a.names.ReserveFor(d),
		Produces:    slices.Clone(d.Produces),
		Consumes:    slices.Clone(d.Consumes),
		Parameters:  a.parameters(d),
		Responses:   a.responses(d),
		Deprecated:  d.Obsolete,
	}

	if key := a.cfg.groupingKey(d); key != "" {
		op.Tags = []string{key}
	}

	for _, filter := range a.cfg.OperationFilters {
		if err := filter.ApplyOperation(op, a.registry, d); err != nil {
			return nil, err
		}
	}

	return op, nil
}

// parameters classifies every descriptor parameter. Duplicates by name and
// location keep the first occurrence. The result is nil when empty.
func (a *assembler) parameters(d EndpointDescriptor) []*Parameter {
	if len(d.Parameters) == 0 {
		return nil
	}

	pathVars := pathVariables(d.Path())
	seen := make(map[[2]string]struct{}, len(d.Parameters))

	var params []*Parameter
	for _, p := range d.Parameters {
		param := classifyParameter(a.registry, pathVars, d.Method, p)
		key := [2]string{param.Name, param.In}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		params = append(params, param)
	}

	return params
}

// responses builds the single success response of d: 200 with the payload
// schema, or 204 when the endpoint returns no value.
//
// See: https://swagger.io/specification/v2/#responses-object
func (a *assembler) responses(d EndpointDescriptor) map[string]*Response {
	if !d.returnsValue() {
		return map[string]*Response{
			strconv.Itoa(http.StatusNoContent): {Description: http.StatusText(http.StatusNoContent)},
		}
	}

	return map[string]*Response{
		strconv.Itoa(http.StatusOK): {
			Description: http.StatusText(http.StatusOK),
			Schema:      a.registry.GetOrRegister(d.ResponseType),
		},
	}
}
