package swagger

// ModelContext is the neutral context handed to model filters while tags
// are collected. Key is the grouping key that becomes the tag name; Group
// is the controller identity of the first endpoint carrying that key.
type ModelContext struct {
	Key      string
	Group    string
	Registry SchemaRegistry
}

// ModelFilter populates schema-like metadata, typically a description,
// for a model context.
type ModelFilter interface {
	ApplyModel(model *Schema, ctx ModelContext) error
}

// ModelFilterFunc adapts a function to the ModelFilter interface.
type ModelFilterFunc func(model *Schema, ctx ModelContext) error

// ApplyModel implements ModelFilter.
func (f ModelFilterFunc) ApplyModel(model *Schema, ctx ModelContext) error {
	return f(model, ctx)
}

// OperationFilter mutates an assembled operation. It receives the
// descriptor the operation was built from.
type OperationFilter interface {
	ApplyOperation(op *Operation, registry SchemaRegistry, endpoint EndpointDescriptor) error
}

// OperationFilterFunc adapts a function to the OperationFilter interface.
type OperationFilterFunc func(op *Operation, registry SchemaRegistry, endpoint EndpointDescriptor) error

// ApplyOperation implements OperationFilter.
func (f OperationFilterFunc) ApplyOperation(op *Operation, registry SchemaRegistry, endpoint EndpointDescriptor) error {
	return f(op, registry, endpoint)
}

// DocumentFilter mutates the whole document after assembly.
type DocumentFilter interface {
	ApplyDocument(doc *Document, registry SchemaRegistry, provider Provider) error
}

// DocumentFilterFunc adapts a function to the DocumentFilter interface.
type DocumentFilterFunc func(doc *Document, registry SchemaRegistry, provider Provider) error

// ApplyDocument implements DocumentFilter.
func (f DocumentFilterFunc) ApplyDocument(doc *Document, registry SchemaRegistry, provider Provider) error {
	return f(doc, registry, provider)
}

// TagDescriptions returns a model filter that describes tags from a fixed
// map keyed by grouping key.
func TagDescriptions(descriptions map[string]string) ModelFilter {
	return ModelFilterFunc(func(model *Schema, ctx ModelContext) error {
		if desc, ok := descriptions[ctx.Key]; ok {
			model.Description = desc
		}
		return nil
	})
}

// DefaultResponses returns an operation filter adding the given responses
// to every operation that does not define the status code already.
func DefaultResponses(responses map[string]*Response) OperationFilter {
	return OperationFilterFunc(func(op *Operation, _ SchemaRegistry, _ EndpointDescriptor) error {
		for code, resp := range responses {
			if _, ok := op.Responses[code]; ok {
				continue
			}
			copied := *resp
			op.Responses[code] = &copied
		}
		return nil
	})
}

// SecurityRequirements returns a document filter setting document-level
// security requirements. Requirements referencing a scheme missing from
// securityDefinitions are dropped.
func SecurityRequirements(reqs ...SecurityRequirement) DocumentFilter {
	return DocumentFilterFunc(func(doc *Document, _ SchemaRegistry, _ Provider) error {
		for _, req := range reqs {
			known := true
			for name := range req {
				if _, ok := doc.SecurityDefinitions[name]; !ok {
					known = false
					break
				}
			}
			if known {
				doc.Security = append(doc.Security, req)
			}
		}
		return nil
	})
}
