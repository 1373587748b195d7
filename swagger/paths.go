package swagger

import "strings"

// operationSlots maps a lower-case HTTP method to its field on a PathItem.
// Methods missing here are not documented.
var operationSlots = map[string]func(*PathItem) **Operation{
	"get":     func(p *PathItem) **Operation { return &p.Get },
	"put":     func(p *PathItem) **Operation { return &p.Put },
	"post":    func(p *PathItem) **Operation { return &p.Post },
	"delete":  func(p *PathItem) **Operation { return &p.Delete },
	"options": func(p *PathItem) **Operation { return &p.Options },
	"head":    func(p *PathItem) **Operation { return &p.Head },
	"patch":   func(p *PathItem) **Operation { return &p.Patch },
}

var methodOrder = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// group is an ordered bucket of endpoints sharing a key.
type group struct {
	key       string
	endpoints []EndpointDescriptor
}

// groupBy buckets endpoints by key, keeping first-seen key order and the
// input order within each bucket.
func groupBy(endpoints []EndpointDescriptor, key func(EndpointDescriptor) string) []group {
	index := make(map[string]int)
	var groups []group
	for _, e := range endpoints {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].endpoints = append(groups[i].endpoints, e)
	}
	return groups
}

// buildPathItem builds the path item of endpoints that share one
// normalized path. Endpoints on the same method go through the conflict
// resolver.
//
// See: https://swagger.io/specification/v2/#path-item-object
func (a *assembler) buildPathItem(path string, endpoints []EndpointDescriptor) (*PathItem, error) {
	item := &PathItem{}

	byMethod := groupBy(endpoints, func(e EndpointDescriptor) string {
		return strings.ToLower(e.Method)
	})

	for _, g := range byMethod {
		slot, ok := operationSlots[g.key]
		if !ok {
			continue
		}

		endpoint, err := a.resolveConflict(path, g)
		if err != nil {
			return nil, err
		}

		op, err := a.assembleOperation(endpoint)
		if err != nil {
			return nil, err
		}
		*slot(item) = op
	}

	return item, nil
}

func (a *assembler) resolveConflict(path string, g group) (EndpointDescriptor, error) {
	if len(g.endpoints) == 1 {
		return g.endpoints[0], nil
	}
	if a.cfg.ConflictingActionsResolver == nil {
		return EndpointDescriptor{}, &ConflictError{
			Path:   path,
			Method: strings.ToUpper(g.key),
			Count:  len(g.endpoints),
		}
	}
	return a.cfg.ConflictingActionsResolver(g.endpoints), nil
}
