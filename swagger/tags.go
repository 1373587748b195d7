package swagger

// collectTags runs the model filters once per distinct grouping key, in
// endpoint order, and returns a tag for every key that ended up with a
// description. The first non-empty description a filter produces is kept.
// The result is nil when no tag has a description.
//
// See: https://swagger.io/specification/v2/#tag-object
func (a *assembler) collectTags(endpoints []EndpointDescriptor) ([]Tag, error) {
	var tags []Tag

	for _, g := range groupBy(endpoints, a.cfg.groupingKey) {
		ctx := ModelContext{
			Key:      g.key,
			Group:    g.endpoints[0].Group,
			Registry: a.registry,
		}
		model := &Schema{}
		var description string
		for _, filter := range a.cfg.ModelFilters {
			if err := filter.ApplyModel(model, ctx); err != nil {
				return nil, err
			}
			if description == "" {
				description = model.Description
			}
		}

		if description != "" {
			tags = append(tags, Tag{Name: g.key, Description: description})
		}
	}

	return tags, nil
}
