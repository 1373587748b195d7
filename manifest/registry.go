package manifest

import (
	"reflect"

	"github.com/vitalvas/swagger/swagger"
)

// registry names the manifest model types and decorates their definitions
// with the documentation keywords declared in the manifest.
type registry struct {
	*swagger.SchemaGenerator
	models    *modelSet
	described map[string]bool
}

func newRegistry(models *modelSet) *registry {
	gen := swagger.NewSchemaGenerator()
	for _, m := range models.order {
		gen.RegisterName(m.typ, m.decl.Name)
	}
	return &registry{
		SchemaGenerator: gen,
		models:          models,
		described:       make(map[string]bool, len(models.order)),
	}
}

func (r *registry) GetOrRegister(t reflect.Type) *swagger.Schema {
	schema := r.SchemaGenerator.GetOrRegister(t)
	r.describe()
	return schema
}

func (r *registry) describe() {
	defs := r.Definitions()
	for _, m := range r.models.order {
		if r.described[m.decl.Name] {
			continue
		}
		def, ok := defs[m.decl.Name]
		if !ok {
			continue
		}
		r.described[m.decl.Name] = true

		def.Description = m.decl.Description
		for _, prop := range m.decl.Properties {
			if s := def.Properties[prop.Name]; s != nil && s.Ref == "" {
				applyProperty(s, prop)
			}
		}
	}
}

func applyProperty(s *swagger.Schema, prop Property) {
	if prop.Description != "" {
		s.Description = prop.Description
	}
	if prop.Format != "" {
		s.Format = prop.Format
	}
	if prop.Pattern != "" {
		s.Pattern = prop.Pattern
	}
	if len(prop.Enum) > 0 {
		s.Enum = prop.Enum
	}
	if prop.Minimum != nil {
		s.Minimum = prop.Minimum
	}
	if prop.Maximum != nil {
		s.Maximum = prop.Maximum
	}
	if prop.MinLength != nil {
		s.MinLength = prop.MinLength
	}
	if prop.MaxLength != nil {
		s.MaxLength = prop.MaxLength
	}
	if prop.Example != nil {
		s.Example = prop.Example
	}
}
