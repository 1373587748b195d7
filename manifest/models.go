package manifest

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	slicePrefix = "[]"
	mapPrefix   = "map[string]"
)

// scalarTypes maps manifest scalar names to the host types the schema
// registry documents.
var scalarTypes = map[string]reflect.Type{
	"string":    reflect.TypeFor[string](),
	"integer":   reflect.TypeFor[int64](),
	"int32":     reflect.TypeFor[int32](),
	"int64":     reflect.TypeFor[int64](),
	"number":    reflect.TypeFor[float64](),
	"float":     reflect.TypeFor[float32](),
	"double":    reflect.TypeFor[float64](),
	"boolean":   reflect.TypeFor[bool](),
	"byte":      reflect.TypeFor[[]byte](),
	"uuid":      reflect.TypeFor[uuid.UUID](),
	"date-time": reflect.TypeFor[time.Time](),
	"object":    reflect.TypeFor[map[string]any](),
	"any":       reflect.TypeFor[any](),
}

// marker makes every model a distinct struct type even when two models
// declare the same properties.
type marker struct{}

var markerType = reflect.TypeFor[marker]()

type model struct {
	decl Model
	typ  reflect.Type
}

type modelSet struct {
	order  []*model
	byName map[string]*model
}

// buildModels creates one struct type per model. Models are built in
// dependency order; a model that reaches itself through its properties is
// rejected since runtime-built types cannot be recursive.
func buildModels(decls []Model) (*modelSet, error) {
	set := &modelSet{byName: make(map[string]*model, len(decls))}

	for _, decl := range decls {
		if err := validateModel(decl); err != nil {
			return nil, err
		}
		if _, dup := set.byName[decl.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate model %q", ErrInvalidManifest, decl.Name)
		}
		set.byName[decl.Name] = &model{decl: decl}
	}

	state := make(map[string]int, len(decls))
	var visit func(name string, stack []string) error
	visit = func(name string, stack []string) error {
		switch state[name] {
		case 1:
			return fmt.Errorf("%w: %s", ErrModelCycle, strings.Join(append(stack, name), " -> "))
		case 2:
			return nil
		}

		state[name] = 1
		m := set.byName[name]
		for _, prop := range m.decl.Properties {
			dep := baseTypeName(prop.Type)
			if _, ok := set.byName[dep]; ok {
				if err := visit(dep, append(stack, name)); err != nil {
					return err
				}
			}
		}

		t, err := set.structOf(m.decl)
		if err != nil {
			return fmt.Errorf("model %q: %w", name, err)
		}
		m.typ = t
		state[name] = 2
		set.order = append(set.order, m)
		return nil
	}

	for _, decl := range decls {
		if err := visit(decl.Name, nil); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func (s *modelSet) structOf(decl Model) (reflect.Type, error) {
	fields := make([]reflect.StructField, 0, len(decl.Properties)+1)
	fields = append(fields, reflect.StructField{
		Name: "M",
		Type: markerType,
		Tag:  reflect.StructTag(`json:"-" manifest:` + strconv.Quote(decl.Name)),
	})

	for i, prop := range decl.Properties {
		t, err := s.resolve(prop.Type)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", prop.Name, err)
		}
		if t == nil {
			return nil, fmt.Errorf("%w: property %q has no type", ErrInvalidManifest, prop.Name)
		}

		jsonName := prop.Name
		if !prop.Required {
			jsonName += ",omitempty"
		}

		fields = append(fields, reflect.StructField{
			Name: "F" + strconv.Itoa(i),
			Type: t,
			Tag:  reflect.StructTag(`json:` + strconv.Quote(jsonName)),
		})
	}

	return reflect.StructOf(fields), nil
}

// resolve maps a manifest type name to a host type. An empty name resolves
// to nil.
func (s *modelSet) resolve(name string) (reflect.Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	if rest, ok := strings.CutPrefix(name, slicePrefix); ok {
		elem, err := s.resolveElem(name, rest)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	}

	if rest, ok := strings.CutPrefix(name, mapPrefix); ok {
		elem, err := s.resolveElem(name, rest)
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(reflect.TypeFor[string](), elem), nil
	}

	if t, ok := scalarTypes[name]; ok {
		return t, nil
	}

	if m, ok := s.byName[name]; ok && m.typ != nil {
		return m.typ, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

func (s *modelSet) resolveElem(full, elem string) (reflect.Type, error) {
	t, err := s.resolve(elem)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, full)
	}
	return t, nil
}

func baseTypeName(name string) string {
	name = strings.TrimSpace(name)
	for {
		switch {
		case strings.HasPrefix(name, slicePrefix):
			name = name[len(slicePrefix):]
		case strings.HasPrefix(name, mapPrefix):
			name = name[len(mapPrefix):]
		default:
			return name
		}
	}
}

func validateModel(decl Model) error {
	if decl.Name == "" {
		return fmt.Errorf("%w: model name is required", ErrInvalidManifest)
	}
	if _, ok := scalarTypes[decl.Name]; ok {
		return fmt.Errorf("%w: model %q shadows a scalar type", ErrInvalidManifest, decl.Name)
	}
	if strings.ContainsAny(decl.Name, "[] ") {
		return fmt.Errorf("%w: invalid model name %q", ErrInvalidManifest, decl.Name)
	}

	seen := make(map[string]struct{}, len(decl.Properties))
	for _, prop := range decl.Properties {
		if prop.Name == "" || prop.Name == "-" || strings.ContainsAny(prop.Name, `,"`) {
			return fmt.Errorf("%w: model %q: invalid property name %q", ErrInvalidManifest, decl.Name, prop.Name)
		}
		if _, dup := seen[prop.Name]; dup {
			return fmt.Errorf("%w: model %q: duplicate property %q", ErrInvalidManifest, decl.Name, prop.Name)
		}
		seen[prop.Name] = struct{}{}
	}

	return nil
}
