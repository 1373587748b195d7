package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/swagger/swagger"
)

var (
	ErrInvalidManifest = errors.New("manifest: invalid manifest")
	ErrUnknownType     = errors.New("manifest: unknown type")
	ErrModelCycle      = errors.New("manifest: model dependency cycle")
)

// File is the YAML layout of a manifest.
type File struct {
	Versions  map[string]swagger.Info `yaml:"versions,omitempty"`
	Endpoints []Endpoint              `yaml:"endpoints"`
	Models    []Model                 `yaml:"models,omitempty"`
}

// Endpoint describes one action.
type Endpoint struct {
	Method      string      `yaml:"method"`
	Path        string      `yaml:"path"`
	Group       string      `yaml:"group,omitempty"`
	Action      string      `yaml:"action,omitempty"`
	Summary     string      `yaml:"summary,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Obsolete    bool        `yaml:"obsolete,omitempty"`
	Response    string      `yaml:"response,omitempty"`
	Produces    []string    `yaml:"produces,omitempty"`
	Consumes    []string    `yaml:"consumes,omitempty"`
	Versions    []string    `yaml:"versions,omitempty"`
	Parameters  []Parameter `yaml:"parameters,omitempty"`
}

// Parameter describes one endpoint input. In is one of path, query or body
// and defaults to query.
type Parameter struct {
	Name        string `yaml:"name"`
	In          string `yaml:"in,omitempty"`
	Optional    bool   `yaml:"optional,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Default     any    `yaml:"default,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Model declares a named object definition.
type Model struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Properties  []Property `yaml:"properties,omitempty"`
}

// Property declares one model field.
type Property struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Required    bool     `yaml:"required,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Format      string   `yaml:"format,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	Enum        []any    `yaml:"enum,omitempty"`
	Minimum     *float64 `yaml:"minimum,omitempty"`
	Maximum     *float64 `yaml:"maximum,omitempty"`
	MinLength   *int     `yaml:"minLength,omitempty"`
	MaxLength   *int     `yaml:"maxLength,omitempty"`
	Example     any      `yaml:"example,omitempty"`
}

// Manifest is a loaded manifest. It implements swagger.Provider.
type Manifest struct {
	info      map[string]swagger.Info
	endpoints []swagger.EndpointDescriptor
	versions  map[string][]string
	models    *modelSet
}

var _ swagger.Provider = (*Manifest)(nil)

// LoadFile reads and parses a manifest file.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data)
}

// Load parses a manifest from r.
func Load(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("manifest: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML manifest data. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return New(f)
}

// New builds a manifest from its decoded form.
func New(f File) (*Manifest, error) {
	models, err := buildModels(f.Models)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		info:     maps.Clone(f.Versions),
		versions: make(map[string][]string),
		models:   models,
	}

	declared := make(map[string]bool, len(f.Endpoints))
	for i, e := range f.Endpoints {
		d, err := m.describe(e)
		if err != nil {
			return nil, fmt.Errorf("endpoint %d (%s %s): %w", i, e.Method, e.Path, err)
		}
		m.endpoints = append(m.endpoints, d)

		key := endpointKey(d)
		versioned, seen := declared[key]
		if seen && (versioned || len(e.Versions) > 0) {
			return nil, fmt.Errorf("endpoint %d (%s %s): %w: duplicate declaration, list all its versions on one entry",
				i, e.Method, e.Path, ErrInvalidManifest)
		}
		declared[key] = len(e.Versions) > 0

		if len(e.Versions) > 0 {
			m.versions[key] = slices.Clone(e.Versions)
		}
	}

	return m, nil
}

// Endpoints returns the descriptors in manifest order.
func (m *Manifest) Endpoints() []swagger.EndpointDescriptor {
	return slices.Clone(m.endpoints)
}

// Versions returns the API versions declared by the manifest, suitable for
// swagger.Config.Versions.
func (m *Manifest) Versions() map[string]swagger.Info {
	return maps.Clone(m.info)
}

// SupportsVersion reports whether an endpoint belongs to version. Endpoints
// declaring no versions belong to every version. It is meant for
// swagger.Config.VersionSupportResolver.
func (m *Manifest) SupportsVersion(d swagger.EndpointDescriptor, version string) bool {
	versions, ok := m.versions[endpointKey(d)]
	if !ok {
		return true
	}
	return slices.Contains(versions, version)
}

// NewSchemaRegistry returns a schema registry that knows the manifest
// models by name. It is meant for swagger.Config.NewSchemaRegistry.
func (m *Manifest) NewSchemaRegistry() swagger.SchemaRegistry {
	return newRegistry(m.models)
}

func (m *Manifest) describe(e Endpoint) (swagger.EndpointDescriptor, error) {
	if strings.TrimSpace(e.Method) == "" {
		return swagger.EndpointDescriptor{}, fmt.Errorf("%w: method is required", ErrInvalidManifest)
	}

	response, err := m.models.resolve(e.Response)
	if err != nil {
		return swagger.EndpointDescriptor{}, fmt.Errorf("response: %w", err)
	}

	d := swagger.EndpointDescriptor{
		Method:       strings.ToUpper(e.Method),
		RelativePath: e.Path,
		ResponseType: response,
		Obsolete:     e.Obsolete,
		Group:        e.Group,
		Action:       e.Action,
		Summary:      e.Summary,
		Description:  e.Description,
		Produces:     e.Produces,
		Consumes:     e.Consumes,
	}

	for _, p := range e.Parameters {
		pd, err := m.parameter(p)
		if err != nil {
			return swagger.EndpointDescriptor{}, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
		d.Parameters = append(d.Parameters, pd)
	}

	return d, nil
}

func (m *Manifest) parameter(p Parameter) (swagger.ParameterDescriptor, error) {
	if p.Name == "" {
		return swagger.ParameterDescriptor{}, fmt.Errorf("%w: parameter name is required", ErrInvalidManifest)
	}

	source, err := parseSource(p.In)
	if err != nil {
		return swagger.ParameterDescriptor{}, err
	}

	t, err := m.models.resolve(p.Type)
	if err != nil {
		return swagger.ParameterDescriptor{}, err
	}

	return swagger.ParameterDescriptor{
		Name:        p.Name,
		Source:      source,
		Optional:    p.Optional,
		Type:        t,
		Default:     p.Default,
		Pattern:     p.Pattern,
		Description: p.Description,
	}, nil
}

func parseSource(in string) (swagger.ParameterSource, error) {
	switch strings.ToLower(in) {
	case "", swagger.InQuery:
		return swagger.SourceQuery, nil
	case swagger.InPath:
		return swagger.SourcePath, nil
	case swagger.InBody:
		return swagger.SourceBody, nil
	}
	return 0, fmt.Errorf("%w: unsupported parameter location %q", ErrInvalidManifest, in)
}

// endpointKey identifies an endpoint by its whole declaration, so the same
// action declared once per version keeps separate version lists.
func endpointKey(d swagger.EndpointDescriptor) string {
	return fmt.Sprintf("%q", d)
}
