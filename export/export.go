package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/swagger/swagger"
)

var ErrUnsupportedFormat = errors.New("export: unsupported format")

// Format selects the serialization of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user supplied name to a Format. "yml" is accepted as
// an alias of yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Write serializes v in the given format. Values are encoded through their
// JSON representation, so YAML output carries the same field names.
func Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		return JSON(w, v)
	case FormatYAML:
		return YAML(w, v)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

// YAML writes v as block style YAML.
func YAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("export: decode json as yaml: %w", err)
	}
	resetStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("export: encode yaml: %w", err)
	}
	return enc.Close()
}

// resetStyle drops the flow and quoting styles inherited from JSON input.
// The encoder still quotes strings that would otherwise read as another
// type, such as "200".
func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

// ToOpenAPI2 converts a document to the kin-openapi Swagger 2.0 model.
func ToOpenAPI2(doc *swagger.Document) (*openapi2.T, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("export: encode json: %w", err)
	}

	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return nil, fmt.Errorf("export: load swagger 2.0: %w", err)
	}
	return &doc2, nil
}

// ToOpenAPI3 converts a document to OpenAPI 3.0 and validates the result.
func ToOpenAPI3(ctx context.Context, doc *swagger.Document) (*openapi3.T, error) {
	doc2, err := ToOpenAPI2(doc)
	if err != nil {
		return nil, err
	}

	doc3, err := openapi2conv.ToV3(doc2)
	if err != nil {
		return nil, fmt.Errorf("export: convert to openapi 3: %w", err)
	}

	if err := openapi3.NewLoader().ResolveRefsIn(doc3, nil); err != nil {
		return nil, fmt.Errorf("export: resolve openapi 3 refs: %w", err)
	}

	if err := doc3.Validate(ctx); err != nil {
		return nil, fmt.Errorf("export: invalid openapi 3 document: %w", err)
	}
	return doc3, nil
}

// Validate reports whether a document survives conversion to a valid
// OpenAPI 3.0 document.
func Validate(ctx context.Context, doc *swagger.Document) error {
	_, err := ToOpenAPI3(ctx, doc)
	return err
}

// Bytes serializes v in the given format.
func Bytes(v any, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
