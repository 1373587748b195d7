// Package export serializes generated swagger documents as JSON or YAML and
// converts them to OpenAPI 3.0 with kin-openapi.
package export
