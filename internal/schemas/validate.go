// Package schemas provides JSON Schema validation for structured capability
// responses. The evaluation capability is asked for a fixed response shape;
// validating against the schema (instead of just unmarshalling) catches
// wrong-typed fields and missing keys before a score is accepted.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed dimension_response.json
var dimensionResponseSchema string

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("response validation failed:")
	for _, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ValidateDimensionResponse checks a raw JSON document against the expected
// dimension evaluation shape: numeric score in [0,100], string rationale,
// string arrays for evidence and gaps. Returns *ValidationError when the
// document parses but does not conform.
func ValidateDimensionResponse(document string) error {
	schemaLoader := gojsonschema.NewStringLoader(dimensionResponseSchema)
	docLoader := gojsonschema.NewStringLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("failed to validate response: %w", err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, resErr := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   resErr.Field(),
			Message: resErr.Description(),
		})
	}
	return ve
}
