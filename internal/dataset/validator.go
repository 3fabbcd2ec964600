package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Validator handles manifest validation
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new validator with the given schema file
func NewValidator(schemaPath string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	schema, err := compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// ValidateFile loads and validates a single manifest file
func (v *Validator) ValidateFile(path string) []ValidationError {
	var errors []ValidationError

	data, err := os.ReadFile(path)
	if err != nil {
		errors = append(errors, ValidationError{
			File:    path,
			Message: fmt.Sprintf("failed to read manifest: %v", err),
		})
		return errors
	}

	// Decode to generic values for schema validation
	var jsonData interface{}
	if err := yaml.Unmarshal(data, &jsonData); err != nil {
		errors = append(errors, ValidationError{
			File:    path,
			Message: fmt.Sprintf("failed to parse YAML: %v", err),
		})
		return errors
	}

	if err := v.schema.Validate(jsonData); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			errors = append(errors, extractSchemaErrors(path, validationErr)...)
		} else {
			errors = append(errors, ValidationError{
				File:    path,
				Message: err.Error(),
			})
		}
		return errors
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		errors = append(errors, ValidationError{
			File:    path,
			Message: fmt.Sprintf("failed to decode manifest: %v", err),
		})
		return errors
	}

	errors = append(errors, validateExtraRules(path, &m)...)
	return errors
}

// extractSchemaErrors converts JSON schema validation errors to ValidationErrors
func extractSchemaErrors(file string, err *jsonschema.ValidationError) []ValidationError {
	var errors []ValidationError

	path := strings.Join(err.InstanceLocation, ".")
	if path == "" {
		path = "(root)"
	}

	errors = append(errors, ValidationError{
		File:    file,
		Path:    path,
		Message: err.Error(),
	})

	for _, cause := range err.Causes {
		errors = append(errors, extractSchemaErrors(file, cause)...)
	}

	return errors
}

// validateExtraRules applies rules beyond the JSON schema: source columns must
// be distinct (a shared header would fold two fields into one during the
// pivot), and the two retained categories must differ.
func validateExtraRules(file string, m *Manifest) []ValidationError {
	var errors []ValidationError

	columns := map[string]string{
		"columns.entityCode":  m.Columns.EntityCode,
		"columns.entityLabel": m.Columns.EntityLabel,
		"columns.year":        m.Columns.Year,
		"columns.category":    m.Columns.Category,
		"columns.value":       m.Columns.Value,
	}

	headerSeen := make(map[string]string)
	for path, header := range columns {
		if prev, exists := headerSeen[header]; exists {
			// Map iteration order is not stable; report both fields sorted
			// for determinism.
			first, second := prev, path
			if second < first {
				first, second = second, first
			}
			errors = append(errors, ValidationError{
				File:    file,
				Path:    second,
				Message: fmt.Sprintf("duplicate source column %q (also used by %s)", header, first),
			})
		} else {
			headerSeen[header] = path
		}
	}

	if m.Categories.Basic == m.Categories.AboveBasic {
		errors = append(errors, ValidationError{
			File:    file,
			Path:    "categories",
			Message: fmt.Sprintf("basic and aboveBasic must differ, both are %q", m.Categories.Basic),
		})
	}

	return errors
}
