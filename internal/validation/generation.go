// Package validation checks request bodies against JSON schemas before they
// are decoded into models.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const generationSchema = `{
  "type": "object",
  "required": ["businessId", "serviceIds", "serviceAreaIds", "templateIds"],
  "properties": {
    "businessId":      {"type": "integer", "minimum": 1},
    "serviceIds":      {"type": "array", "minItems": 1, "items": {"type": "integer", "minimum": 1}},
    "serviceAreaIds":  {"type": "array", "minItems": 1, "items": {"type": "integer", "minimum": 1}},
    "templateIds":     {"type": "array", "minItems": 1, "items": {"type": "integer", "minimum": 1}},
    "tone":            {"type": "string", "enum": ["", "professional", "friendly", "authoritative", "casual"]},
    "wordCountTarget": {"type": "integer", "minimum": 0, "maximum": 5000},
    "customPrompt":    {"type": "string", "maxLength": 2000}
  }
}`

var generationLoader = gojsonschema.NewStringLoader(generationSchema)

var compiledGeneration *gojsonschema.Schema

func init() {
	s, err := gojsonschema.NewSchema(generationLoader)
	if err != nil {
		panic(fmt.Sprintf("invalid generation schema: %v", err))
	}
	compiledGeneration = s
}

// ValidateGeneration checks a raw generation request body.
func ValidateGeneration(body []byte) error {
	return validate(compiledGeneration, body)
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
