// Package validation checks catalog snapshot documents before they are
// allowed to rebuild the ranking index.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// gigSnapshotSchema describes one gig entry in a posted catalog snapshot.
// Rating bounds and the status enum mirror the catalog contract; counters
// must be non-negative so derived scores stay meaningful.
const gigSnapshotSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "category", "status"],
    "properties": {
      "id":          {"type": "string", "minLength": 1},
      "title":       {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "category":    {"type": "string", "minLength": 1},
      "subcategory": {"type": "string"},
      "tags":        {"type": "array", "items": {"type": "string"}},
      "sellerId":    {"type": "string"},
      "rating":      {"type": "number", "minimum": 0, "maximum": 5},
      "impressions": {"type": "integer", "minimum": 0},
      "clicks":      {"type": "integer", "minimum": 0},
      "status":      {"type": "string", "enum": ["pending", "active", "paused", "rejected", "deleted"]}
    }
  }
}`

// ValidateSnapshot validates a decoded snapshot document against the gig
// schema and returns every violation, not just the first.
func ValidateSnapshot(doc interface{}) error {
	schemaLoader := gojsonschema.NewStringLoader(gigSnapshotSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("snapshot validation failed: %v", errs)
	}

	return nil
}
