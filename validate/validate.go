// Package validate checks exported documents against a structural JSON
// schema for the DataCite Kernel-4 shape. Validation is advisory: a record
// may be persisted and remain invalid, the caller just gets the list.
package validate

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/lehigh-university-libraries/datacite-store/document"
)

//go:embed schema.json
var schemaJSON []byte

// Document validates a document and returns every violation, sorted by
// field path for stable display. A nil slice means the document is valid.
func Document(doc *document.Resource) ([]string, error) {
	data, err := doc.JSON()
	if err != nil {
		return nil, err
	}
	return Bytes(data)
}

// Bytes validates raw JSON against the schema.
func Bytes(data []byte) ([]string, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("running schema validation: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		errs = append(errs, fmt.Sprintf("%s: %s", violation.Field(), violation.Description()))
	}
	sort.Strings(errs)
	return errs, nil
}
