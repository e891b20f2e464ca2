package todos

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const collectionSchemaURL = "docket://schema/todos.json"

const collectionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "title": {"type": "string"},
      "checked": {"type": "boolean"}
    }
  }
}`

var listSchema = jsonschema.MustCompileString(collectionSchemaURL, collectionSchema)

// decodeCollection validates body against the collection schema before
// decoding it into items. Any failure wraps ErrMalformed.
func decodeCollection(body []byte) ([]Item, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrMalformed, err)
	}
	if err := listSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, schemaMessage(err))
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrMalformed, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// schemaMessage flattens a validation error into "path: message" pairs.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var parts []string
	collectSchemaCauses(ve, &parts)
	if len(parts) == 0 {
		return ve.Message
	}
	return strings.Join(parts, "; ")
}

func collectSchemaCauses(ve *jsonschema.ValidationError, parts *[]string) {
	if ve == nil {
		return
	}
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*parts = append(*parts, loc+": "+ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaCauses(cause, parts)
	}
}
