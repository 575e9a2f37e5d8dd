package crm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	schemavalidator "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaBaseURL = "https://capgate.local/schemas/"

// reflector turns an endpoint's args struct into a JSON Schema. Fields
// without omitempty are required and unknown properties are rejected.
var reflector = &jsonschema.Reflector{
	ExpandedStruct: true,
	DoNotReference: true,
	Anonymous:      true,
}

// reflectSchema returns the input schema of args as a generic map, plus the
// raw JSON it was decoded from.
func reflectSchema(args interface{}) (map[string]interface{}, []byte, error) {
	if args == nil {
		return map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		}, nil, nil
	}

	raw, err := json.Marshal(reflector.Reflect(args))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal reflected schema: %w", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, nil, fmt.Errorf("decode reflected schema: %w", err)
	}
	// The $schema keyword is noise for the caller; the validator keeps it.
	delete(schema, "$schema")
	return schema, raw, nil
}

// compileSchema compiles raw for argument validation.
func compileSchema(name string, raw []byte) (*schemavalidator.Schema, error) {
	if raw == nil {
		return nil, nil
	}
	url := schemaBaseURL + name + ".json"
	compiler := schemavalidator.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema for %s: %w", name, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %w", name, err)
	}
	return schema, nil
}

// normalizeArgs round-trips args through JSON so numbers and nested values
// have the shapes the validator expects.
func normalizeArgs(args map[string]interface{}) (map[string]interface{}, error) {
	if args == nil {
		return map[string]interface{}{}, nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
