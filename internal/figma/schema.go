package figma

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/*.json
var schemaFS embed.FS

type responseSchemas struct {
	file   *jsonschema.Schema
	styles *jsonschema.Schema
}

func loadSchemas() (*responseSchemas, error) {
	file, err := compileSchema("schema/file.json")
	if err != nil {
		return nil, err
	}
	styles, err := compileSchema("schema/styles.json")
	if err != nil {
		return nil, err
	}
	return &responseSchemas{file: file, styles: styles}, nil
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("figma: read schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("figma: add schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("figma: compile schema %s: %w", name, err)
	}
	return schema, nil
}

// decodeValidated checks body against schema before decoding it into target.
func decodeValidated(schema *jsonschema.Schema, body []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var generic any
	if err := decoder.Decode(&generic); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := schema.Validate(generic); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
