package ir

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed document.schema.json
var schemaJSON []byte

const schemaURL = "https://docmark.local/schema/document.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Schema returns the JSON Schema documents are validated against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

// Validate checks serialized JSON against the document schema.
func Validate(data []byte) error {
	schema, err := loadCompiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile document schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("failed to decode document for schema validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("document schema validation failed: %w", err)
	}
	return nil
}

// ValidateDocument encodes d and validates the result.
func ValidateDocument(d Document) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal document for schema validation: %w", err)
	}
	return Validate(b)
}
