// Package ir is the serialized form of a parsed docstring.
//
// Every block and inline is written as {"t": Tag, "c": content}. JSON and
// YAML share the same shape, and JSON documents can be checked against the
// embedded JSON Schema with Validate.
package ir

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"docmark/internal/ast"
)

// SchemaVersion is written into every Document.
const SchemaVersion = "1"

// Document wraps a block tree with its provenance.
type Document struct {
	SchemaVersion string
	// Source names where the text came from, usually a docstring ID.
	Source string
	Blocks []ast.Block
}

type envelope struct {
	SchemaVersion string `json:"schema_version" yaml:"schema_version"`
	Source        string `json:"source,omitempty" yaml:"source,omitempty"`
	Blocks        []any  `json:"blocks" yaml:"blocks"`
}

func New(source string, blocks []ast.Block) Document {
	return Document{SchemaVersion: SchemaVersion, Source: source, Blocks: blocks}
}

func (d Document) envelope() envelope {
	v := d.SchemaVersion
	if v == "" {
		v = SchemaVersion
	}
	return envelope{SchemaVersion: v, Source: d.Source, Blocks: EncodeBlocks(d.Blocks)}
}

func (d *Document) fromEnvelope(env envelope) error {
	blocks, err := decodeBlocks(env.Blocks, "blocks")
	if err != nil {
		return err
	}
	*d = Document{SchemaVersion: env.SchemaVersion, Source: env.Source, Blocks: blocks}
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.envelope())
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	return d.fromEnvelope(env)
}

func (d Document) MarshalYAML() (any, error) {
	return d.envelope(), nil
}

func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	var env envelope
	if err := value.Decode(&env); err != nil {
		return err
	}
	return d.fromEnvelope(env)
}

// EncodeJSON writes d as indented JSON.
func EncodeJSON(d Document) ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return b, nil
}

func DecodeJSON(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("failed to decode document: %w", err)
	}
	return d, nil
}

func EncodeYAML(d Document) ([]byte, error) {
	b, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return b, nil
}

func DecodeYAML(data []byte) (Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("failed to decode document: %w", err)
	}
	return d, nil
}
