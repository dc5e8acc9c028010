// Package adapter contains filesystem, model-API and report adapters for the
// extract-infor CLI.
package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

// DocumentStore loads and saves order documents. Load failures surface as
// *model.MalformedDocumentError so the corpus run can record them as
// load_error rows instead of aborting.
type DocumentStore interface {
	// Load reads and decodes a document, attributing shape errors to side.
	Load(path m.Path, side m.Side) (m.Document, error)

	// Decode parses raw JSON bytes into a document, enforcing shape only.
	Decode(data []byte, side m.Side) (m.Document, error)

	// ValidateExtraction parses a fence-stripped model response and runs the
	// one-shot JSON Schema validation a fresh extraction must pass.
	ValidateExtraction(data []byte) (m.Document, error)

	// Save writes the document as indented JSON, creating parent directories.
	Save(path m.Path, doc m.Document) error
}

// JSONDocumentStore is the concrete store backed by the local filesystem and
// the compiled order schema.
type JSONDocumentStore struct {
	schema   m.Schema
	resolved *jsonschema.Resolved
}

// NewJSONDocumentStore compiles the order schema once and returns a store
// validating every decoded document against it.
func NewJSONDocumentStore(schema m.Schema) (*JSONDocumentStore, error) {
	resolved, err := buildJSONSchema(schema).Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve order schema: %w", err)
	}

	return &JSONDocumentStore{schema: schema, resolved: resolved}, nil
}

// Load implements DocumentStore.
func (s *JSONDocumentStore) Load(path m.Path, side m.Side) (m.Document, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Document{}, fmt.Errorf("read %s document: %w", side, err)
	}

	return s.Decode(data, side)
}

// Decode implements DocumentStore.
func (s *JSONDocumentStore) Decode(data []byte, side m.Side) (m.Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return m.Document{}, &m.MalformedDocumentError{
			Side:   side,
			Reason: fmt.Sprintf("invalid JSON: %v", err),
		}
	}

	return m.DecodeDocument(side, raw)
}

// ValidateExtraction implements DocumentStore. Unlike Decode it runs the full
// JSON Schema check, so a model response with non-string leaves is rejected
// before it ever reaches the output directory.
func (s *JSONDocumentStore) ValidateExtraction(data []byte) (m.Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return m.Document{}, &m.MalformedDocumentError{
			Side:   m.SideActual,
			Reason: fmt.Sprintf("invalid JSON: %v", err),
		}
	}

	if err := s.resolved.Validate(raw); err != nil {
		return m.Document{}, &m.MalformedDocumentError{
			Side:   m.SideActual,
			Reason: fmt.Sprintf("schema violation: %v", err),
		}
	}

	return m.DecodeDocument(m.SideActual, raw)
}

// Save implements DocumentStore.
func (s *JSONDocumentStore) Save(path m.Path, doc m.Document) error {
	data, err := json.MarshalIndent(doc.Encode(s.schema), "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := os.WriteFile(string(path), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	return nil
}

// buildJSONSchema translates the schema dictionary into a JSON Schema. All
// leaves are strings; unknown fields are tolerated because hand-labeled
// expected files occasionally carry annotator notes.
func buildJSONSchema(schema m.Schema) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(schema.ScalarFields)+1)

	for _, field := range schema.ScalarFields {
		properties[field] = &jsonschema.Schema{Type: "string"}
	}

	itemProperties := make(map[string]*jsonschema.Schema, len(schema.LineItemFields))
	for _, field := range schema.LineItemFields {
		itemProperties[field] = &jsonschema.Schema{Type: "string"}
	}

	properties[m.LineItemsField] = &jsonschema.Schema{
		Type: "array",
		Items: &jsonschema.Schema{
			Type:       "object",
			Properties: itemProperties,
		},
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
	}
}
