package model

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fields.yaml
var fieldsYAML []byte

// Schema is the immutable order-document dictionary: the fixed field sets of
// the extraction schema plus the numeric-field markers driving decimal
// comparison. It is loaded once at startup and passed explicitly to every
// component that needs it.
type Schema struct {
	ScalarFields   []string
	LineItemFields []string

	numeric map[string]bool
}

type schemaField struct {
	Name    string `yaml:"name"`
	Numeric bool   `yaml:"numeric"`
}

type schemaDocument struct {
	ScalarFields   []schemaField `yaml:"scalar_fields"`
	LineItemFields []schemaField `yaml:"line_item_fields"`
}

// LoadOrderSchema parses the embedded schema dictionary.
func LoadOrderSchema() (Schema, error) {
	var doc schemaDocument
	if err := yaml.Unmarshal(fieldsYAML, &doc); err != nil {
		return Schema{}, fmt.Errorf("parse schema dictionary: %w", err)
	}

	schema := Schema{numeric: make(map[string]bool)}

	for _, field := range doc.ScalarFields {
		schema.ScalarFields = append(schema.ScalarFields, field.Name)
		if field.Numeric {
			schema.numeric[field.Name] = true
		}
	}

	for _, field := range doc.LineItemFields {
		schema.LineItemFields = append(schema.LineItemFields, field.Name)
		if field.Numeric {
			// Line-item fields never collide with scalar names in this schema.
			schema.numeric[field.Name] = true
		}
	}

	return schema, nil
}

// IsNumeric reports whether the named field carries a decimal amount.
func (s Schema) IsNumeric(field string) bool {
	return s.numeric[field]
}

// EmptyDocument returns a document with every schema field present and empty,
// the shape the extraction prompt shows the model.
func (s Schema) EmptyDocument() Document {
	doc := Document{Fields: make(map[string]string, len(s.ScalarFields))}
	for _, name := range s.ScalarFields {
		doc.Fields[name] = ""
	}

	return doc
}

// EmptyLineItem returns a line item with every schema field present and empty.
func (s Schema) EmptyLineItem() LineItem {
	item := make(LineItem, len(s.LineItemFields))
	for _, name := range s.LineItemFields {
		item[name] = ""
	}

	return item
}
