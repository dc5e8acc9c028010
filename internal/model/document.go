// Package model defines the data structures for order extraction and scoring.
package model

import (
	"fmt"
	"sort"
	"strconv"
)

// Path represents a file system path.
type Path string

// Side identifies which document of an expected/actual pair an error refers to.
type Side string

// Available Side values.
const (
	SideExpected Side = "expected"
	SideActual   Side = "actual"
)

// LineItemsField is the single composite field of a document. Every other
// field is a scalar string.
const LineItemsField = "line_items"

// LineItem is one product entry within a document's line_items list.
type LineItem map[string]string

// Document is one extracted (or hand-labeled) order record: a flat mapping of
// scalar fields plus an ordered list of line items.
type Document struct {
	Fields    map[string]string
	LineItems []LineItem
}

// FieldCount returns the number of leaf values the document holds: every
// scalar field plus every field of every line item. This is the denominator
// used when an actual output file is missing entirely.
func (d Document) FieldCount() int {
	n := len(d.Fields)
	for _, item := range d.LineItems {
		n += len(item)
	}

	return n
}

// ScalarFieldNames returns the document's scalar field names sorted for
// deterministic traversal.
func (d Document) ScalarFieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// DecodeDocument converts a decoded JSON value into a Document. The side is
// recorded on any resulting MalformedDocumentError so report rows can say
// which file of the pair was broken.
func DecodeDocument(side Side, raw any) (Document, error) {
	mapping, ok := raw.(map[string]any)
	if !ok {
		return Document{}, &MalformedDocumentError{
			Side:   side,
			Reason: "top level is not a JSON object",
		}
	}

	doc := Document{Fields: make(map[string]string, len(mapping))}

	for name, value := range mapping {
		if name == LineItemsField {
			items, err := decodeLineItems(side, value)
			if err != nil {
				return Document{}, err
			}

			doc.LineItems = items

			continue
		}

		scalar, err := decodeScalar(side, ScalarPath(name), value)
		if err != nil {
			return Document{}, err
		}

		doc.Fields[name] = scalar
	}

	return doc, nil
}

func decodeLineItems(side Side, value any) ([]LineItem, error) {
	if value == nil {
		return nil, nil
	}

	seq, ok := value.([]any)
	if !ok {
		return nil, &MalformedDocumentError{
			Side:      side,
			FieldPath: ScalarPath(LineItemsField),
			Reason:    "line_items is not a JSON array",
		}
	}

	items := make([]LineItem, 0, len(seq))

	for i, element := range seq {
		mapping, ok := element.(map[string]any)
		if !ok {
			return nil, &MalformedDocumentError{
				Side:      side,
				FieldPath: ItemPath(i),
				Reason:    "line item is not a JSON object",
			}
		}

		item := make(LineItem, len(mapping))

		for name, fieldValue := range mapping {
			scalar, err := decodeScalar(side, ItemFieldPath(i, name), fieldValue)
			if err != nil {
				return nil, err
			}

			item[name] = scalar
		}

		items = append(items, item)
	}

	return items, nil
}

// decodeScalar stringifies a JSON leaf. The extraction prompt asks for string
// values everywhere, but model output occasionally carries bare numbers or
// booleans, so those are accepted and formatted.
func decodeScalar(side Side, path FieldPath, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", &MalformedDocumentError{
			Side:      side,
			FieldPath: path,
			Reason:    fmt.Sprintf("field holds a %T, expected a scalar", value),
		}
	}
}

// Encode converts the document back into a JSON-marshalable value with the
// same shape the extraction prompt specifies.
func (d Document) Encode(schema Schema) map[string]any {
	out := make(map[string]any, len(d.Fields)+1)

	for _, name := range schema.ScalarFields {
		out[name] = d.Fields[name]
	}

	for name, value := range d.Fields {
		if _, ok := out[name]; !ok {
			out[name] = value
		}
	}

	items := make([]any, 0, len(d.LineItems))
	for _, item := range d.LineItems {
		encoded := make(map[string]any, len(item))
		for name, value := range item {
			encoded[name] = value
		}

		items = append(items, encoded)
	}

	out[LineItemsField] = items

	return out
}
