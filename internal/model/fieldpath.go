package model

import (
	"fmt"
	"strings"
)

// FieldPath locates a leaf value inside a document, e.g. "order_id" or
// "line_items[2].product_price".
type FieldPath string

// ScalarPath returns the path of a top-level scalar field.
func ScalarPath(field string) FieldPath {
	return FieldPath(field)
}

// ItemPath returns the path of a whole line item.
func ItemPath(index int) FieldPath {
	return FieldPath(fmt.Sprintf("%s[%d]", LineItemsField, index))
}

// ItemFieldPath returns the path of a field inside a specific line item.
func ItemFieldPath(index int, field string) FieldPath {
	return FieldPath(fmt.Sprintf("%s[%d].%s", LineItemsField, index, field))
}

// NormalizedItemFieldPath strips the item index so statistics for the same
// line-item field aggregate across positions and files.
func NormalizedItemFieldPath(field string) FieldPath {
	return FieldPath(LineItemsField + "." + field)
}

// IsItemPath reports whether the path points inside the line_items list.
func (p FieldPath) IsItemPath() bool {
	return strings.HasPrefix(string(p), LineItemsField+"[") ||
		strings.HasPrefix(string(p), LineItemsField+".")
}
