package domain

import (
	"sort"

	m "github.com/tienduong-21/extract-infor/internal/model"
)

// Diff walks an expected/actual document pair and produces the per-leaf
// outcomes plus the per-field tallies. Traversal is deterministic: schema
// fields in dictionary order, unknown fields alphabetically after them, line
// items by position.
//
// Line items are aligned strictly by index. Expected items beyond the actual
// list length count every field as missing; actual items beyond the expected
// length are recorded as extra_line_item without entering the denominator.
func Diff(expected, actual m.Document, schema m.Schema) m.FileDiff {
	diff := m.FileDiff{Stats: make(m.FieldStats)}

	for _, field := range scalarFieldOrder(expected, actual, schema) {
		outcome := CompareValues(expected.Fields[field], actual.Fields[field], schema.IsNumeric(field))
		path := m.ScalarPath(field)

		diff.Outcomes = append(diff.Outcomes, m.FieldOutcome{Path: path, Outcome: outcome})
		diff.Stats.Record(path, outcome)
	}

	diffLineItems(&diff, expected.LineItems, actual.LineItems, schema)

	return diff
}

func diffLineItems(diff *m.FileDiff, expected, actual []m.LineItem, schema m.Schema) {
	aligned := len(expected)
	if len(actual) < aligned {
		aligned = len(actual)
	}

	for i := 0; i < aligned; i++ {
		for _, field := range itemFieldOrder(expected[i], actual[i], schema) {
			outcome := CompareValues(expected[i][field], actual[i][field], schema.IsNumeric(field))

			diff.Outcomes = append(diff.Outcomes, m.FieldOutcome{
				Path:    m.ItemFieldPath(i, field),
				Outcome: outcome,
			})
			diff.Stats.Record(m.NormalizedItemFieldPath(field), outcome)
		}
	}

	// Expected items the extraction never produced: one missing_line_item
	// outcome per item, every field of the item counted missing.
	for i := aligned; i < len(expected); i++ {
		diff.Outcomes = append(diff.Outcomes, m.FieldOutcome{
			Path:    m.ItemPath(i),
			Outcome: m.OutcomeMissingLineItem,
		})

		for _, field := range itemFieldOrder(expected[i], nil, schema) {
			diff.Stats.Record(m.NormalizedItemFieldPath(field), m.OutcomeMissingLineItem)
		}
	}

	// Actual items beyond the labeled list: audit-only.
	for i := aligned; i < len(actual); i++ {
		diff.Outcomes = append(diff.Outcomes, m.FieldOutcome{
			Path:    m.ItemPath(i),
			Outcome: m.OutcomeExtraLineItem,
		})
		diff.ExtraLineItems++
	}
}

// MissingFileDiff builds the tallies for an expected document whose actual
// counterpart was never produced: every field of the expected document is
// counted missing.
func MissingFileDiff(expected m.Document, schema m.Schema) m.FileDiff {
	diff := m.FileDiff{Stats: make(m.FieldStats)}

	for _, field := range scalarFieldOrder(expected, m.Document{}, schema) {
		path := m.ScalarPath(field)
		diff.Outcomes = append(diff.Outcomes, m.FieldOutcome{Path: path, Outcome: m.OutcomeMissingInActual})
		diff.Stats.Count(path).Missing++
	}

	for i, item := range expected.LineItems {
		diff.Outcomes = append(diff.Outcomes, m.FieldOutcome{
			Path:    m.ItemPath(i),
			Outcome: m.OutcomeMissingLineItem,
		})

		for _, field := range itemFieldOrder(item, nil, schema) {
			diff.Stats.Count(m.NormalizedItemFieldPath(field)).Missing++
		}
	}

	return diff
}

// scalarFieldOrder returns the union of both documents' scalar field names:
// schema fields first in dictionary order, unknown extras alphabetically.
func scalarFieldOrder(expected, actual m.Document, schema m.Schema) []string {
	seen := make(map[string]bool, len(schema.ScalarFields))
	order := make([]string, 0, len(schema.ScalarFields))

	present := func(field string) bool {
		_, inExpected := expected.Fields[field]
		_, inActual := actual.Fields[field]

		return inExpected || inActual
	}

	for _, field := range schema.ScalarFields {
		seen[field] = true

		if present(field) {
			order = append(order, field)
		}
	}

	var extras []string

	for field := range expected.Fields {
		if !seen[field] {
			seen[field] = true
			extras = append(extras, field)
		}
	}

	for field := range actual.Fields {
		if !seen[field] {
			seen[field] = true
			extras = append(extras, field)
		}
	}

	sort.Strings(extras)

	return append(order, extras...)
}

func itemFieldOrder(expected, actual m.LineItem, schema m.Schema) []string {
	seen := make(map[string]bool, len(schema.LineItemFields))
	order := make([]string, 0, len(schema.LineItemFields))

	for _, field := range schema.LineItemFields {
		seen[field] = true

		_, inExpected := expected[field]
		_, inActual := actual[field]

		if inExpected || inActual {
			order = append(order, field)
		}
	}

	var extras []string

	for field := range expected {
		if !seen[field] {
			seen[field] = true
			extras = append(extras, field)
		}
	}

	for field := range actual {
		if !seen[field] {
			seen[field] = true
			extras = append(extras, field)
		}
	}

	sort.Strings(extras)

	return append(order, extras...)
}
