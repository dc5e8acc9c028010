package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldStats_RecordMapsOutcomes(t *testing.T) {
	stats := make(FieldStats)

	stats.Record("order_id", OutcomeMatch)
	stats.Record("order_id", OutcomeMismatch)
	stats.Record("order_id", OutcomeMissingInActual)
	stats.Record("line_items.product_name", OutcomeMissingLineItem)
	stats.Record("carrier_reference_raw", OutcomeMissingInExpected)
	stats.Record("line_items[3]", OutcomeExtraLineItem)

	require.Equal(t, 1, stats.Count("order_id").Correct)
	require.Equal(t, 2, stats.Count("order_id").Incorrect)
	require.Equal(t, 1, stats.Count("line_items.product_name").Missing)
	require.Equal(t, 1, stats.Count("carrier_reference_raw").Flagged)

	// extra_line_item leaves the tallies untouched.
	require.Zero(t, *stats.Count("line_items[3]"))
}

func TestFieldStats_MergeSumsCounters(t *testing.T) {
	left := make(FieldStats)
	left.Record("order_id", OutcomeMatch)

	right := make(FieldStats)
	right.Record("order_id", OutcomeMatch)
	right.Record("order_id", OutcomeMismatch)
	right.Record("tracking_number", OutcomeMissingInExpected)

	left.Merge(right)

	require.Equal(t, 2, left.Count("order_id").Correct)
	require.Equal(t, 1, left.Count("order_id").Incorrect)
	require.Equal(t, 1, left.Count("tracking_number").Flagged)
}

func TestFieldStats_SortedPathsTopLevelFirst(t *testing.T) {
	stats := make(FieldStats)
	stats.Record("line_items.quantity", OutcomeMatch)
	stats.Record("tracking_number", OutcomeMatch)
	stats.Record("line_items.product_name", OutcomeMatch)
	stats.Record("order_id", OutcomeMatch)

	require.Equal(t, []FieldPath{
		"order_id",
		"tracking_number",
		"line_items.product_name",
		"line_items.quantity",
	}, stats.SortedPaths())
}

func TestFieldCount_AccuracyPercent(t *testing.T) {
	count := FieldCount{Correct: 3, Incorrect: 1, Missing: 1, Flagged: 7}

	// Flagged stays outside the denominator.
	require.InDelta(t, 60.0, count.AccuracyPercent(), 1e-9)
	require.Zero(t, FieldCount{}.AccuracyPercent())
}

func TestFormatPercent_HalfUpTwoDecimals(t *testing.T) {
	require.Equal(t, "100.00%", FormatPercent(100))
	require.Equal(t, "66.67%", FormatPercent(200.0/3.0))
	require.Equal(t, "12.35%", FormatPercent(12.345))
	require.Equal(t, "0.00%", FormatPercent(0))
}

func TestCorpusReport_OverallPercentIsWeighted(t *testing.T) {
	report := &CorpusReport{Files: []FileAccuracy{
		{FileID: "small", Correct: 1, Total: 10},
		{FileID: "large", Correct: 9, Total: 90},
	}}

	require.InDelta(t, 10.0, report.OverallPercent(), 1e-9)
	require.Equal(t, 10, report.TotalCorrect())
	require.Equal(t, 100, report.TotalFields())
}

func TestCorpusReport_EmptyCorpus(t *testing.T) {
	report := &CorpusReport{Fields: make(FieldStats)}

	require.Zero(t, report.OverallPercent())
	require.Zero(t, report.FlaggedCount())
}

func TestFieldPath_Helpers(t *testing.T) {
	require.Equal(t, FieldPath("order_id"), ScalarPath("order_id"))
	require.Equal(t, FieldPath("line_items[2]"), ItemPath(2))
	require.Equal(t, FieldPath("line_items[0].product_price"), ItemFieldPath(0, "product_price"))
	require.Equal(t, FieldPath("line_items.product_price"), NormalizedItemFieldPath("product_price"))

	require.True(t, ItemPath(1).IsItemPath())
	require.True(t, NormalizedItemFieldPath("quantity").IsItemPath())
	require.False(t, ScalarPath("order_id").IsItemPath())
}

func TestLoadOrderSchema(t *testing.T) {
	schema, err := LoadOrderSchema()
	require.NoError(t, err)

	require.Contains(t, schema.ScalarFields, "order_id")
	require.Contains(t, schema.LineItemFields, "product_price")

	require.True(t, schema.IsNumeric("order_total_price"))
	require.True(t, schema.IsNumeric("quantity"))
	require.False(t, schema.IsNumeric("order_id"))
	require.False(t, schema.IsNumeric("never_heard_of_it"))

	empty := schema.EmptyDocument()
	require.Len(t, empty.Fields, len(schema.ScalarFields))
	require.Len(t, schema.EmptyLineItem(), len(schema.LineItemFields))
}
