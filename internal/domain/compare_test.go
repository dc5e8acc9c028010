package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

func TestCompareValues_ExactMatch(t *testing.T) {
	require.Equal(t, m.OutcomeMatch, CompareValues("FO123456789", "FO123456789", false))
}

func TestCompareValues_CaseAndWhitespaceInsensitive(t *testing.T) {
	require.Equal(t, m.OutcomeMatch, CompareValues("  Express Shipping ", "express   shipping", false))
}

func TestCompareValues_EmptyVsEmptyIsMatch(t *testing.T) {
	require.Equal(t, m.OutcomeMatch, CompareValues("", "", false))
	require.Equal(t, m.OutcomeMatch, CompareValues("   ", "", true))
}

func TestCompareValues_MissingInActual(t *testing.T) {
	require.Equal(t, m.OutcomeMissingInActual, CompareValues("$10.00", "", true))
	require.Equal(t, m.OutcomeMissingInActual, CompareValues("UPS", "  ", false))
}

func TestCompareValues_MissingInExpected(t *testing.T) {
	require.Equal(t, m.OutcomeMissingInExpected, CompareValues("", "$4.99", true))
}

func TestCompareValues_Mismatch(t *testing.T) {
	require.Equal(t, m.OutcomeMismatch, CompareValues("UPS", "FedEx", false))
}

func TestCompareValues_NumericEquivalence(t *testing.T) {
	require.Equal(t, m.OutcomeMatch, CompareValues("10.00", "10", true))
	require.Equal(t, m.OutcomeMatch, CompareValues("$10.00", "$10", true))
	require.Equal(t, m.OutcomeMatch, CompareValues("$1,299.00", "1299", true))
	require.Equal(t, m.OutcomeMismatch, CompareValues("10.00", "10.50", true))
}

func TestCompareValues_NumericFallsBackToTextWhenUnparseable(t *testing.T) {
	// "free" never parses as a decimal, so text comparison applies.
	require.Equal(t, m.OutcomeMatch, CompareValues("Free", "free", true))
	require.Equal(t, m.OutcomeMismatch, CompareValues("Free", "$0.00", true))
}

func TestCompareValues_NumericIgnoredForTextFields(t *testing.T) {
	// A product id that happens to look numeric is still compared as text.
	require.Equal(t, m.OutcomeMismatch, CompareValues("010", "10", false))
}

func TestCompareValues_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		require.Equal(t, m.OutcomeMismatch, CompareValues("$5.00", "$6.00", true))
	}
}
