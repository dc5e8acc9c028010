// Package domain contains the core comparison and scoring logic.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

// CompareValues classifies a single expected/actual leaf pair. Both values
// are normalized first: surrounding whitespace trimmed, with null/absent and
// "" treated as the same empty value. Numeric fields are compared as decimals
// when both sides parse cleanly, so "10.00" and "$10" agree; otherwise the
// comparison falls back to case-insensitive, whitespace-collapsed equality.
func CompareValues(expected, actual string, numeric bool) m.ComparisonOutcome {
	exp := strings.TrimSpace(expected)
	act := strings.TrimSpace(actual)

	switch {
	case exp == "" && act == "":
		return m.OutcomeMatch
	case exp != "" && act == "":
		return m.OutcomeMissingInActual
	case exp == "" && act != "":
		return m.OutcomeMissingInExpected
	}

	if numeric {
		if expDec, ok := parseAmount(exp); ok {
			if actDec, ok := parseAmount(act); ok {
				if expDec.Equal(actDec) {
					return m.OutcomeMatch
				}

				return m.OutcomeMismatch
			}
		}
	}

	if strings.EqualFold(collapseSpace(exp), collapseSpace(act)) {
		return m.OutcomeMatch
	}

	return m.OutcomeMismatch
}

// parseAmount parses a monetary or quantity string as a decimal. Currency
// symbols and thousands separators are stripped first, since labels write
// prices as "$1,299.00".
func parseAmount(value string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.TrimSuffix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return decimal.Decimal{}, false
	}

	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return dec, true
}

// collapseSpace reduces every run of whitespace to a single space.
func collapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
