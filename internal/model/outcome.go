package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ComparisonOutcome classifies the result of comparing one leaf value.
type ComparisonOutcome string

// Available ComparisonOutcome values.
const (
	// OutcomeMatch indicates expected and actual agree after normalization.
	OutcomeMatch ComparisonOutcome = "match"
	// OutcomeMismatch indicates both sides hold a value and they differ.
	OutcomeMismatch ComparisonOutcome = "mismatch"
	// OutcomeMissingInActual indicates the extraction dropped an expected value.
	OutcomeMissingInActual ComparisonOutcome = "missing_in_actual"
	// OutcomeMissingInExpected indicates the extraction produced a value where
	// the label has none. Informational: it never enters the accuracy denominator.
	OutcomeMissingInExpected ComparisonOutcome = "missing_in_expected"
	// OutcomeExtraLineItem indicates an actual line item beyond the expected
	// list length. Recorded for audit, not penalized.
	OutcomeExtraLineItem ComparisonOutcome = "extra_line_item"
	// OutcomeMissingLineItem indicates an expected line item the extraction
	// never produced.
	OutcomeMissingLineItem ComparisonOutcome = "missing_line_item"
)

// FieldCount holds the per-field tally for one normalized path.
//
// Correct + Incorrect + Missing equals the number of times the path entered
// the accuracy denominator; Flagged counts missing_in_expected observations,
// which stay outside it.
type FieldCount struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Missing   int `json:"missing"`
	Flagged   int `json:"flagged,omitempty"`
}

// AccuracyPercent returns the field's correct share of its denominator.
func (c FieldCount) AccuracyPercent() float64 {
	total := c.Correct + c.Incorrect + c.Missing
	if total == 0 {
		return 0
	}

	return 100 * float64(c.Correct) / float64(total)
}

// FieldStats maps normalized field paths to their tallies. It is mutated by a
// single file's diff and then merged into the run-wide aggregate.
type FieldStats map[FieldPath]*FieldCount

// Count returns the tally for path, creating it on first use.
func (s FieldStats) Count(path FieldPath) *FieldCount {
	count, ok := s[path]
	if !ok {
		count = &FieldCount{}
		s[path] = count
	}

	return count
}

// Record updates the tally for path according to the comparison outcome.
func (s FieldStats) Record(path FieldPath, outcome ComparisonOutcome) {
	count := s.Count(path)

	switch outcome {
	case OutcomeMatch:
		count.Correct++
	case OutcomeMismatch, OutcomeMissingInActual:
		count.Incorrect++
	case OutcomeMissingLineItem:
		count.Missing++
	case OutcomeMissingInExpected:
		count.Flagged++
	case OutcomeExtraLineItem:
		// Audit-only, no tally.
	}
}

// Merge adds every counter from delta into s. Counter addition is associative,
// so per-file deltas can be merged in any order.
func (s FieldStats) Merge(delta FieldStats) {
	for path, other := range delta {
		count := s.Count(path)
		count.Correct += other.Correct
		count.Incorrect += other.Incorrect
		count.Missing += other.Missing
		count.Flagged += other.Flagged
	}
}

// Totals sums the counters across all paths.
func (s FieldStats) Totals() (correct, incorrect, missing, flagged int) {
	for _, count := range s {
		correct += count.Correct
		incorrect += count.Incorrect
		missing += count.Missing
		flagged += count.Flagged
	}

	return correct, incorrect, missing, flagged
}

// SortedPaths returns the stat paths in a stable order for report rendering.
func (s FieldStats) SortedPaths() []FieldPath {
	paths := make([]FieldPath, 0, len(s))
	for path := range s {
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool {
		// Top-level fields before line-item fields, alphabetical within each.
		if paths[i].IsItemPath() != paths[j].IsItemPath() {
			return !paths[i].IsItemPath()
		}

		return paths[i] < paths[j]
	})

	return paths
}

// FieldOutcome is one leaf comparison result at its indexed path.
type FieldOutcome struct {
	Path    FieldPath         `json:"path"`
	Outcome ComparisonOutcome `json:"outcome"`
}

// FileDiff is the full comparison result for one expected/actual pair:
// ordered per-leaf outcomes plus the per-field tallies they produced.
type FileDiff struct {
	Outcomes       []FieldOutcome
	Stats          FieldStats
	ExtraLineItems int
}

// FileAccuracy is a single file's accuracy score.
type FileAccuracy struct {
	FileID  string  `json:"file_id"`
	Correct int     `json:"correct_count"`
	Total   int     `json:"total_count"`
	Percent float64 `json:"accuracy_percent"`
}

// PercentString formats the percentage with two decimals, rounding half-up.
func (a FileAccuracy) PercentString() string {
	return FormatPercent(a.Percent)
}

// FormatPercent renders a percentage with fixed two-decimal precision,
// rounding half away from zero.
func FormatPercent(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(2) + "%"
}

// LoadError records a file that could not be scored because either side of
// the pair failed to load or parse. Load errors are listed in the report but
// excluded from the weighted accuracy denominator.
type LoadError struct {
	FileID string `json:"file_id"`
	Side   Side   `json:"side"`
	Reason string `json:"reason"`
}

// AuditRecord is one leaf outcome attributed to its file, written to the
// audit log when requested.
type AuditRecord struct {
	FileID  string
	Path    FieldPath
	Outcome ComparisonOutcome
}

// CorpusReport is the result of scoring a whole corpus: one ordered row per
// expected file plus the aggregated per-field tallies. It is built once per
// run and never mutated afterwards.
type CorpusReport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Files       []FileAccuracy `json:"files"`
	LoadErrors  []LoadError  `json:"load_errors,omitempty"`
	Fields      FieldStats   `json:"fields"`
}

// OverallPercent is the corpus accuracy weighted by field counts:
// sum(correct)/sum(total) across all scored files, not a mean of percentages.
func (r *CorpusReport) OverallPercent() float64 {
	correct := 0
	total := 0

	for _, file := range r.Files {
		correct += file.Correct
		total += file.Total
	}

	if total == 0 {
		return 0
	}

	return 100 * float64(correct) / float64(total)
}

// TotalCorrect sums correct counts across all scored files.
func (r *CorpusReport) TotalCorrect() int {
	n := 0
	for _, file := range r.Files {
		n += file.Correct
	}

	return n
}

// TotalFields sums the denominators across all scored files.
func (r *CorpusReport) TotalFields() int {
	n := 0
	for _, file := range r.Files {
		n += file.Total
	}

	return n
}

// FlaggedCount sums the informational missing_in_expected observations.
func (r *CorpusReport) FlaggedCount() int {
	_, _, _, flagged := r.Fields.Totals()
	return flagged
}
