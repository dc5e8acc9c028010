package domain

import (
	m "github.com/tienduong-21/extract-infor/internal/model"
)

// Score reduces one file's tallies to its accuracy row. The denominator is
// correct + incorrect + missing across every field evaluated for the file;
// flagged (missing_in_expected) observations stay outside it.
func Score(fileID string, stats m.FieldStats) m.FileAccuracy {
	correct, incorrect, missing, _ := stats.Totals()
	total := correct + incorrect + missing

	accuracy := m.FileAccuracy{
		FileID:  fileID,
		Correct: correct,
		Total:   total,
	}

	if total > 0 {
		accuracy.Percent = 100 * float64(correct) / float64(total)
	}

	return accuracy
}
